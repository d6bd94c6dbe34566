package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vitalvas/frsh/config"
	"github.com/vitalvas/frsh/routes"
)

// app carries the settings resolved before a subcommand runs.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "frsh",
		Short:         "Route manifest and partial navigation tooling",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default is .frsh.yaml)")
	flags.StringP("manifest", "m", "", "route manifest file")
	flags.String("origin", "", "origin partial fetches resolve against")
	flags.StringP("log-level", "l", "", "log level (debug, info, warn, error)")
	bindFlags(a.v, flags, "manifest", "origin", "log-level")

	cmd.AddCommand(
		newRoutesCmd(a),
		newMatchCmd(a),
		newPatchCmd(a),
	)

	return cmd
}

// bindFlags binds each named flag to the viper key of the same name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		v.BindPFlag(name, flags.Lookup(name))
	}
}

// init layers the config file and flags over the environment defaults and
// builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	defaults, err := config.Load()
	if err != nil {
		return err
	}
	a.v.SetDefault("manifest", defaults.Manifest)
	a.v.SetDefault("origin", defaults.Origin)
	a.v.SetDefault("log-level", defaults.LogLevel)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".frsh")
	}
	a.v.SetEnvPrefix(strings.TrimSuffix(config.EnvPrefix, "_"))
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	level, err := config.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", "path", used)
	}

	return nil
}

// loadManifest reads the configured manifest file.
func (a *app) loadManifest() (*routes.Manifest, error) {
	name := a.v.GetString("manifest")

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m, err := routes.LoadManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	a.logger.Debug("manifest loaded", "path", name, "entries", len(m.Entries))

	return m, nil
}
