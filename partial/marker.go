package partial

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// StartPrefix opens a partial region: <!--frsh-partial:name:mode:key-->.
	StartPrefix = "frsh-partial:"

	// EndPrefix closes a partial region: <!--/frsh-partial:name:mode:key-->.
	EndPrefix = "/" + StartPrefix
)

var (
	// ErrMalformedMarker is returned for marker text that is not
	// prefix, name, mode and key separated by colons.
	ErrMalformedMarker = errors.New("partial: malformed marker")

	// ErrUnknownMode is returned for a mode discriminator outside 0..2.
	ErrUnknownMode = errors.New("partial: unknown replacement mode")
)

// Mode selects how new content is merged into a live region.
type Mode int

const (
	// ModeReplace substitutes the region content.
	ModeReplace Mode = iota

	// ModeAppend inserts new content after the existing content.
	ModeAppend

	// ModePrepend inserts new content before the existing content.
	ModePrepend
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeReplace:
		return "replace"
	case ModeAppend:
		return "append"
	case ModePrepend:
		return "prepend"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= ModeReplace && m <= ModePrepend
}

// ParseMode parses a mode name. The empty string is ModeReplace.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "replace":
		return ModeReplace, nil
	case "append":
		return ModeAppend, nil
	case "prepend":
		return ModePrepend, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Marker identifies one partial region. Name must not contain ':'; Key may.
type Marker struct {
	Name string
	Mode Mode
	Key  string
}

// Encode returns the comment text of the start or end marker for m.
// It panics if the name contains ':' or the mode is unknown, since such a
// marker could not be decoded.
func Encode(m Marker, end bool) string {
	if strings.Contains(m.Name, ":") {
		panic(fmt.Sprintf("[BUG] partial: marker name %q must not contain ':'", m.Name))
	}
	if !m.Mode.Valid() {
		panic(fmt.Sprintf("[BUG] partial: marker %q has unknown mode %d", m.Name, int(m.Mode)))
	}

	prefix := StartPrefix
	if end {
		prefix = EndPrefix
	}

	return prefix + m.Name + ":" + strconv.Itoa(int(m.Mode)) + ":" + m.Key
}

// ParseMarker decodes comment text into a marker and reports whether it is
// an end marker.
func ParseMarker(text string) (Marker, bool, error) {
	var end bool
	switch {
	case strings.HasPrefix(text, EndPrefix):
		end = true
		text = text[len(EndPrefix):]
	case strings.HasPrefix(text, StartPrefix):
		text = text[len(StartPrefix):]
	default:
		return Marker{}, false, fmt.Errorf("%w: missing prefix in %q", ErrMalformedMarker, text)
	}

	fields := strings.SplitN(text, ":", 3)
	if len(fields) != 3 {
		return Marker{}, false, fmt.Errorf("%w: want name:mode:key, got %q", ErrMalformedMarker, text)
	}

	n, err := strconv.Atoi(fields[1])
	if err != nil || !Mode(n).Valid() {
		return Marker{}, false, fmt.Errorf("%w: %q", ErrUnknownMode, fields[1])
	}

	return Marker{Name: fields[0], Mode: Mode(n), Key: fields[2]}, end, nil
}

// Decode is like ParseMarker but treats malformed text as a bug and panics.
// Rendered markup is produced by Encode, so a marker that does not decode
// means the markup was corrupted.
func Decode(text string) (Marker, bool) {
	m, end, err := ParseMarker(text)
	if err != nil {
		panic("[BUG] " + err.Error())
	}

	return m, end
}

// IsMarker reports whether comment text carries a start or end prefix.
func IsMarker(text string) bool {
	return strings.HasPrefix(text, StartPrefix) || strings.HasPrefix(text, EndPrefix)
}
