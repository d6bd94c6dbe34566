package routes

// segmentMacros maps macro names usable as a placeholder's custom pattern,
// e.g. ":id(int)" or ":slug(slug)", to the regexp they stand for.
var segmentMacros = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
}

// expandMacro returns the regexp for a macro name, or the input unchanged
// when it is not a known macro.
func expandMacro(pattern string) string {
	if m, ok := segmentMacros[pattern]; ok {
		return m
	}

	return pattern
}
