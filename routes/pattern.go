package routes

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"regexp/syntax"
	"strconv"
	"strings"
	"sync"
)

// ErrInvalidPattern is returned when a path template cannot be compiled.
var ErrInvalidPattern = errors.New("routes: invalid path pattern")

// defaultSegment matches a single path segment.
const defaultSegment = `[^/]+`

// modifier alters how many times a placeholder may repeat.
type modifier byte

const (
	modifierNone       modifier = 0
	modifierOptional   modifier = '?'
	modifierOneOrMore  modifier = '+'
	modifierZeroOrMore modifier = '*'
)

// Pattern is a compiled path template.
//
// Templates are made of literal text and placeholders:
//
//	:name          one path segment
//	:name+         one or more segments, joined by "/"
//	:name*         zero or more segments
//	:name?         an optional segment
//	:name(regexp)  one segment matching regexp; a macro name such as
//	               "int" or "uuid" expands to its regexp
//	*              anything, captured under its position ("0", "1", ...)
//
// A "/" immediately before a modified placeholder belongs to it, so
// "/docs/:path*" matches both "/docs" and "/docs/a/b".
type Pattern struct {
	template string
	regexp   *regexp.Regexp
	names    []string
	groups   []int // capture group index of each name
}

// placeholder is a parsed named or wildcard group.
type placeholder struct {
	name     string
	segment  string
	prefix   string
	modifier modifier
}

// Compile parses a path template into a Pattern.
func Compile(template string) (*Pattern, error) {
	var (
		pattern  strings.Builder
		literal  strings.Builder
		names    []string
		groups   []int
		captures int
		wildcard int
	)

	// capture records a placeholder and the groups its expression opens.
	capture := func(ph placeholder) {
		names = append(names, ph.name)
		groups = append(groups, captures+1)
		inner := subexpCount(ph.segment)
		if ph.modifier == modifierOneOrMore || ph.modifier == modifierZeroOrMore {
			// expr repeats the segment once for the first and once for the rest.
			inner *= 2
		}
		captures += 1 + inner
	}

	pattern.WriteByte('^')

	flush := func() {
		pattern.WriteString(regexp.QuoteMeta(literal.String()))
		literal.Reset()
	}

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '\\' && i+1 < len(template):
			i++
			literal.WriteByte(template[i])

		case c == ':':
			end := i + 1
			for end < len(template) && isNameByte(template[end]) {
				end++
			}
			name := template[i+1 : end]
			if name == "" {
				return nil, fmt.Errorf("%w: missing name at offset %d in %q", ErrInvalidPattern, i, template)
			}

			ph := placeholder{name: name, segment: defaultSegment}
			if end < len(template) && template[end] == '(' {
				closing, err := groupEnd(template, end)
				if err != nil {
					return nil, err
				}
				custom := template[end+1 : closing]
				if custom == "" {
					return nil, fmt.Errorf("%w: empty group for %q in %q", ErrInvalidPattern, name, template)
				}
				ph.segment = expandMacro(custom)
				end = closing + 1
			}
			ph.modifier, end = readModifier(template, end)

			if ph.modifier != modifierNone {
				ph.prefix = takeSlashPrefix(&literal)
			}
			flush()
			pattern.WriteString(ph.expr())
			capture(ph)
			i = end - 1

		case c == '*':
			ph := placeholder{name: strconv.Itoa(wildcard), segment: `.*`}
			wildcard++
			flush()
			pattern.WriteString(ph.expr())
			capture(ph)

		default:
			literal.WriteByte(c)
		}
	}
	flush()
	pattern.WriteByte('$')

	if err := checkDuplicateNames(names); err != nil {
		return nil, err
	}

	re, err := compileRegexp(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, template, err)
	}

	return &Pattern{
		template: template,
		regexp:   re,
		names:    names,
		groups:   groups,
	}, nil
}

// MustCompile is like Compile but panics if the template is invalid.
func MustCompile(template string) *Pattern {
	p, err := Compile(template)
	if err != nil {
		panic(err)
	}

	return p
}

// Template returns the source template.
func (p *Pattern) Template() string {
	return p.template
}

// Names returns the placeholder names in template order.
func (p *Pattern) Names() []string {
	return p.names
}

// MatchString reports whether the escaped path matches the pattern.
func (p *Pattern) MatchString(escapedPath string) bool {
	return p.regexp.MatchString(escapedPath)
}

// Match matches the escaped path and returns the unescaped captures.
// Empty captures are omitted from the result.
func (p *Pattern) Match(escapedPath string) (map[string]string, bool) {
	matches := p.regexp.FindStringSubmatch(escapedPath)
	if matches == nil {
		return nil, false
	}

	params := make(map[string]string, len(p.names))
	for i, name := range p.names {
		g := p.groups[i]
		if g >= len(matches) || matches[g] == "" {
			continue
		}
		v := matches[g]
		if unescaped, err := url.PathUnescape(v); err == nil {
			v = unescaped
		}
		params[name] = v
	}

	return params, true
}

// expr renders the placeholder as a regexp fragment with one capture group.
func (ph placeholder) expr() string {
	prefix := regexp.QuoteMeta(ph.prefix)
	seg := "(?:" + ph.segment + ")"

	switch ph.modifier {
	case modifierOptional:
		return "(?:" + prefix + "(" + seg + "))?"
	case modifierOneOrMore:
		return prefix + "(" + seg + "(?:" + repeatSeparator(prefix) + seg + ")*)"
	case modifierZeroOrMore:
		return "(?:" + prefix + "(" + seg + "(?:" + repeatSeparator(prefix) + seg + ")*))?"
	default:
		return prefix + "(" + seg + ")"
	}
}

// subexpCount returns the number of capture groups in a segment regexp.
// Invalid expressions count as zero; the final compile reports them.
func subexpCount(expr string) int {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return 0
	}

	return re.MaxCap()
}

// repeatSeparator returns the separator between repeated segments.
func repeatSeparator(prefix string) string {
	if prefix == "" {
		return "/"
	}

	return prefix
}

// readModifier reads an optional modifier at offset i.
func readModifier(template string, i int) (modifier, int) {
	if i < len(template) {
		switch m := modifier(template[i]); m {
		case modifierOptional, modifierOneOrMore, modifierZeroOrMore:
			return m, i + 1
		}
	}

	return modifierNone, i
}

// takeSlashPrefix moves a trailing "/" from the pending literal into the
// placeholder so that an absent optional group also drops its separator.
func takeSlashPrefix(literal *strings.Builder) string {
	s := literal.String()
	if !strings.HasSuffix(s, "/") {
		return ""
	}
	literal.Reset()
	literal.WriteString(strings.TrimSuffix(s, "/"))

	return "/"
}

// groupEnd returns the index of the parenthesis closing the group opened
// at start. Returns an error if parentheses are unbalanced.
func groupEnd(s string, start int) (int, error) {
	level := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			level++
		case ')':
			if level--; level == 0 {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: unbalanced parentheses in %q", ErrInvalidPattern, s)
}

// checkDuplicateNames returns an error if any placeholder name is repeated.
func checkDuplicateNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("%w: duplicated placeholder %q", ErrInvalidPattern, n)
		}
		seen[n] = true
	}

	return nil
}

func isNameByte(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// regexpCache holds compiled expressions keyed by their source. Its size is
// bounded by the number of distinct templates compiled by the process.
var regexpCache sync.Map // map[string]*regexp.Regexp

// compileRegexp returns a cached *regexp.Regexp, compiling it on first use.
func compileRegexp(expr string) (*regexp.Regexp, error) {
	if v, ok := regexpCache.Load(expr); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	actual, _ := regexpCache.LoadOrStore(expr, re)

	return actual.(*regexp.Regexp), nil
}
