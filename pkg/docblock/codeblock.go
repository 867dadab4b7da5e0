package docblock

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultCodeblock is the tag rendered as code when no matcher is given.
const DefaultCodeblock = "example"

// ErrInvalidPattern is returned by ParseCodeblockPattern.
var ErrInvalidPattern = errors.New("invalid codeblock pattern")

// ecmaMatchTimeout bounds a single ECMAScript pattern match.
const ecmaMatchTimeout = 100 * time.Millisecond

// CodeblockMatcher decides whether a block tag's content is code.
type CodeblockMatcher interface {
	// Match is called with the tag as written, including "@".
	Match(tag string) bool

	// String returns the matcher in the form it was written.
	String() string
}

// MatchName matches a tag by name. "example" and "@example" are the same.
func MatchName(name string) CodeblockMatcher {
	return nameMatcher{name: strings.TrimPrefix(name, "@"), raw: name}
}

// MatchRegexp matches tags whose name or "@"-prefixed form matches re.
func MatchRegexp(re *regexp.Regexp) CodeblockMatcher {
	return regexpMatcher{re: re}
}

// MatchECMAScript matches like MatchRegexp with a regexp2 pattern.
func MatchECMAScript(re *regexp2.Regexp) CodeblockMatcher {
	return ecmaMatcher{re: re}
}

// ParseCodeblockPattern turns a configured pattern into a matcher.
// Patterns of the form "/source/flags" are ECMAScript regular expressions
// (flags i, m, s; g, u and y are accepted and ignored). Anything else is a
// tag name.
func ParseCodeblockPattern(pattern string) (CodeblockMatcher, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	last := strings.LastIndexByte(pattern, '/')
	if !strings.HasPrefix(pattern, "/") || last < 1 {
		return MatchName(pattern), nil
	}

	source, flags := pattern[1:last], pattern[last+1:]

	options := regexp2.RegexOptions(regexp2.ECMAScript)
	for _, flag := range flags {
		switch flag {
		case 'i':
			options |= regexp2.IgnoreCase
		case 'm':
			options |= regexp2.Multiline
		case 's':
			options |= regexp2.Singleline
		case 'g', 'u', 'y':
		default:
			return nil, fmt.Errorf("%w: unknown flag %q in %s", ErrInvalidPattern, flag, pattern)
		}
	}

	re, err := regexp2.Compile(source, options)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPattern, pattern, err)
	}
	re.MatchTimeout = ecmaMatchTimeout

	return ecmaMatcher{re: re, raw: pattern}, nil
}

// ParseCodeblockPatterns parses each pattern, stopping at the first error.
func ParseCodeblockPatterns(patterns []string) ([]CodeblockMatcher, error) {
	matchers := make([]CodeblockMatcher, 0, len(patterns))
	for _, pattern := range patterns {
		matcher, err := ParseCodeblockPattern(pattern)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, matcher)
	}
	return matchers, nil
}

type nameMatcher struct {
	name string
	raw  string
}

func (m nameMatcher) Match(tag string) bool {
	return strings.TrimPrefix(tag, "@") == m.name
}

func (m nameMatcher) String() string {
	return m.raw
}

type regexpMatcher struct {
	re *regexp.Regexp
}

func (m regexpMatcher) Match(tag string) bool {
	return m.re.MatchString(strings.TrimPrefix(tag, "@")) || m.re.MatchString(tag)
}

func (m regexpMatcher) String() string {
	return m.re.String()
}

type ecmaMatcher struct {
	re  *regexp2.Regexp
	raw string
}

// Match treats a timed-out match as no match.
func (m ecmaMatcher) Match(tag string) bool {
	for _, candidate := range []string{strings.TrimPrefix(tag, "@"), tag} {
		if ok, err := m.re.MatchString(candidate); err == nil && ok {
			return true
		}
	}
	return false
}

func (m ecmaMatcher) String() string {
	if m.raw != "" {
		return m.raw
	}
	return "/" + m.re.String() + "/"
}

// isCodeblock reports whether any matcher accepts tag.
func isCodeblock(matchers []CodeblockMatcher, tag string) bool {
	for _, matcher := range matchers {
		if matcher.Match(tag) {
			return true
		}
	}
	return false
}
