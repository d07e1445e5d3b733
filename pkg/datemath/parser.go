package datemath

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/olebedev/when"
)

// Parser resolves Russian date/time expressions into absolute instants.
// All methods are pure functions of their arguments; a Parser is safe for concurrent use.
type Parser struct {
	location *time.Location
	fallback *when.Parser
}

// Option configures a Parser.
type Option func(*Parser)

// WithNLPFallback lets MatchDeadline hand inputs that no grammar rule recognizes to a general-purpose
// Russian natural-language parser. Off by default.
func WithNLPFallback() Option {
	return func(p *Parser) {
		p.fallback = newFallback()
	}
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/Moscow"
func NewParser(timezone string, opts ...Option) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	p := &Parser{location: loc}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// defaultParser resolves in whatever location the reference instant carries.
var defaultParser = &Parser{}

// Location returns the parser's timezone, or time.Local for the package-level parser.
func (p *Parser) Location() *time.Location {
	if p.location == nil {
		return time.Local
	}
	return p.location
}

// Now returns the current wall-clock time in the parser's timezone.
func (p *Parser) Now() time.Time {
	return time.Now().In(p.Location())
}

// reference moves ref into the parser's timezone so all arithmetic happens on local wall-clock values.
func (p *Parser) reference(ref time.Time) time.Time {
	if p.location == nil {
		return ref
	}
	return ref.In(p.location)
}

// EndOfDay returns 23:59:59 on t's calendar date.
func (p *Parser) EndOfDay(t time.Time) time.Time {
	return endOfDay(t)
}

// ParseDeadline converts an isolated date/time expression into an absolute instant.
func (p *Parser) ParseDeadline(text string, ref time.Time) (time.Time, error) {
	m, err := p.MatchDeadline(text, ref)
	if err != nil {
		return time.Time{}, err
	}
	return m.Time, nil
}

// MatchDeadline is ParseDeadline that also reports which grammar rule resolved the input.
func (p *Parser) MatchDeadline(text string, ref time.Time) (Match, error) {
	ref = p.reference(ref)
	s := cleanExpression(text)
	if s == "" {
		return Match{}, ErrNoMatch
	}

	if m, ok := matchTable(deadlineRules, s, ref); ok {
		return m, nil
	}

	if p.fallback != nil {
		if t, ok := resolveFallback(p.fallback, s, ref); ok {
			return Match{Time: t, Rule: ruleFallback}, nil
		}
	}
	return Match{}, ErrNoMatch
}

// ParseDeadline resolves text against ref using ref's own location.
func ParseDeadline(text string, ref time.Time) (time.Time, error) {
	return defaultParser.ParseDeadline(text, ref)
}

// MatchDeadline resolves text against ref and reports the winning rule.
func MatchDeadline(text string, ref time.Time) (Match, error) {
	return defaultParser.MatchDeadline(text, ref)
}

// rule is one entry of a grammar table: a pattern plus the handler that turns its match into an instant.
// A handler may reject a match (out-of-range values); evaluation then continues with the next rule.
type rule struct {
	name    string
	re      *regexp2.Regexp
	resolve func(m *regexp2.Match, ref time.Time) (time.Time, bool)
}

func matchTable(rules []rule, s string, ref time.Time) (Match, bool) {
	for _, r := range rules {
		m := find(r.re, s)
		if m == nil {
			continue
		}
		if t, ok := r.resolve(m, ref); ok {
			return Match{Time: t, Rule: r.name}, true
		}
	}
	return Match{}, false
}

var (
	separatorSpaceRe = mustCompile(`\s*([:.])\s*`)
	spaceRunRe       = mustCompile(`\s+`)
)

// cleanExpression lowercases and canonicalizes spacing so the anchored grammar sees one form.
func cleanExpression(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if out, err := separatorSpaceRe.Replace(s, "$1", -1, -1); err == nil {
		s = out
	}
	if out, err := spaceRunRe.Replace(s, " ", -1, -1); err == nil {
		s = out
	}
	return strings.TrimSpace(s)
}
