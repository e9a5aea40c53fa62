package routing

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"broom/internal/config"
)

// Rule families, in match order.
const (
	ByKeyword   = "keyword"
	ByExtension = "extension"
	ByMime      = "mime"
)

// Decision names the rule that claimed a file and where it goes.
type Decision struct {
	Family string
	Rule   string
	Target string
}

// Option configures the matcher.
type Option func(*Matcher)

// WithDetector overrides content sniffing, for tests.
func WithDetector(detect func(path string) string) Option {
	return func(m *Matcher) {
		if detect != nil {
			m.detect = detect
		}
	}
}

type keywordRule struct {
	raw    string
	folded string
	target string
}

// Matcher evaluates routing rules against file paths.
type Matcher struct {
	keyword    []keywordRule
	extensions map[string]string
	mime       map[string]string
	fold       cases.Caser
	detect     func(path string) string
}

// NewMatcher compiles the routing rules. Keyword matching is prepared with
// Unicode case folding so "Invoice" and "INVOICE" behave alike.
func NewMatcher(rules config.Routing, opts ...Option) *Matcher {
	fold := cases.Fold()
	m := &Matcher{
		extensions: rules.Extensions,
		mime:       rules.Mime,
		fold:       fold,
		detect:     DetectMime,
	}
	for _, rule := range rules.Keyword {
		if rule.Keyword == "" {
			continue
		}
		m.keyword = append(m.keyword, keywordRule{
			raw:    rule.Keyword,
			folded: fold.String(rule.Keyword),
			target: rule.Target,
		})
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match routes one file. ok is false when only the archive fallback applies.
func (m *Matcher) Match(path string) (Decision, bool) {
	name := filepath.Base(path)

	if rule, ok := m.matchKeyword(name); ok {
		return Decision{Family: ByKeyword, Rule: rule.raw, Target: rule.target}, true
	}
	if ext, target, ok := m.matchExtension(name); ok {
		return Decision{Family: ByExtension, Rule: ext, Target: target}, true
	}
	if key, target, ok := m.matchMime(path); ok {
		return Decision{Family: ByMime, Rule: key, Target: target}, true
	}
	return Decision{}, false
}

func (m *Matcher) matchKeyword(name string) (keywordRule, bool) {
	folded := m.fold.String(name)
	for _, rule := range m.keyword {
		if strings.Contains(folded, rule.folded) {
			return rule, true
		}
	}
	return keywordRule{}, false
}

func (m *Matcher) matchExtension(name string) (string, string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "", "", false
	}
	target, ok := m.extensions[ext]
	if !ok || target == "" {
		return "", "", false
	}
	return ext, target, true
}

func (m *Matcher) matchMime(path string) (string, string, bool) {
	if len(m.mime) == 0 {
		return "", "", false
	}
	detected := m.detect(path)
	if detected == "" {
		return "", "", false
	}
	if target, ok := m.mime[detected]; ok && target != "" {
		return detected, target, true
	}
	prefix, _, found := strings.Cut(detected, "/")
	if !found {
		return "", "", false
	}
	if target, ok := m.mime[prefix]; ok && target != "" {
		return prefix, target, true
	}
	return "", "", false
}
