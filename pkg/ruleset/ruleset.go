package ruleset

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/selira/modguard/pkg/domain/moderation"
)

const Source = "ruleset"

// Rule binds one policy category to the patterns that detect it.
type Rule struct {
	Category         moderation.Category
	Severity         moderation.Severity
	AutoBan          bool
	Message          string
	ProvideResources bool
	Patterns         []*regexp.Regexp
}

// CustomRule is the config-file shape for operator-supplied rules. They are
// evaluated after the built-in table.
type CustomRule struct {
	Category string   `mapstructure:"category"`
	Severity string   `mapstructure:"severity"`
	AutoBan  bool     `mapstructure:"auto_ban"`
	Message  string   `mapstructure:"message"`
	Patterns []string `mapstructure:"patterns"`
}

// Ruleset is a stateless, ordered cascade of category rules. Evaluate is a
// pure function of the input text and safe for concurrent use.
type Ruleset struct {
	rules []Rule
}

func New() *Ruleset {
	return &Ruleset{rules: defaultRules}
}

func NewWithRules(rules []Rule) *Ruleset {
	return &Ruleset{rules: rules}
}

// WithCustomRules appends compiled operator rules to the built-in table and
// returns a new ruleset. Invalid patterns or categories outside the closed
// taxonomy are rejected.
func (r *Ruleset) WithCustomRules(settings []map[string]interface{}) (*Ruleset, error) {
	rules := make([]Rule, len(r.rules), len(r.rules)+len(settings))
	copy(rules, r.rules)

	for _, raw := range settings {
		var custom CustomRule
		if err := mapstructure.Decode(raw, &custom); err != nil {
			return nil, fmt.Errorf("failed to decode custom rule: %w", err)
		}
		category := moderation.Category(custom.Category)
		if !moderation.ValidCategory(category) {
			return nil, fmt.Errorf("unknown category in custom rule: %s", custom.Category)
		}
		if len(custom.Patterns) == 0 {
			return nil, fmt.Errorf("custom rule for %s has no patterns", custom.Category)
		}
		compiled := make([]*regexp.Regexp, 0, len(custom.Patterns))
		for _, p := range custom.Patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
			}
			compiled = append(compiled, re)
		}
		severity := moderation.Severity(custom.Severity)
		if severity == "" {
			severity = moderation.SeverityHigh
		}
		message := custom.Message
		if message == "" {
			message = blockedMessage
		}
		rules = append(rules, Rule{
			Category: category,
			Severity: severity,
			AutoBan:  custom.AutoBan,
			Message:  message,
			Patterns: compiled,
		})
	}

	return &Ruleset{rules: rules}, nil
}

// Evaluate runs the cascade and returns the first matching category, not the
// best match. Empty or whitespace-only text is allowed.
func (r *Ruleset) Evaluate(text string) moderation.Decision {
	if strings.TrimSpace(text) == "" {
		return moderation.Safe()
	}

	for _, rule := range r.rules {
		for _, pattern := range rule.Patterns {
			if pattern.MatchString(text) {
				return moderation.Decision{
					Blocked:          true,
					Category:         rule.Category,
					Severity:         rule.Severity,
					AutoBan:          rule.AutoBan,
					Message:          rule.Message,
					ProvideResources: rule.ProvideResources,
					Source:           Source,
				}
			}
		}
	}

	return moderation.Safe()
}

// Rules exposes the active table for inspection and tests.
func (r *Ruleset) Rules() []Rule {
	return r.rules
}
