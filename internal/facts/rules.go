// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package facts extracts labeled fields from infobox text using a
// declarative rule table and composes the per-field query handlers.
package facts

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ErrFieldNotFound reports that the infobox exists but lacks the
// requested field.
var ErrFieldNotFound = errors.New("field not found")

// Built-in field names.
const (
	FieldBirthDate         = "birth_date"
	FieldBirthPlace        = "birth_place"
	FieldPolarRadius       = "polar_radius"
	FieldPopulation        = "population"
	FieldOfficialLanguages = "official_languages"
)

// Rule describes one extractable infobox field. Pattern is a regular
// expression applied case-insensitively with "." matching newlines;
// its capture groups, trimmed and joined with ", ", form the answer.
type Rule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	ErrText string `yaml:"error"`

	re *regexp.Regexp
}

// Apply runs the rule against cleaned infobox text and returns the
// extracted value. The returned error wraps ErrFieldNotFound when the
// pattern does not match.
func (r *Rule) Apply(text string) (string, error) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("%w: %s", ErrFieldNotFound, r.ErrText)
	}

	parts := make([]string, 0, len(m)-1)
	for _, group := range m[1:] {
		if trimmed := strings.TrimSpace(group); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", "), nil
}

// DefaultRules returns the built-in rule table. The birth_place rule
// matches any "in CITY, COUNTRY" run and can false-positive on
// unrelated infobox text; a rules file can substitute a stricter
// pattern.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    FieldBirthDate,
			Pattern: `Born\D*(\d{4}-\d{2}-\d{2})`,
			ErrText: "page infobox has no birth information (at least none in xxxx-xx-xx format)",
		},
		{
			Name:    FieldPolarRadius,
			Pattern: `Polar radius.*?(?: ?\d+ )?([\d,.]+).*?km`,
			ErrText: "page infobox has no polar radius information",
		},
		{
			Name:    FieldPopulation,
			Pattern: `Population.*?([\d,]+).*?\s*people`,
			ErrText: "page infobox has no population information",
		},
		{
			Name:    FieldOfficialLanguages,
			Pattern: `Official\s*languages.*?([\w\s,/-]+).*?\n`,
			ErrText: "page infobox has no official language information",
		},
		{
			Name:    FieldBirthPlace,
			Pattern: `in\s*([A-Za-z\s]+),\s*([A-Za-z\s]+)`,
			ErrText: "page infobox has no birth place information",
		},
	}
}

// LoadRules reads a rule table from a YAML file. The file replaces the
// built-in table entirely, so it must name every field its action
// table uses.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	if err := compileRules(rules); err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// compileRules validates each rule and compiles its pattern with the
// case-insensitive and dot-matches-newline flags.
func compileRules(rules []Rule) error {
	seen := make(map[string]bool, len(rules))
	for i := range rules {
		r := &rules[i]
		if r.Name == "" {
			return fmt.Errorf("rule %d: missing name", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("rule %d: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true
		if r.Pattern == "" {
			return fmt.Errorf("rule %q: missing pattern", r.Name)
		}

		re, err := regexp.Compile(`(?is)` + r.Pattern)
		if err != nil {
			return fmt.Errorf("rule %q: invalid pattern: %w", r.Name, err)
		}
		if re.NumSubexp() == 0 {
			return fmt.Errorf("rule %q: pattern has no capture group", r.Name)
		}
		if r.ErrText == "" {
			r.ErrText = fmt.Sprintf("page infobox has no %s information", strings.ReplaceAll(r.Name, "_", " "))
		}
		r.re = re
	}
	return nil
}
