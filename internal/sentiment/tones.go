package sentiment

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxTones caps the tags attached to one segment. The cap and the
// declaration order of the rules are product policy: the first two
// matching labels win, in rule order.
const maxTones = 2

// ToneRule is one tone label with its trigger patterns. Rules are a
// prioritized classification table: earlier rules outrank later ones.
type ToneRule struct {
	Label    string   `yaml:"label"`
	Patterns []string `yaml:"patterns"`
}

// DefaultToneRules returns the built-in tone table in priority order
func DefaultToneRules() []ToneRule {
	return []ToneRule{
		{
			Label: "doubtful",
			Patterns: []string{
				`\b(i\s*guess|maybe|perhaps|not\s*sure|unsure|uncertain|i\s*think\s*so|probably|possibly)\b`,
				`\b(doubt|doubtful|skeptical|hesitant)\b`,
				`\?\s*$`, // trailing question tone
			},
		},
		{
			Label: "annoyed",
			Patterns: []string{
				`\b(annoyed|annoying|irritated|irritating|frustrated|frustrating|fed\s*up|sick\s*of)\b`,
				`\b(ugh+|grr+|ffs)\b`,
				`!{2,}`, // multiple exclamation marks
			},
		},
		{
			Label: "sad",
			Patterns: []string{
				`\b(sad|upset|depressed|unhappy|heartbroken|miserable|downcast)\b`,
				`\b(sorry|regret|regretting|mourning|grieving)\b`,
			},
		},
		{
			Label: "angry",
			Patterns: []string{
				`\b(angry|mad|furious|livid|rage|enraged|outraged)\b`,
			},
		},
		{
			Label: "confident",
			Patterns: []string{
				`\b(definitely|certainly|for\s*sure|no\s*doubt|clearly|obviously)\b`,
			},
		},
		{
			Label: "happy",
			Patterns: []string{
				`\b(happy|glad|pleased|delighted|thrilled|excited)\b`,
			},
		},
	}
}

// LoadToneRules reads a tone table from a YAML file. The file is a
// sequence, so the declared order carries over as priority.
func LoadToneRules(path string) ([]ToneRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tone rules: %w", err)
	}

	var rules []ToneRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse tone rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("tone rules file %s contains no rules", path)
	}
	return rules, nil
}

// toneMatcher is one compiled rule
type toneMatcher struct {
	label    string
	patterns []*regexp.Regexp
}

func compileToneRules(rules []ToneRule) ([]toneMatcher, error) {
	matchers := make([]toneMatcher, 0, len(rules))
	for _, rule := range rules {
		if rule.Label == "" {
			return nil, fmt.Errorf("tone rule without label")
		}
		m := toneMatcher{label: rule.Label}
		for _, pat := range rule.Patterns {
			re, err := regexp.Compile(`(?i)` + pat)
			if err != nil {
				return nil, fmt.Errorf("tone rule %q: invalid pattern %q: %w", rule.Label, pat, err)
			}
			m.patterns = append(m.patterns, re)
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// toneTags collects the first matching labels in rule order, capped at two
func (a *Analyzer) toneTags(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	var tags []string
	for _, m := range a.tones {
		for _, re := range m.patterns {
			if re.MatchString(text) {
				tags = append(tags, m.label)
				break
			}
		}
		if len(tags) == maxTones {
			break
		}
	}
	return tags
}
