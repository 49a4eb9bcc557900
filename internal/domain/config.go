package domain

import (
	"fmt"
	"regexp"
)

// PatchSpec is a configured rewrite the patcher can execute for one
// fix-step locator: every match of Pattern in the referenced file is
// replaced with Replacement.
type PatchSpec struct {
	File        string `yaml:"file"`
	Function    string `yaml:"function"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// Locator returns the fix-step lookup key for the patch.
func (p PatchSpec) Locator() string { return p.File + "#" + p.Function }

// EngineConfig is the per-target configuration loaded from
// .remedy.yaml. Zero value plus DefaultConfig covers a target with no
// config file.
type EngineConfig struct {
	// SkipCases lists dispatch keys of test cases to leave out of the
	// suite run.
	SkipCases []string `yaml:"skip_cases"`
	// Rules extends or overrides the built-in remediation table.
	Rules []Rule `yaml:"rules"`
	// Patches extends the patcher's rewrite registry.
	Patches []PatchSpec `yaml:"patches"`
	// JournalPath overrides where restore points are persisted,
	// relative to the target path.
	JournalPath string `yaml:"journal_path"`
}

// DefaultConfig returns the configuration used when no .remedy.yaml
// exists.
func DefaultConfig() EngineConfig {
	return EngineConfig{JournalPath: ".remedy/journal.json"}
}

// Validate catches typos in user-supplied config before it is merged.
func (c EngineConfig) Validate() error {
	for _, key := range c.SkipCases {
		if _, err := ParseTestCase(key); err != nil {
			return fmt.Errorf("skip_cases: %w", err)
		}
	}
	for i, r := range c.Rules {
		if _, err := parseCategoryName(r.CategoryName); err != nil {
			return fmt.Errorf("rules[%d]: %w", i, err)
		}
		for j, step := range r.Steps {
			if err := step.Validate(); err != nil {
				return fmt.Errorf("rules[%d].steps[%d]: %w", i, j, err)
			}
		}
	}
	for i, p := range c.Patches {
		if p.File == "" || p.Function == "" {
			return fmt.Errorf("patches[%d]: file and function are required", i)
		}
		if _, err := regexp.Compile(p.Pattern); err != nil {
			return fmt.Errorf("patches[%d]: invalid pattern: %w", i, err)
		}
	}
	return nil
}

// ResolveRules builds the effective rule table: defaults first, then
// config rules shadowing by category.
func (c EngineConfig) ResolveRules() (*RuleSet, error) {
	rs := DefaultRules()
	for i, r := range c.Rules {
		cat, err := parseCategoryName(r.CategoryName)
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		r.Category = cat
		rs.Add(r)
	}
	return rs, nil
}

func parseCategoryName(name string) (FailureCategory, error) {
	for cat, catName := range categoryNames {
		if cat != CategoryUnknown && catName == name {
			return cat, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("unknown failure category %q", name)
}
