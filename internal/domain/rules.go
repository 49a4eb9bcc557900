package domain

// Rule maps one failure category to a remediation plan template.
type Rule struct {
	Category          FailureCategory `json:"-" yaml:"-"`
	CategoryName      string          `json:"category" yaml:"category"`
	Title             string          `json:"title" yaml:"title"`
	Steps             []FixStep       `json:"steps" yaml:"steps"`
	VerificationSteps []string        `json:"verification_steps" yaml:"verify"`
}

// Suggestion instantiates the rule for a concrete failing test.
func (r Rule) Suggestion(testName string) FixSuggestion {
	steps := make([]FixStep, len(r.Steps))
	copy(steps, r.Steps)
	verify := make([]string, len(r.VerificationSteps))
	copy(verify, r.VerificationSteps)
	return FixSuggestion{TestName: testName, FixSteps: steps, VerificationSteps: verify}
}

// RuleSet is an ordered remediation rule table keyed by category.
// Later rules for the same category override earlier ones, which lets
// config-loaded rules shadow the built-in defaults.
type RuleSet struct {
	rules []Rule
	index map[FailureCategory]int
}

// NewRuleSet builds a rule set from the given rules in order.
func NewRuleSet(rules ...Rule) *RuleSet {
	rs := &RuleSet{index: make(map[FailureCategory]int)}
	for _, r := range rules {
		rs.Add(r)
	}
	return rs
}

// Add appends or overrides the rule for its category.
func (rs *RuleSet) Add(r Rule) {
	if i, ok := rs.index[r.Category]; ok {
		rs.rules[i] = r
		return
	}
	rs.index[r.Category] = len(rs.rules)
	rs.rules = append(rs.rules, r)
}

// Match returns the rule for a category. CategoryUnknown never matches.
func (rs *RuleSet) Match(cat FailureCategory) (Rule, bool) {
	if cat == CategoryUnknown {
		return Rule{}, false
	}
	i, ok := rs.index[cat]
	if !ok {
		return Rule{}, false
	}
	return rs.rules[i], true
}

// Rules returns all rules in table order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// DefaultRules is the built-in remediation table for the TALOWA app.
// Locators name files and functions in the target tree; the patcher
// resolves them to concrete rewrites.
func DefaultRules() *RuleSet {
	return NewRuleSet(
		Rule{
			Category:     CategoryAuthFlow,
			CategoryName: CategoryAuthFlow.String(),
			Title:        "Restore phone-first login flow",
			Steps: []FixStep{
				{
					FileReference:     "lib/screens/auth/login_screen.dart",
					FunctionReference: "initiatePhoneLogin",
					Description:       "Route login through phone verification before password entry",
				},
			},
			VerificationSteps: []string{
				"Launch the app and confirm the login screen requests a phone number first",
				"Re-run the Auth Flow check",
			},
		},
		Rule{
			Category:     CategoryRegistration,
			CategoryName: CategoryRegistration.String(),
			Title:        "Repair registration referral capture",
			Steps: []FixStep{
				{
					FileReference:     "lib/screens/auth/registration_screen.dart",
					FunctionReference: "submitRegistration",
					Description:       "Persist the referral code alongside the new user record",
				},
			},
			VerificationSteps: []string{
				"Register a test user with referral code TALABC234",
				"Confirm the referral edge appears in the referral tree",
			},
		},
		Rule{
			Category:     CategoryReferralCode,
			CategoryName: CategoryReferralCode.String(),
			Title:        "Tighten referral code validation",
			Steps: []FixStep{
				{
					FileReference:     "lib/services/referral/referral_code_service.dart",
					FunctionReference: "validateCompleteReferralCode",
					Description:       "Enforce TAL prefix, 9-character length, and the unambiguous charset",
				},
			},
			VerificationSteps: []string{
				"Validate TALABC234 (accept) and TALOI1234 (reject)",
				"Re-run the Referral Code Integrity check",
			},
		},
		Rule{
			Category:     CategoryNavigation,
			CategoryName: CategoryNavigation.String(),
			Title:        "Remove stale navigation guard wiring",
			Steps: []FixStep{
				{
					FileReference:     "lib/screens/home/community_screen.dart",
					FunctionReference: "build",
					Description:       "Comment out the navigation guard import and unwrap createSafePopScope",
				},
				{
					FileReference:     "lib/screens/home/profile_screen.dart",
					FunctionReference: "build",
					Description:       "Comment out the navigation guard import and unwrap createSafePopScope",
				},
				{
					FileReference:     "lib/screens/home/land_screen.dart",
					FunctionReference: "build",
					Description:       "Comment out the navigation guard import and unwrap createSafePopScope",
				},
				{
					FileReference:     "lib/screens/home/payments_screen.dart",
					FunctionReference: "build",
					Description:       "Comment out the navigation guard import and unwrap createSafePopScope",
				},
			},
			VerificationSteps: []string{
				"Open each home tab and confirm back navigation works without a guard dialog",
				"Re-run the Navigation Guards check",
			},
		},
		Rule{
			Category:     CategoryAdminBootstrap,
			CategoryName: CategoryAdminBootstrap.String(),
			Title:        "Seed the admin bootstrap account",
			Steps: []FixStep{
				{
					FileReference:     "assets/config/admin_bootstrap.yaml",
					FunctionReference: "seedAdminAccount",
					Description:       "Write the admin phone number and role into the bootstrap seed",
				},
			},
			VerificationSteps: []string{
				"Cold-start the app and confirm the admin account is provisioned",
				"Re-run the Admin Bootstrap check",
			},
		},
	)
}
