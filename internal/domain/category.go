package domain

import "strings"

// FailureCategory is the structured tag a failure is classified under
// before rule lookup. Classification replaces free-text matching with
// explicit tables; anything the tables do not cover is CategoryUnknown,
// which deliberately means "no automatic fix available".
type FailureCategory int

const (
	CategoryUnknown FailureCategory = iota
	CategoryAuthFlow
	CategoryRegistration
	CategoryReferralCode
	CategoryNavigation
	CategoryAdminBootstrap
)

var categoryNames = map[FailureCategory]string{
	CategoryUnknown:        "unknown",
	CategoryAuthFlow:       "auth_flow",
	CategoryRegistration:   "registration",
	CategoryReferralCode:   "referral_code",
	CategoryNavigation:     "navigation",
	CategoryAdminBootstrap: "admin_bootstrap",
}

func (c FailureCategory) String() string { return categoryNames[c] }

// moduleCategories maps a suspected module identifier to its category.
// This is the primary classification key.
var moduleCategories = map[string]FailureCategory{
	"AuthService":             CategoryAuthFlow,
	"LoginScreen":             CategoryAuthFlow,
	"RegistrationService":     CategoryRegistration,
	"RegistrationScreen":      CategoryRegistration,
	"ReferralService":         CategoryReferralCode,
	"ReferralCodeService":     CategoryReferralCode,
	"NavigationGuardService":  CategoryNavigation,
	"BootstrapService":        CategoryAdminBootstrap,
	"AdminBootstrapService":   CategoryAdminBootstrap,
	"FirestoreSeedData":       CategoryAdminBootstrap,
	"DeepLinkHandler":         CategoryNavigation,
	"PhoneVerificationScreen": CategoryRegistration,
}

// testNameCategories is the fallback when no suspected module was
// recorded on the failure.
var testNameCategories = map[string]FailureCategory{
	TestCaseAuthFlow.Name():       CategoryAuthFlow,
	TestCaseRegistration.Name():   CategoryRegistration,
	TestCaseReferralCode.Name():   CategoryReferralCode,
	TestCaseNavigation.Name():     CategoryNavigation,
	TestCaseAdminBootstrap.Name(): CategoryAdminBootstrap,
}

// messageMarkers is the last-resort table: an ordered list of message
// substrings with their categories. Order matters, first match wins.
var messageMarkers = []struct {
	marker   string
	category FailureCategory
}{
	{"referral code", CategoryReferralCode},
	{"navigation guard", CategoryNavigation},
	{"admin bootstrap", CategoryAdminBootstrap},
	{"registration", CategoryRegistration},
	{"login", CategoryAuthFlow},
	{"auth", CategoryAuthFlow},
}

// Classify resolves a failing result to its category. Passing results
// and unmatched failures classify as CategoryUnknown.
func Classify(testName string, result ValidationResult) FailureCategory {
	if result.Passed {
		return CategoryUnknown
	}
	if result.SuspectedModule != "" {
		if cat, ok := moduleCategories[result.SuspectedModule]; ok {
			return cat
		}
		// An unrecognized module name is a deliberate no-fix outcome,
		// not a prompt for best-effort parsing.
		return CategoryUnknown
	}
	if cat, ok := testNameCategories[testName]; ok {
		return cat
	}
	lower := strings.ToLower(result.Message)
	for _, m := range messageMarkers {
		if strings.Contains(lower, m.marker) {
			return m.category
		}
	}
	return CategoryUnknown
}
