package domain

import (
	"errors"
	"fmt"
)

// TestCase identifies one suite test case. The set is closed: dispatch
// on a TestCase value is exhaustive and anything outside it resolves to
// ErrUnknownTestCase rather than a wildcard default.
type TestCase int

const (
	TestCaseAuthFlow TestCase = iota
	TestCaseRegistration
	TestCaseReferralCode
	TestCaseNavigation
	TestCaseAdminBootstrap
)

// ErrUnknownTestCase is returned when a dispatch key does not name a
// known test case.
var ErrUnknownTestCase = errors.New("unknown test case")

var testCaseKeys = map[TestCase]string{
	TestCaseAuthFlow:       "A",
	TestCaseRegistration:   "B1",
	TestCaseReferralCode:   "B2",
	TestCaseNavigation:     "C",
	TestCaseAdminBootstrap: "ADMIN",
}

var testCaseNames = map[TestCase]string{
	TestCaseAuthFlow:       "Auth Flow",
	TestCaseRegistration:   "Registration Flow",
	TestCaseReferralCode:   "Referral Code Integrity",
	TestCaseNavigation:     "Navigation Guards",
	TestCaseAdminBootstrap: "Admin Bootstrap",
}

// AllTestCases returns every known case in suite execution order.
func AllTestCases() []TestCase {
	return []TestCase{
		TestCaseAuthFlow,
		TestCaseRegistration,
		TestCaseReferralCode,
		TestCaseNavigation,
		TestCaseAdminBootstrap,
	}
}

// Key returns the short dispatch key ("A", "B1", "ADMIN", ...).
func (c TestCase) Key() string { return testCaseKeys[c] }

// Name returns the canonical report name for the case.
func (c TestCase) Name() string { return testCaseNames[c] }

func (c TestCase) String() string { return testCaseNames[c] }

// ParseTestCase resolves a dispatch key or report name to a TestCase.
func ParseTestCase(key string) (TestCase, error) {
	for _, c := range AllTestCases() {
		if key == testCaseKeys[c] || key == testCaseNames[c] {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTestCase, key)
}
