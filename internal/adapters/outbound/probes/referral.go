// Package probes ships the validators for the TALOWA application
// tree. Each probe inspects the target and returns a pass/fail result
// with enough context for the suggestion generator to match a rule.
package probes

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/talowa/remedy/internal/domain"
)

const (
	referralPrefix = "TAL"
	referralLength = 9
	// Ambiguous characters (O/I/0/1) are excluded from referral codes.
	referralCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// adminReferralCode is grandfathered in by policy despite its length.
	adminReferralCode = "TALADMIN"

	referralServiceFile = "lib/services/referral/referral_code_service.dart"
)

// ValidateCompleteReferralCode reports whether code is a well-formed
// referral code: the TAL prefix followed by six characters from the
// unambiguous charset, nine characters total. The admin code is a
// policy exception.
func ValidateCompleteReferralCode(code string) bool {
	if code == adminReferralCode {
		return true
	}
	if len(code) != referralLength {
		return false
	}
	if !strings.HasPrefix(code, referralPrefix) {
		return false
	}
	for _, c := range code[len(referralPrefix):] {
		if !strings.ContainsRune(referralCharset, c) {
			return false
		}
	}
	return true
}

// ReferralProbe checks that the app's referral code service enforces
// the unambiguous charset.
type ReferralProbe struct {
	root string
}

func NewReferralProbe(root string) *ReferralProbe {
	return &ReferralProbe{root: root}
}

func (p *ReferralProbe) Case() domain.TestCase { return domain.TestCaseReferralCode }

func (p *ReferralProbe) Run(ctx context.Context) domain.ValidationResult {
	data, err := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(referralServiceFile)))
	if err != nil {
		return domain.Fail("referral code service source not found",
			domain.WithErrorDetails(err.Error()),
			domain.WithSuspectedModule("ReferralCodeService"),
		)
	}

	if strings.Contains(string(data), "[A-Z0-9]{6}") {
		return domain.Fail("referral code validation accepts ambiguous characters (O/I/0/1)",
			domain.WithSuspectedModule("ReferralCodeService"),
			domain.WithSuggestedFix("restrict the suffix charset to "+referralCharset),
		)
	}
	return domain.Pass("referral code validation enforces the unambiguous charset")
}
