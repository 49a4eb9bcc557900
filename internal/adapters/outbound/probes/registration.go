package probes

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/talowa/remedy/internal/domain"
)

const registrationScreenFile = "lib/screens/auth/registration_screen.dart"

// RegistrationProbe checks that registration persists the referral
// code entered by the user.
type RegistrationProbe struct {
	root string
}

func NewRegistrationProbe(root string) *RegistrationProbe {
	return &RegistrationProbe{root: root}
}

func (p *RegistrationProbe) Case() domain.TestCase { return domain.TestCaseRegistration }

func (p *RegistrationProbe) Run(ctx context.Context) domain.ValidationResult {
	data, err := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(registrationScreenFile)))
	if err != nil {
		return domain.Fail("registration screen source not found",
			domain.WithErrorDetails(err.Error()),
			domain.WithSuspectedModule("RegistrationService"),
		)
	}

	if strings.Contains(string(data), "referralCode: null") {
		return domain.Fail("registration drops the entered referral code",
			domain.WithSuspectedModule("RegistrationService"),
			domain.WithSuggestedFix("pass the referral field value through to the user record"),
		)
	}
	return domain.Pass("registration persists the entered referral code")
}
