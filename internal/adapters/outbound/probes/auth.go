package probes

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/talowa/remedy/internal/domain"
)

const loginScreenFile = "lib/screens/auth/login_screen.dart"

// AuthFlowProbe checks that login starts with phone verification
// rather than password entry.
type AuthFlowProbe struct {
	root string
}

func NewAuthFlowProbe(root string) *AuthFlowProbe {
	return &AuthFlowProbe{root: root}
}

func (p *AuthFlowProbe) Case() domain.TestCase { return domain.TestCaseAuthFlow }

func (p *AuthFlowProbe) Run(ctx context.Context) domain.ValidationResult {
	data, err := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(loginScreenFile)))
	if err != nil {
		return domain.Fail("login screen source not found",
			domain.WithErrorDetails(err.Error()),
			domain.WithSuspectedModule("AuthService"),
		)
	}

	if strings.Contains(string(data), "initialAuthMethod: AuthMethod.password") {
		return domain.Fail("login flow starts with password entry instead of phone verification",
			domain.WithSuspectedModule("AuthService"),
			domain.WithSuggestedFix("set initialAuthMethod to AuthMethod.phone"),
		)
	}
	return domain.Pass("login flow starts with phone verification")
}
