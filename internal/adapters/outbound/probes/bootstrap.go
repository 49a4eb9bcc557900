package probes

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/talowa/remedy/internal/domain"
)

const bootstrapSeedFile = "assets/config/admin_bootstrap.yaml"

type bootstrapSeed struct {
	AdminProvisioned bool   `yaml:"admin_provisioned"`
	AdminPhone       string `yaml:"admin_phone"`
	AdminRole        string `yaml:"admin_role"`
}

// BootstrapProbe checks that the admin bootstrap seed declares a
// provisioned admin account.
type BootstrapProbe struct {
	root string
}

func NewBootstrapProbe(root string) *BootstrapProbe {
	return &BootstrapProbe{root: root}
}

func (p *BootstrapProbe) Case() domain.TestCase { return domain.TestCaseAdminBootstrap }

func (p *BootstrapProbe) Run(ctx context.Context) domain.ValidationResult {
	data, err := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(bootstrapSeedFile)))
	if err != nil {
		return domain.Fail("admin bootstrap seed file not found",
			domain.WithErrorDetails(err.Error()),
			domain.WithSuspectedModule("BootstrapService"),
			domain.WithSuggestedFix("create "+bootstrapSeedFile+" with the admin account"),
		)
	}

	var seed bootstrapSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return domain.Fail("admin bootstrap seed file is not valid YAML",
			domain.WithErrorDetails(err.Error()),
			domain.WithSuspectedModule("BootstrapService"),
		)
	}

	if !seed.AdminProvisioned || seed.AdminPhone == "" {
		return domain.Fail("admin account is not provisioned in the bootstrap seed",
			domain.WithSuspectedModule("BootstrapService"),
			domain.WithSuggestedFix("set admin_provisioned and the admin phone number"),
		)
	}
	return domain.Pass("admin bootstrap seed declares a provisioned admin account")
}
