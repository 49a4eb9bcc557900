package probes

import (
	"context"
	"fmt"

	"github.com/talowa/remedy/internal/domain"
)

// Registry holds the suite's validators in execution order and serves
// the engine's re-validation path.
type Registry struct {
	byCase map[domain.TestCase]domain.Validator
	order  []domain.Validator
}

// NewRegistry builds the standard probe set for the target tree.
func NewRegistry(root string) *Registry {
	r := &Registry{byCase: make(map[domain.TestCase]domain.Validator)}
	for _, v := range []domain.Validator{
		NewAuthFlowProbe(root),
		NewRegistrationProbe(root),
		NewReferralProbe(root),
		NewNavigationProbe(root),
		NewBootstrapProbe(root),
	} {
		r.byCase[v.Case()] = v
		r.order = append(r.order, v)
	}
	return r
}

// Validators returns the probes in suite execution order.
func (r *Registry) Validators() []domain.Validator {
	out := make([]domain.Validator, len(r.order))
	copy(out, r.order)
	return out
}

// Revalidate re-runs the probe whose case matches testName.
func (r *Registry) Revalidate(ctx context.Context, testName string) (domain.ValidationResult, error) {
	c, err := domain.ParseTestCase(testName)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	v, ok := r.byCase[c]
	if !ok {
		return domain.ValidationResult{}, fmt.Errorf("no validator registered for %s", c.Key())
	}
	return v.Run(ctx), nil
}
