package probes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/talowa/remedy/internal/domain"
)

// homeScreenFiles are the screens that historically carried stale
// navigation guard wiring.
var homeScreenFiles = []string{
	"lib/screens/home/community_screen.dart",
	"lib/screens/home/land_screen.dart",
	"lib/screens/home/payments_screen.dart",
	"lib/screens/home/profile_screen.dart",
}

// NavigationProbe fails while any home screen still references the
// removed NavigationGuardService.
type NavigationProbe struct {
	root string
}

func NewNavigationProbe(root string) *NavigationProbe {
	return &NavigationProbe{root: root}
}

func (p *NavigationProbe) Case() domain.TestCase { return domain.TestCaseNavigation }

func (p *NavigationProbe) Run(ctx context.Context) domain.ValidationResult {
	var tainted []string
	for _, rel := range homeScreenFiles {
		data, err := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(rel)))
		if err != nil {
			// Screens that do not exist in this checkout cannot carry
			// guard references.
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "//") {
				continue
			}
			if strings.Contains(trimmed, "NavigationGuardService") {
				tainted = append(tainted, rel)
				break
			}
		}
	}

	if len(tainted) > 0 {
		return domain.Fail(
			fmt.Sprintf("%d home screen(s) still reference NavigationGuardService", len(tainted)),
			domain.WithErrorDetails(strings.Join(tainted, ", ")),
			domain.WithSuspectedModule("NavigationGuardService"),
			domain.WithSuggestedFix("comment out the guard import and unwrap createSafePopScope"),
		)
	}
	return domain.Pass("no home screen references NavigationGuardService")
}
