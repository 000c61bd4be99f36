package catalog

import (
	"strings"

	"github.com/outrun/memeverse/internal/domain/project"
)

// AllChains is the chain filter value that disables chain filtering.
const AllChains = "all"

// Criteria holds the active filter inputs.
type Criteria struct {
	Chain      string
	StageID    string
	Search     string
	Mode       project.Mode
	ListedOnly bool
}

// Filter returns the projects matching every active criterion, in their
// original order. The input slice is not modified.
func Filter(projects []project.Project, c Criteria) []project.Project {
	stage, ok := project.ParseStage(c.StageID)
	if !ok {
		return []project.Project{}
	}
	genesis := stage == project.StageGenesis
	chain := strings.TrimSpace(c.Chain)
	query := strings.ToLower(c.Search)

	out := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if p.Stage != stage {
			continue
		}
		if genesis && p.Mode != c.Mode {
			continue
		}
		if genesis && c.ListedOnly && !p.ListedOnOutSwap {
			continue
		}
		if chain != "" && chain != AllChains && !strings.EqualFold(p.Chain, chain) {
			continue
		}
		if query != "" && !matchesSearch(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p project.Project, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowered) ||
		strings.Contains(strings.ToLower(p.Symbol), lowered) ||
		strings.Contains(strings.ToLower(p.Description), lowered)
}
