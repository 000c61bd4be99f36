package filterstate

import (
	"log/slog"
	"strings"

	"github.com/outrun/memeverse/internal/domain/catalog"
	"github.com/outrun/memeverse/internal/domain/project"
)

// normalize replaces values outside the closed enumerations with safe
// defaults and logs each replacement.
func normalize(s State, logger *slog.Logger) State {
	s.Chain = strings.ToLower(strings.TrimSpace(s.Chain))
	if s.Chain == "" {
		s.Chain = catalog.AllChains
	}

	stage, ok := project.ParseStage(s.Stage)
	if !ok {
		logger.Warn("unknown stage filter, using default", "stage", s.Stage)
		stage = project.StageGenesis
	}
	s.Stage = stage.ID()

	if mode, ok := project.ParseMode(string(s.Mode)); ok {
		s.Mode = mode
	} else {
		logger.Warn("unknown mode, using default", "mode", s.Mode)
		s.Mode = project.ModeNormal
	}

	if !s.SortDirection.Valid() {
		logger.Warn("unknown sort direction, using default", "direction", s.SortDirection)
		s.SortDirection = catalog.Desc
	}

	if !catalog.Offered(stage, s.Mode, s.SortOption) {
		if catalog.Known(s.SortOption) {
			logger.Debug("sort option not offered for stage, using default",
				"sort", s.SortOption, "stage", s.Stage, "mode", s.Mode)
		} else {
			logger.Warn("unknown sort option, using default", "sort", s.SortOption)
		}
		s.SortOption = catalog.DefaultSortKey
	}

	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
	if !s.ActiveDropdown.Valid() {
		s.ActiveDropdown = DropdownNone
	}
	return s
}
