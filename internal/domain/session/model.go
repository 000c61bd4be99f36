package session

import (
	"time"

	"github.com/outrun/memeverse/internal/domain/catalog"
	"github.com/outrun/memeverse/internal/domain/filterstate"
)

// Record is the persisted form of a view session.
type Record struct {
	ID        string            `json:"id"`
	State     filterstate.State `json:"state"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// View is one rendered catalog page together with the state that produced it.
type View struct {
	SessionID   string               `json:"session_id"`
	State       filterstate.State    `json:"state"`
	Result      catalog.Result       `json:"result"`
	SortOptions []catalog.SortOption `json:"sort_options"`
	Query       string               `json:"query"`
	URLUpdate   *string              `json:"url_update,omitempty"`
}

// PageChange reports the outcome of a page request.
type PageChange struct {
	Accepted    bool `json:"accepted"`
	ScrollToTop bool `json:"scroll_to_top"`
	View        View `json:"view"`
}
