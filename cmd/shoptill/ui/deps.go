package ui

import (
	"time"

	"go.uber.org/zap"

	"shoptill/internal/api"
	"shoptill/internal/draft"
)

// Deps carries everything a page needs: the backend client, the draft
// cache, and presentation settings. Pages share no state beyond this.
type Deps struct {
	API      *api.Client
	Drafts   draft.Store
	Log      *zap.Logger
	Styles   Styles
	Debounce time.Duration
}

// Logger returns a usable logger even when none was wired.
func (d *Deps) Logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}
