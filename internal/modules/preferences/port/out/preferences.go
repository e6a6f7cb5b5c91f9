package out

import (
	"context"

	"gocycling/internal/modules/preferences/domain"
)

type Store interface {
	// Load returns the defaults when nothing has been saved yet.
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}
