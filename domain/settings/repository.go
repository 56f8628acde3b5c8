package settings

import "context"

// Repository defines persistence for settings.
type Repository interface {
	// Load returns the stored settings merged over Defaults.
	// A missing store yields Defaults and no error.
	Load(ctx context.Context) (*Settings, error)

	// Save persists the settings.
	Save(ctx context.Context, s *Settings) error
}
