package dto

import "gocycling/internal/modules/preferences/domain"

// Values of PreferencesOutput.DeletionMode.
const (
	DeletionPrompt    = string(domain.DeletionPrompt)
	DeletionImmediate = string(domain.DeletionImmediate)
	DeletionSkip      = string(domain.DeletionSkip)
)

type PreferencesOutput struct {
	Units                string
	Sort                 string
	SortLabel            string
	DeletionConfirmation bool
	DeletionEnabled      bool
	DeletionMode         string
	Colour               string
	LargeMetrics         bool
}

// UpdateInput changes only the fields that are set.
type UpdateInput struct {
	Units                *string
	Sort                 *string
	DeletionConfirmation *bool
	DeletionEnabled      *bool
	Colour               *string
	LargeMetrics         *bool
}
