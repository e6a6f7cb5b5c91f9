package domain

import (
	"fmt"
	"strings"

	historydomain "gocycling/internal/modules/history/domain"
	"gocycling/internal/platform/units"
)

const SchemaVersion = 1

type Colour string

const (
	ColourBlue   Colour = "blue"
	ColourGreen  Colour = "green"
	ColourOrange Colour = "orange"
	ColourPink   Colour = "pink"
	ColourPurple Colour = "purple"
	ColourRed    Colour = "red"
	ColourYellow Colour = "yellow"
)

var colours = []Colour{ColourBlue, ColourGreen, ColourOrange, ColourPink, ColourPurple, ColourRed, ColourYellow}

func Colours() []Colour {
	out := make([]Colour, len(colours))
	copy(out, colours)
	return out
}

func ParseColour(raw string) (Colour, error) {
	c := Colour(strings.ToLower(strings.TrimSpace(raw)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Colour) Validate() error {
	for _, known := range colours {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("unsupported colour %q", string(c))
}

// DeletionMode is what a delete request does under the current preferences.
type DeletionMode string

const (
	DeletionPrompt    DeletionMode = "prompt"
	DeletionImmediate DeletionMode = "immediate"
	DeletionSkip      DeletionMode = "skip"
)

type Preferences struct {
	Units                units.System
	Sort                 historydomain.SortChoice
	DeletionConfirmation bool
	DeletionEnabled      bool
	Colour               Colour
	LargeMetrics         bool
}

func Default() Preferences {
	return Preferences{
		Units:                units.Metric,
		Sort:                 historydomain.DefaultSort,
		DeletionConfirmation: true,
		DeletionEnabled:      true,
		Colour:               ColourBlue,
	}
}

func (p Preferences) Validate() error {
	if err := p.Units.Validate(); err != nil {
		return err
	}
	if err := p.Sort.Validate(); err != nil {
		return err
	}
	return p.Colour.Validate()
}

// DeletionMode resolves the two deletion flags. With deletion disabled the
// request is dropped whatever the confirmation flag says.
func (p Preferences) DeletionMode() DeletionMode {
	switch {
	case p.DeletionEnabled && p.DeletionConfirmation:
		return DeletionPrompt
	case p.DeletionEnabled:
		return DeletionImmediate
	default:
		return DeletionSkip
	}
}
