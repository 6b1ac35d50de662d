package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRenovation is returned for ids that are not in the catalog.
	ErrUnknownRenovation = errors.New("unknown renovation")
	// ErrNotApplicable is returned when a measure is forced on a building whose
	// state excludes it, e.g. a heat pump for a building that already has one.
	ErrNotApplicable = errors.New("renovation not applicable")
)

// MissingAttributeError reports a building attribute a measure strictly needs.
type MissingAttributeError struct {
	BuildingID   string
	RenovationID string
	Attribute    string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("building %s: %s requires %s", e.BuildingID, e.RenovationID, e.Attribute)
}
