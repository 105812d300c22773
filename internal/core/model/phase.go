package model

import (
	"errors"
	"fmt"
	"strings"
)

// Built-in writing task modes.
const (
	ModeTask1 = "Task 1"
	ModeTask2 = "Task 2"
)

var (
	// ErrEmptyModeID indicates a mode without an identifier.
	ErrEmptyModeID = errors.New("empty mode id")
	// ErrDuplicateMode indicates two modes sharing one identifier.
	ErrDuplicateMode = errors.New("duplicate mode")
	// ErrInvalidDuration indicates a phase shorter than one minute.
	ErrInvalidDuration = errors.New("phase duration must be at least one minute")
)

// Phase is a named, fixed-duration step of a writing task.
type Phase struct {
	Name            string
	DurationMinutes int
}

// Mode is an ordered phase list selectable by ID.
type Mode struct {
	ID     string
	Phases []Phase
}

// Catalog is a read-only, ordered set of modes.
type Catalog struct {
	modes []Mode
	index map[string]int
}

// NewCatalog validates and copies the provided modes.
// A mode with no phases is accepted; a phase shorter than a minute is not.
func NewCatalog(modes ...Mode) (Catalog, error) {
	catalog := Catalog{
		modes: make([]Mode, 0, len(modes)),
		index: make(map[string]int, len(modes)),
	}
	for _, mode := range modes {
		id := strings.TrimSpace(mode.ID)
		if id == "" {
			return Catalog{}, ErrEmptyModeID
		}
		if _, exists := catalog.index[id]; exists {
			return Catalog{}, fmt.Errorf("add mode %q: %w", id, ErrDuplicateMode)
		}
		for _, phase := range mode.Phases {
			if phase.DurationMinutes < 1 {
				return Catalog{}, fmt.Errorf("add mode %q phase %q: %w", id, phase.Name, ErrInvalidDuration)
			}
		}
		catalog.index[id] = len(catalog.modes)
		catalog.modes = append(catalog.modes, Mode{
			ID:     id,
			Phases: append([]Phase(nil), mode.Phases...),
		})
	}
	return catalog, nil
}

// DefaultCatalog returns the built-in Task 1 and Task 2 phase lists.
func DefaultCatalog() Catalog {
	catalog, err := NewCatalog(
		Mode{
			ID: ModeTask1,
			Phases: []Phase{
				{Name: "Read the question and analyse charts", DurationMinutes: 3},
				{Name: "Write introduction and overview", DurationMinutes: 5},
				{Name: "Write body 1", DurationMinutes: 5},
				{Name: "Write body 2", DurationMinutes: 5},
				{Name: "Edit & Review", DurationMinutes: 2},
			},
		},
		Mode{
			ID: ModeTask2,
			Phases: []Phase{
				{Name: "Read the question and understand the task", DurationMinutes: 3},
				{Name: "Brainstorm Ideas", DurationMinutes: 4},
				{Name: "Plan Structure", DurationMinutes: 3},
				{Name: "Write Essay", DurationMinutes: 27},
				{Name: "Edit & Review", DurationMinutes: 3},
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return catalog
}

// Modes returns mode identifiers in catalog order.
func (catalog Catalog) Modes() []string {
	ids := make([]string, 0, len(catalog.modes))
	for _, mode := range catalog.modes {
		ids = append(ids, mode.ID)
	}
	return ids
}

// Phases returns a copy of the phase list for a mode.
func (catalog Catalog) Phases(id string) ([]Phase, bool) {
	position, ok := catalog.index[id]
	if !ok {
		return nil, false
	}
	return append([]Phase(nil), catalog.modes[position].Phases...), true
}

// Has reports whether the catalog contains the mode.
func (catalog Catalog) Has(id string) bool {
	_, ok := catalog.index[id]
	return ok
}

// Default returns the first mode ID, or an empty string for an empty catalog.
func (catalog Catalog) Default() string {
	if len(catalog.modes) == 0 {
		return ""
	}
	return catalog.modes[0].ID
}
