// Package state persists named selections. Only the expression text is
// stored, never evaluated atom sets; a named selection is re-evaluated
// against whatever structure is loaded when it is used.
package state

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a named selection does not exist.
var ErrNotFound = errors.New("named selection not found")

// NamedSelection is one stored selection bookmark.
type NamedSelection struct {
	ID         string
	Name       string
	Expression string
	AtomCount  int // match count against the structure it was saved from
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store is the named-selection storage interface.
type Store interface {
	SaveSelection(name, expression string, atomCount int) (*NamedSelection, error)
	GetSelection(name string) (*NamedSelection, error)
	ListSelections() ([]*NamedSelection, error)
	DeleteSelection(name string) error
	Close() error
}
