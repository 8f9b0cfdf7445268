package pedigree

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrTransport         = errors.New("registry unreachable")
	ErrParentSexMismatch = errors.New("parent sex does not match slot")
)

type Slot string

const (
	SlotFemale Slot = "parentFemale"
	SlotMale   Slot = "parentMale"
)

// Sex devuelve el sexo que exige el slot.
func (s Slot) Sex() Sex {
	if s == SlotMale {
		return SexMale
	}
	return SexFemale
}

// SlotError reporta el fallo de un slot de padre sin afectar al otro.
type SlotError struct {
	Slot Slot
	ID   int64
	Err  error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%s #%d: %v", e.Slot, e.ID, e.Err)
}

func (e *SlotError) Unwrap() error { return e.Err }
