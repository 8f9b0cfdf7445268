package horses

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("horse not found")

type Repository interface {
	// Create asigna el ID y devuelve el caballo persistido.
	Create(ctx context.Context, h Horse) (Horse, error)
	Update(ctx context.Context, h Horse) error
	GetByID(ctx context.Context, id int64) (Horse, error)
	List(ctx context.Context) ([]Horse, error)
	Search(ctx context.Context, f Filter) ([]Horse, error)
	Delete(ctx context.Context, id int64) error

	// DetachParent deja en NULL los slots de padre que apuntan a parentID.
	DetachParent(ctx context.Context, parentID int64) error
	DetachOwner(ctx context.Context, ownerID int64) error
}

// Filter se aplica como intersección. Campo vacío = sin restricción.
type Filter struct {
	Name        string     // substring, case-insensitive
	Description string     // substring, case-insensitive
	BornBefore  *time.Time // date_of_birth < BornBefore
	Sex         Sex

	// OwnerIDs solo aplica si FilterOwners es true (un set vacío no devuelve nada).
	FilterOwners bool
	OwnerIDs     []int64

	Limit int
}
