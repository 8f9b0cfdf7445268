package owners

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("owner not found")

type Repository interface {
	// Create asigna el ID y devuelve el owner persistido.
	Create(ctx context.Context, o Owner) (Owner, error)
	GetByID(ctx context.Context, id int64) (Owner, error)
	GetAllByID(ctx context.Context, ids []int64) ([]Owner, error)
	List(ctx context.Context) ([]Owner, error)
	// Search filtra por substring de "nombre apellido" (case-insensitive). limit <= 0 => sin límite.
	Search(ctx context.Context, name string, limit int) ([]Owner, error)
	Delete(ctx context.Context, id int64) error
}
