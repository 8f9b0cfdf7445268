package pedigree

import "context"

// Fuente de verdad del registro. No hay caché: cada lectura vuelve a pedir.

type HorseGetter interface {
	Get(ctx context.Context, id int64) (Horse, error)
}

type HorseLister interface {
	All(ctx context.Context) ([]Horse, error)
}

type HorseSearcher interface {
	HorseLister
	Search(ctx context.Context, params map[string]string) ([]Horse, error)
}

type Store interface {
	HorseGetter
	HorseSearcher
	Create(ctx context.Context, in HorseCreate) (Horse, error)
	Update(ctx context.Context, id int64, in HorseUpdate) (Horse, error)
	Delete(ctx context.Context, id int64) error
}
