package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"horse-registry/internal/domain/owners"
)

type ownerRepo struct {
	mu     sync.RWMutex
	byID   map[int64]owners.Owner
	nextID int64
}

func NewOwnerRepo() owners.Repository {
	return &ownerRepo{
		byID:   make(map[int64]owners.Owner),
		nextID: 1,
	}
}

func (r *ownerRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID != 0 {
		return owners.Owner{}, errors.New("owner id is assigned by the repository")
	}
	o.ID = r.nextID
	r.nextID++
	r.byID[o.ID] = o
	return o, nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

// GetAllByID ignora los ids inexistentes; el service decide si eso es error.
func (r *ownerRepo) GetAllByID(ctx context.Context, ids []int64) ([]owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]owners.Owner, 0, len(ids))
	for _, id := range ids {
		if o, ok := r.byID[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *ownerRepo) List(ctx context.Context) ([]owners.Owner, error) {
	return r.Search(ctx, "", 0)
}

func (r *ownerRepo) Search(ctx context.Context, name string, limit int) ([]owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]owners.Owner, 0)
	for _, o := range r.byID {
		if name == "" || containsFold(o.FullName(), name) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ownerRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return owners.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
