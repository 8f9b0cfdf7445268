package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"horse-registry/internal/domain/horses"
)

type horseRepo struct {
	mu     sync.RWMutex
	byID   map[int64]horses.Horse
	nextID int64
}

func NewHorseRepo() horses.Repository {
	return &horseRepo{
		byID:   make(map[int64]horses.Horse),
		nextID: 1,
	}
}

func (r *horseRepo) Create(ctx context.Context, h horses.Horse) (horses.Horse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.ID != 0 {
		return horses.Horse{}, errors.New("horse id is assigned by the repository")
	}
	h.ID = r.nextID
	r.nextID++
	r.byID[h.ID] = h
	return h, nil
}

func (r *horseRepo) Update(ctx context.Context, h horses.Horse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[h.ID]; !exists {
		return horses.ErrNotFound
	}
	r.byID[h.ID] = h
	return nil
}

func (r *horseRepo) GetByID(ctx context.Context, id int64) (horses.Horse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byID[id]
	if !ok {
		return horses.Horse{}, horses.ErrNotFound
	}
	return h, nil
}

func (r *horseRepo) List(ctx context.Context) ([]horses.Horse, error) {
	return r.Search(ctx, horses.Filter{})
}

func (r *horseRepo) Search(ctx context.Context, f horses.Filter) ([]horses.Horse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]horses.Horse, 0)
	for _, h := range r.byID {
		if matchesFilter(h, f) {
			out = append(out, h)
		}
	}

	// Orden estable por id (igual que el ORDER BY de postgres)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *horseRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return horses.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *horseRepo) DetachParent(ctx context.Context, parentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, h := range r.byID {
		changed := false
		if h.ParentFemaleID != nil && *h.ParentFemaleID == parentID {
			h.ParentFemaleID = nil
			changed = true
		}
		if h.ParentMaleID != nil && *h.ParentMaleID == parentID {
			h.ParentMaleID = nil
			changed = true
		}
		if changed {
			r.byID[id] = h
		}
	}
	return nil
}

func (r *horseRepo) DetachOwner(ctx context.Context, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, h := range r.byID {
		if h.OwnerID != nil && *h.OwnerID == ownerID {
			h.OwnerID = nil
			r.byID[id] = h
		}
	}
	return nil
}

func matchesFilter(h horses.Horse, f horses.Filter) bool {
	if f.Name != "" && !containsFold(h.Name, f.Name) {
		return false
	}
	if f.Description != "" && !containsFold(h.Description, f.Description) {
		return false
	}
	if f.BornBefore != nil && !h.DateOfBirth.Before(*f.BornBefore) {
		return false
	}
	if f.Sex != "" && h.Sex != f.Sex {
		return false
	}
	if f.FilterOwners {
		if h.OwnerID == nil || !slices.Contains(f.OwnerIDs, *h.OwnerID) {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
