package pedigree

import (
	"context"
	"errors"
	"sync"

	"horse-registry/internal/platform/logger"
)

// Resolver reemplaza padres que llegaron como id por su registro completo.
type Resolver struct {
	store HorseGetter
	log   logger.Logger
}

func NewResolver(store HorseGetter, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{store: store, log: log}
}

// Resolve resuelve in-place los slots Unresolved de h (una sola consulta por slot).
// Los slots Absent o ya Resolved no se tocan. Si c no es nil, el padre resuelto se agrega
// a la lista de candidatos de su sexo cuando todavía no está.
//
// Los dos slots se resuelven en paralelo y cada uno solo escribe su campo y su lista.
// Un slot que falla conserva el id original; el error se devuelve como *SlotError
// (ambos unidos con errors.Join).
func (r *Resolver) Resolve(ctx context.Context, h *Horse, c *Candidates) error {
	if h == nil {
		return nil
	}

	var femaleList, maleList *[]Horse
	if c != nil {
		femaleList = &c.Female
		maleList = &c.Male
	}

	var wg sync.WaitGroup
	var femaleErr, maleErr error
	if h.ParentFemale.Kind() == RefUnresolved {
		wg.Go(func() {
			femaleErr = r.resolveSlot(ctx, SlotFemale, &h.ParentFemale, femaleList)
		})
	}
	if h.ParentMale.Kind() == RefUnresolved {
		wg.Go(func() {
			maleErr = r.resolveSlot(ctx, SlotMale, &h.ParentMale, maleList)
		})
	}
	wg.Wait()

	return errors.Join(femaleErr, maleErr)
}

func (r *Resolver) resolveSlot(ctx context.Context, slot Slot, ref *ParentRef, list *[]Horse) error {
	id, _ := ref.ID()

	rec, err := r.store.Get(ctx, id)
	if err != nil {
		r.log.Warn("parent resolution failed", map[string]any{
			"slot":  string(slot),
			"id":    id,
			"error": err.Error(),
		})
		return &SlotError{Slot: slot, ID: id, Err: err}
	}
	if rec.ID == nil {
		rec.ID = &id
	}
	if rec.Sex != slot.Sex() {
		r.log.Warn("parent has wrong sex for slot", map[string]any{
			"slot": string(slot),
			"id":   id,
			"sex":  string(rec.Sex),
		})
		return &SlotError{Slot: slot, ID: id, Err: ErrParentSexMismatch}
	}

	*ref = ParentRecord(&rec)

	if list != nil && !containsHorse(*list, &rec) {
		*list = append(*list, rec)
	}
	return nil
}
