package pedigree

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"horse-registry/internal/platform/logger"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// EditSession es la copia propia del formulario: el caballo y sus listas de candidatos.
// ResolveErr guarda los fallos de resolución de padres (la carga igual es válida).
type EditSession struct {
	Mode       Mode
	Horse      Horse
	Candidates Candidates
	ResolveErr error
}

type Editor struct {
	store      Store
	candidates *CandidateBuilder
	resolver   *Resolver
	log        logger.Logger
}

func NewEditor(store Store, log logger.Logger) *Editor {
	if log == nil {
		log = logger.Nop()
	}
	return &Editor{
		store:      store,
		candidates: NewCandidateBuilder(store),
		resolver:   NewResolver(store, log),
		log:        log,
	}
}

// NewSession prepara el modo alta: ningún caballo excluido de los candidatos.
func (e *Editor) NewSession(ctx context.Context) (*EditSession, error) {
	c, err := e.candidates.Build(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &EditSession{Mode: ModeCreate, Candidates: c}, nil
}

// LoadForEdit trae el caballo y los candidatos en paralelo y después resuelve los padres.
func (e *Editor) LoadForEdit(ctx context.Context, id int64) (*EditSession, error) {
	s := &EditSession{Mode: ModeEdit}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := e.store.Get(gctx, id)
		if err != nil {
			return fmt.Errorf("load horse %d: %w", id, err)
		}
		s.Horse = h
		return nil
	})
	g.Go(func() error {
		c, err := e.candidates.Build(gctx, &id)
		if err != nil {
			return fmt.Errorf("load candidates: %w", err)
		}
		s.Candidates = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.ResolveErr = e.resolver.Resolve(ctx, &s.Horse, &s.Candidates)
	if s.ResolveErr != nil {
		e.log.Warn("horse loaded with unresolved parents", map[string]any{
			"horse_id": id,
			"error":    s.ResolveErr.Error(),
		})
	}
	return s, nil
}

// Save crea o actualiza según el caballo tenga id. No modifica la sesión si falla.
func (e *Editor) Save(ctx context.Context, s *EditSession) (Horse, error) {
	if s == nil {
		return Horse{}, fmt.Errorf("%w: nil session", ErrValidation)
	}
	if err := validateForSave(s.Horse); err != nil {
		return Horse{}, err
	}

	if s.Horse.ID == nil {
		return e.store.Create(ctx, ToCreate(s.Horse))
	}
	id, upd, err := ToUpdate(s.Horse)
	if err != nil {
		return Horse{}, err
	}
	return e.store.Update(ctx, id, upd)
}

func (e *Editor) Delete(ctx context.Context, id int64) error {
	return e.store.Delete(ctx, id)
}

func validateForSave(h Horse) error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if h.DateOfBirth.IsZero() {
		return fmt.Errorf("%w: dateOfBirth is required", ErrValidation)
	}
	if _, err := ParseSex(string(h.Sex)); err != nil {
		return err
	}
	if err := CheckParentSexes(h); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
