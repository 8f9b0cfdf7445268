package owners

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// DeleteHook corre antes de borrar un owner (p.ej. soltar referencias desde caballos).
type DeleteHook func(ctx context.Context, ownerID int64) error

type Service struct {
	repo     Repository
	onDelete []DeleteHook
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// OnDelete registra un hook. Se usa para evitar ciclos de imports (owners <-> horses).
func (s *Service) OnDelete(h DeleteHook) {
	if h != nil {
		s.onDelete = append(s.onDelete, h)
	}
}

type CreateInput struct {
	FirstName   string
	LastName    string
	Email       string
	Description string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Owner, error) {
	o := Owner{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       strings.TrimSpace(in.Email),
		Description: strings.TrimSpace(in.Description),
	}
	if o.FirstName == "" || o.LastName == "" {
		return Owner{}, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if o.Email != "" {
		if _, err := mail.ParseAddress(o.Email); err != nil {
			return Owner{}, fmt.Errorf("%w: email is not valid", ErrInvalidInput)
		}
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Owner, error) {
	return s.repo.GetByID(ctx, id)
}

// GetAllByID devuelve un mapa id -> owner. Si falta alguno => ErrNotFound.
func (s *Service) GetAllByID(ctx context.Context, ids []int64) (map[int64]Owner, error) {
	out := make(map[int64]Owner, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	uniq := make([]int64, 0, len(ids))
	seen := map[int64]struct{}{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	found, err := s.repo.GetAllByID(ctx, uniq)
	if err != nil {
		return nil, err
	}
	for _, o := range found {
		out[o.ID] = o
	}
	for _, id := range uniq {
		if _, ok := out[id]; !ok {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
	}
	return out, nil
}

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	return s.repo.List(ctx)
}

func (s *Service) Search(ctx context.Context, name string, limit int) ([]Owner, error) {
	return s.repo.Search(ctx, strings.TrimSpace(name), limit)
}

// Delete corre los hooks registrados y luego borra. Borrar un id inexistente => ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	for _, h := range s.onDelete {
		if err := h(ctx, id); err != nil {
			return fmt.Errorf("owner delete hook: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}
