package horses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"horse-registry/internal/domain/owners"
	"horse-registry/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	DefaultTreeDepth = 3
	MaxTreeDepth     = 10
)

// FieldError describe un campo inválido.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todos los campos inválidos de un request.
// errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// OwnerDirectory es lo que horses necesita de owners.
type OwnerDirectory interface {
	GetByID(ctx context.Context, id int64) (owners.Owner, error)
	GetAllByID(ctx context.Context, ids []int64) (map[int64]owners.Owner, error)
	Search(ctx context.Context, name string, limit int) ([]owners.Owner, error)
}

type Service struct {
	repo   Repository
	owners OwnerDirectory
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, ownerDir OwnerDirectory, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		owners: ownerDir,
		log:    log,
		now:    time.Now,
	}
}

// Input sirve para alta y para update completo (PUT).
type Input struct {
	Name        string
	Description string
	DateOfBirth *time.Time
	Sex         string
	Image       string

	OwnerID        *int64
	ParentFemaleID *int64
	ParentMaleID   *int64
}

func (s *Service) Create(ctx context.Context, in Input) (Horse, error) {
	h, err := s.validate(ctx, 0, in)
	if err != nil {
		return Horse{}, err
	}
	now := s.now()
	h.CreatedAt = now
	h.UpdatedAt = now
	return s.repo.Create(ctx, h)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Horse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Horse{}, err
	}

	h, err := s.validate(ctx, id, in)
	if err != nil {
		return Horse{}, err
	}
	h.ID = id
	h.CreatedAt = current.CreatedAt
	h.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Horse, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Horse, error) {
	return s.repo.List(ctx)
}

// Criteria es el filtro que llega por query string.
type Criteria struct {
	Name        string
	Description string
	BornBefore  *time.Time
	Sex         Sex
	OwnerName   string
	Limit       int
}

func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Name) == "" &&
		strings.TrimSpace(c.Description) == "" &&
		c.BornBefore == nil &&
		c.Sex == "" &&
		strings.TrimSpace(c.OwnerName) == ""
}

// Search aplica los criterios como intersección. ownerName se traduce a un set de owner IDs.
func (s *Service) Search(ctx context.Context, c Criteria) ([]Horse, error) {
	f := Filter{
		Name:        strings.TrimSpace(c.Name),
		Description: strings.TrimSpace(c.Description),
		BornBefore:  c.BornBefore,
		Sex:         c.Sex,
		Limit:       c.Limit,
	}

	if name := strings.TrimSpace(c.OwnerName); name != "" {
		matches, err := s.owners.Search(ctx, name, 0)
		if err != nil {
			return nil, fmt.Errorf("search owners: %w", err)
		}
		if len(matches) == 0 {
			return []Horse{}, nil
		}
		f.FilterOwners = true
		for _, o := range matches {
			f.OwnerIDs = append(f.OwnerIDs, o.ID)
		}
	}

	return s.repo.Search(ctx, f)
}

// Delete suelta a los hijos que referencian al caballo (su slot queda vacío) y lo borra.
// Un segundo delete del mismo id devuelve ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DetachParent(ctx, id); err != nil {
		return fmt.Errorf("detach children of %d: %w", id, err)
	}
	return s.repo.Delete(ctx, id)
}

// DetachOwner se registra como hook de borrado de owners.
func (s *Service) DetachOwner(ctx context.Context, ownerID int64) error {
	return s.repo.DetachOwner(ctx, ownerID)
}

// OwnersOf devuelve los owners referenciados por la lista (para embeberlos en la respuesta).
func (s *Service) OwnersOf(ctx context.Context, items ...Horse) (map[int64]owners.Owner, error) {
	ids := make([]int64, 0, len(items))
	for _, h := range items {
		if h.OwnerID != nil {
			ids = append(ids, *h.OwnerID)
		}
	}
	return s.owners.GetAllByID(ctx, ids)
}

// FamilyTree arma el árbol de ancestros hasta depth generaciones.
// El límite de profundidad corta cualquier ciclo. Un padre que ya no existe se omite.
func (s *Service) FamilyTree(ctx context.Context, id int64, depth int) (*TreeNode, error) {
	if depth <= 0 {
		depth = DefaultTreeDepth
	}
	if depth > MaxTreeDepth {
		return nil, &ValidationError{Fields: []FieldError{{
			Field:   "generations",
			Message: fmt.Sprintf("must be between 1 and %d", MaxTreeDepth),
		}}}
	}

	root, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ancestors(ctx, root, depth)
}

func (s *Service) ancestors(ctx context.Context, h Horse, depth int) (*TreeNode, error) {
	node := &TreeNode{Horse: h}
	if depth <= 1 {
		return node, nil
	}

	load := func(parentID *int64) (*TreeNode, error) {
		if parentID == nil {
			return nil, nil
		}
		p, err := s.repo.GetByID(ctx, *parentID)
		if errors.Is(err, ErrNotFound) {
			s.log.Warn("dangling parent reference", map[string]any{
				"horse_id":  h.ID,
				"parent_id": *parentID,
			})
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return s.ancestors(ctx, p, depth-1)
	}

	var err error
	if node.Mother, err = load(h.ParentFemaleID); err != nil {
		return nil, err
	}
	if node.Father, err = load(h.ParentMaleID); err != nil {
		return nil, err
	}
	return node, nil
}

// validate normaliza el input y junta todos los errores de campo.
// selfID es 0 en alta.
func (s *Service) validate(ctx context.Context, selfID int64, in Input) (Horse, error) {
	verr := &ValidationError{}

	h := Horse{
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Image:          strings.TrimSpace(in.Image),
		OwnerID:        in.OwnerID,
		ParentFemaleID: in.ParentFemaleID,
		ParentMaleID:   in.ParentMaleID,
	}

	if h.Name == "" {
		verr.add("name", "is required")
	}

	sex, ok := ParseSex(in.Sex)
	if !ok {
		verr.add("sex", "must be female or male")
	}
	h.Sex = sex

	if in.DateOfBirth == nil || in.DateOfBirth.IsZero() {
		verr.add("dateOfBirth", "is required")
	} else {
		y, m, d := in.DateOfBirth.Date()
		h.DateOfBirth = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if h.DateOfBirth.After(s.now()) {
			verr.add("dateOfBirth", "must not be in the future")
		}
	}

	if h.OwnerID != nil {
		if _, err := s.owners.GetByID(ctx, *h.OwnerID); err != nil {
			if !errors.Is(err, owners.ErrNotFound) {
				return Horse{}, err
			}
			verr.add("ownerId", fmt.Sprintf("owner %d not found", *h.OwnerID))
		}
	}

	if err := s.checkParent(ctx, verr, "parentFemaleId", SexFemale, selfID, h, h.ParentFemaleID); err != nil {
		return Horse{}, err
	}
	if err := s.checkParent(ctx, verr, "parentMaleId", SexMale, selfID, h, h.ParentMaleID); err != nil {
		return Horse{}, err
	}

	if len(verr.Fields) > 0 {
		return Horse{}, verr
	}
	return h, nil
}

func (s *Service) checkParent(ctx context.Context, verr *ValidationError, field string, want Sex, selfID int64, child Horse, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if selfID != 0 && *parentID == selfID {
		verr.add(field, "a horse cannot be its own parent")
		return nil
	}

	p, err := s.repo.GetByID(ctx, *parentID)
	if errors.Is(err, ErrNotFound) {
		verr.add(field, fmt.Sprintf("horse %d not found", *parentID))
		return nil
	}
	if err != nil {
		return err
	}

	if p.Sex != want {
		verr.add(field, fmt.Sprintf("horse %d must be %s", *parentID, want))
	}
	if !child.DateOfBirth.IsZero() && p.DateOfBirth.After(child.DateOfBirth) {
		verr.add(field, fmt.Sprintf("horse %d is born after the child", *parentID))
	}
	return nil
}
