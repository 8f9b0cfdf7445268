package owners

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	byID   map[int64]Owner
	nextID int64
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Owner{}}
}

func (r *testRepo) Create(ctx context.Context, o Owner) (Owner, error) {
	r.nextID++
	o.ID = r.nextID
	r.byID[o.ID] = o
	return o, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Owner, error) {
	o, ok := r.byID[id]
	if !ok {
		return Owner{}, ErrNotFound
	}
	return o, nil
}

func (r *testRepo) GetAllByID(ctx context.Context, ids []int64) ([]Owner, error) {
	out := []Owner{}
	for _, id := range ids {
		if o, ok := r.byID[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *testRepo) List(ctx context.Context) ([]Owner, error) {
	return r.GetAllByID(ctx, nil)
}

func (r *testRepo) Search(ctx context.Context, name string, limit int) ([]Owner, error) {
	return []Owner{}, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{FirstName: "Ann"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without last name, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{FirstName: "Ann", LastName: "Smith", Email: "nope"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for email, got %v", err)
	}
	o, err := svc.Create(ctx, CreateInput{FirstName: " Ann ", LastName: "Smith", Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID == 0 || o.FullName() != "Ann Smith" {
		t.Fatalf("unexpected owner: %+v", o)
	}
}

func TestGetAllByID_DedupesAndReportsMissing(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()
	a, _ := svc.Create(ctx, CreateInput{FirstName: "Ann", LastName: "Smith"})

	m, err := svc.GetAllByID(ctx, []int64{a.ID, a.ID})
	if err != nil || len(m) != 1 {
		t.Fatalf("expected one owner, got %+v %v", m, err)
	}
	if _, err := svc.GetAllByID(ctx, []int64{a.ID, 99}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_RunsHooksFirst(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()
	a, _ := svc.Create(ctx, CreateInput{FirstName: "Ann", LastName: "Smith"})

	var detached []int64
	svc.OnDelete(func(ctx context.Context, ownerID int64) error {
		if _, ok := repo.byID[ownerID]; !ok {
			t.Fatalf("hook must run before the owner is removed")
		}
		detached = append(detached, ownerID)
		return nil
	})

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(detached) != 1 || detached[0] != a.ID {
		t.Fatalf("unexpected hook calls: %v", detached)
	}
	if err := svc.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if len(detached) != 1 {
		t.Fatalf("hooks must not run for missing owners")
	}
}

func TestDelete_HookErrorAborts(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()
	a, _ := svc.Create(ctx, CreateInput{FirstName: "Ann", LastName: "Smith"})

	boom := errors.New("boom")
	svc.OnDelete(func(context.Context, int64) error { return boom })

	if err := svc.Delete(ctx, a.ID); !errors.Is(err, boom) {
		t.Fatalf("expected hook error, got %v", err)
	}
	if _, ok := repo.byID[a.ID]; !ok {
		t.Fatalf("owner must survive a failed hook")
	}
}
