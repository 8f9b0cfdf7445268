package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"horse-registry/internal/domain/horses"
	"horse-registry/internal/domain/owners"
)

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Fatalf("unexpected escape: %q", got)
	}
}

// Necesita un Postgres descartable: TEST_DB_DSN=postgres://... go test ./...
func openTestDB(t *testing.T) *HorsesRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if _, err := db.ExecContext(ctx, `TRUNCATE horses, owners RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return NewHorsesRepo(db)
}

func TestHorsesRepo_Postgres(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()
	ownersRepo := NewOwnersRepo(repo.db)

	ann, err := ownersRepo.Create(ctx, owners.Owner{FirstName: "Ann", LastName: "Smith"})
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}

	now := time.Now().UTC()
	mare, err := repo.Create(ctx, horses.Horse{
		Name: "Luna", DateOfBirth: time.Date(2010, 5, 1, 0, 0, 0, 0, time.UTC), Sex: horses.SexFemale,
		OwnerID: &ann.ID, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("create mare: %v", err)
	}
	foal, err := repo.Create(ctx, horses.Horse{
		Name: "Comet", DateOfBirth: time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC), Sex: horses.SexMale,
		ParentFemaleID: &mare.ID, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("create foal: %v", err)
	}

	missing := int64(999)
	if _, err := repo.Create(ctx, horses.Horse{Name: "x", Sex: horses.SexMale, ParentMaleID: &missing, CreatedAt: now, UpdatedAt: now}); !errors.Is(err, horses.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for dangling parent, got %v", err)
	}

	got, err := repo.Search(ctx, horses.Filter{FilterOwners: true, OwnerIDs: []int64{ann.ID}, Name: "LU"})
	if err != nil || len(got) != 1 || got[0].ID != mare.ID {
		t.Fatalf("unexpected search: %+v %v", got, err)
	}

	if err := repo.DetachParent(ctx, mare.ID); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if err := repo.Delete(ctx, mare.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, mare.ID); !errors.Is(err, horses.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	reloaded, err := repo.GetByID(ctx, foal.ID)
	if err != nil || reloaded.ParentFemaleID != nil {
		t.Fatalf("expected foal detached, got %+v %v", reloaded, err)
	}
}
