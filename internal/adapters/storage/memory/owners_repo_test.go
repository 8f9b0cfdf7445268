package memory

import (
	"context"
	"errors"
	"testing"

	"horse-registry/internal/domain/owners"
)

func TestOwnerRepo_SearchAndGetAll(t *testing.T) {
	ctx := context.Background()
	repo := NewOwnerRepo()

	ann, _ := repo.Create(ctx, owners.Owner{FirstName: "Ann", LastName: "Smith"})
	repo.Create(ctx, owners.Owner{FirstName: "Bob", LastName: "Smithers"})
	repo.Create(ctx, owners.Owner{FirstName: "Carl", LastName: "Jones"})

	got, err := repo.Search(ctx, "smith", 0)
	if err != nil || len(got) != 2 {
		t.Fatalf("expected 2 smiths, got %d %v", len(got), err)
	}
	got, _ = repo.Search(ctx, "ann smi", 0)
	if len(got) != 1 || got[0].ID != ann.ID {
		t.Fatalf("expected full-name match on Ann, got %+v", got)
	}
	got, _ = repo.Search(ctx, "", 1)
	if len(got) != 1 {
		t.Fatalf("expected limit 1, got %d", len(got))
	}

	all, err := repo.GetAllByID(ctx, []int64{ann.ID, 404})
	if err != nil || len(all) != 1 {
		t.Fatalf("expected missing ids ignored, got %+v %v", all, err)
	}

	if err := repo.Delete(ctx, ann.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, ann.ID); !errors.Is(err, owners.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
