package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"horse-registry/internal/domain/horses"
)

func dob(y int) time.Time { return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC) }

func TestHorseRepo_SearchFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewHorseRepo()

	owner := int64(3)
	for _, h := range []horses.Horse{
		{Name: "Luna", Description: "Grey mare", DateOfBirth: dob(2010), Sex: horses.SexFemale, OwnerID: &owner},
		{Name: "Thunder", Description: "Bay stallion", DateOfBirth: dob(2011), Sex: horses.SexMale},
		{Name: "Lunar", Description: "grey colt", DateOfBirth: dob(2019), Sex: horses.SexMale},
	} {
		if _, err := repo.Create(ctx, h); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	cutoff := dob(2015)
	cases := []struct {
		name string
		f    horses.Filter
		want []string
	}{
		{"all", horses.Filter{}, []string{"Luna", "Thunder", "Lunar"}},
		{"name fold", horses.Filter{Name: "LUN"}, []string{"Luna", "Lunar"}},
		{"description", horses.Filter{Description: "grey"}, []string{"Luna", "Lunar"}},
		{"born before", horses.Filter{BornBefore: &cutoff}, []string{"Luna", "Thunder"}},
		{"sex", horses.Filter{Sex: horses.SexMale}, []string{"Thunder", "Lunar"}},
		{"owners", horses.Filter{FilterOwners: true, OwnerIDs: []int64{3}}, []string{"Luna"}},
		{"empty owner set", horses.Filter{FilterOwners: true}, nil},
		{"intersection", horses.Filter{Name: "lun", Sex: horses.SexMale}, []string{"Lunar"}},
		{"limit", horses.Filter{Limit: 1}, []string{"Luna"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tc.f)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %d results", tc.want, len(got))
			}
			for i, h := range got {
				if h.Name != tc.want[i] {
					t.Fatalf("position %d: expected %s, got %s", i, tc.want[i], h.Name)
				}
			}
		})
	}
}

func TestHorseRepo_DetachParentAndOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewHorseRepo()

	mare, _ := repo.Create(ctx, horses.Horse{Name: "Luna", Sex: horses.SexFemale})
	owner := int64(3)
	foal, _ := repo.Create(ctx, horses.Horse{Name: "Comet", Sex: horses.SexMale, ParentFemaleID: &mare.ID, OwnerID: &owner})

	if err := repo.DetachParent(ctx, mare.ID); err != nil {
		t.Fatalf("detach parent: %v", err)
	}
	if err := repo.DetachOwner(ctx, owner); err != nil {
		t.Fatalf("detach owner: %v", err)
	}
	got, err := repo.GetByID(ctx, foal.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ParentFemaleID != nil || got.OwnerID != nil {
		t.Fatalf("expected references cleared, got %+v", got)
	}
}

func TestHorseRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewHorseRepo()

	if _, err := repo.GetByID(ctx, 1); !errors.Is(err, horses.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, horses.Horse{ID: 1}); !errors.Is(err, horses.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, 1); !errors.Is(err, horses.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Create(ctx, horses.Horse{ID: 5}); err == nil {
		t.Fatalf("create with id must fail")
	}
}
