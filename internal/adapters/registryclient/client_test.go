package registryclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"horse-registry/internal/pedigree"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HorseClient {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := New(ts.URL, 0)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestGet_DecodesParentsAsUnresolved(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/horses/5" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{
			"id": 5, "name": "Comet", "dateOfBirth": "2019-04-02", "sex": "male",
			"owner": {"id": 3, "firstName": "Ann", "lastName": "Smith"},
			"parentMale": 9
		}`))
	})

	h, err := c.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if h.ID == nil || *h.ID != 5 || h.Name != "Comet" {
		t.Fatalf("unexpected horse: %+v", h)
	}
	if h.DateOfBirth.String() != "2019-04-02" {
		t.Fatalf("unexpected date: %s", h.DateOfBirth)
	}
	if h.Owner == nil || h.Owner.FullName() != "Ann Smith" {
		t.Fatalf("unexpected owner: %+v", h.Owner)
	}
	if id, ok := h.ParentMale.ID(); !ok || id != 9 || h.ParentMale.Kind() != pedigree.RefUnresolved {
		t.Fatalf("expected unresolved male parent 9, got %v", h.ParentMale)
	}
	if h.ParentFemale.Kind() != pedigree.RefAbsent {
		t.Fatalf("expected absent female parent, got %v", h.ParentFemale)
	}
}

func TestSearch_SendsOnlyPresentParams(t *testing.T) {
	var got map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	})

	out, err := c.Search(context.Background(), map[string]string{
		pedigree.ParamOwnerName: "Smith",
		pedigree.ParamName:      "",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}
	if len(got) != 1 || got["ownerName"][0] != "Smith" {
		t.Fatalf("expected only ownerName=Smith, got %v", got)
	}
}

func TestCreate_PostsFlattenedIDs(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 11, "name": "Star", "dateOfBirth": "2020-01-01", "sex": "female", "parentFemale": 42}`))
	})

	femaleID := int64(42)
	h, err := c.Create(context.Background(), pedigree.HorseCreate{
		Name:           "Star",
		DateOfBirth:    pedigree.Date{Year: 2020, Month: 1, Day: 1},
		Sex:            pedigree.SexFemale,
		ParentFemaleID: &femaleID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.ID == nil || *h.ID != 11 {
		t.Fatalf("expected id 11, got %+v", h.ID)
	}
	if body["parentFemaleId"] != float64(42) || body["dateOfBirth"] != "2020-01-01" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body["parentMaleId"]; ok {
		t.Fatalf("absent male parent must be omitted: %v", body)
	}
}

func TestErrors_AreClassified(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, pedigree.ErrNotFound},
		{http.StatusBadRequest, pedigree.ErrValidation},
		{http.StatusUnprocessableEntity, pedigree.ErrValidation},
		{http.StatusInternalServerError, pedigree.ErrTransport},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", tc.status)
		})
		_, err := c.Get(context.Background(), 1)
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestErrors_UnreachableIsTransport(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	c, err := New(base, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := c.All(context.Background()); !errors.Is(err, pedigree.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestOwners_Search(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/owners" || r.URL.Query().Get("name") != "smi" || r.URL.Query().Get("limit") != "5" {
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`[{"id": 3, "firstName": "Ann", "lastName": "Smith"}]`))
	})

	out, err := c.Owners().Search(context.Background(), "smi", 5)
	if err != nil {
		t.Fatalf("search owners: %v", err)
	}
	if len(out) != 1 || out[0].ID == nil || *out[0].ID != 3 {
		t.Fatalf("unexpected owners: %+v", out)
	}
}
