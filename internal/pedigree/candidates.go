package pedigree

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Candidates son los caballos elegibles como madre/padre en el formulario.
type Candidates struct {
	Female []Horse
	Male   []Horse
}

// CandidateBuilder arma las listas de candidatos filtrando la colección completa
// del lado cliente. Asume que la colección es chica: no hay paginación y cada
// consulta trae todos los caballos. Si el registro crece, esto debe pasar a un
// endpoint filtrado del servidor.
type CandidateBuilder struct {
	store HorseLister
}

func NewCandidateBuilder(store HorseLister) *CandidateBuilder {
	return &CandidateBuilder{store: store}
}

// BySex devuelve los caballos del sexo pedido, en el orden de la fuente,
// sin el caballo con id *exclude (si exclude no es nil).
func (b *CandidateBuilder) BySex(ctx context.Context, sex Sex, exclude *int64) ([]Horse, error) {
	return b.filter(ctx, func(h Horse) bool {
		return h.Sex == sex && !isExcluded(h, exclude)
	})
}

// BySexAndName agrega al filtro por sexo un substring del nombre (sin distinguir mayúsculas).
func (b *CandidateBuilder) BySexAndName(ctx context.Context, sex Sex, name string, exclude *int64) ([]Horse, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	return b.filter(ctx, func(h Horse) bool {
		return h.Sex == sex &&
			strings.Contains(strings.ToLower(h.Name), needle) &&
			!isExcluded(h, exclude)
	})
}

// Build trae ambas listas como operaciones independientes.
func (b *CandidateBuilder) Build(ctx context.Context, exclude *int64) (Candidates, error) {
	var out Candidates

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		females, err := b.BySex(gctx, SexFemale, exclude)
		out.Female = females
		return err
	})
	g.Go(func() error {
		males, err := b.BySex(gctx, SexMale, exclude)
		out.Male = males
		return err
	})
	if err := g.Wait(); err != nil {
		return Candidates{}, err
	}
	return out, nil
}

func (b *CandidateBuilder) filter(ctx context.Context, keep func(Horse) bool) ([]Horse, error) {
	all, err := b.store.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Horse, 0, len(all))
	for _, h := range all {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out, nil
}

func isExcluded(h Horse, exclude *int64) bool {
	return exclude != nil && h.ID != nil && *h.ID == *exclude
}
