package pedigree

import (
	"context"
	"strings"
)

// Claves de query que entiende GET /horses.
const (
	ParamName        = "name"
	ParamDescription = "description"
	ParamBornBefore  = "bornBefore"
	ParamSex         = "sex"
	ParamOwnerName   = "ownerName"
)

// Criteria es el filtro del listado. Campo vacío = sin restricción.
type Criteria struct {
	Name        string
	Description string
	BornBefore  string
	Sex         string
	OwnerName   string
}

func (c Criteria) IsEmpty() bool {
	return c.Name == "" && c.Description == "" && c.BornBefore == "" && c.Sex == "" && c.OwnerName == ""
}

// Normalize recorta espacios, lleva bornBefore a YYYY-MM-DD y sex a minúsculas.
func (c Criteria) Normalize() (Criteria, error) {
	out := Criteria{
		Name:        strings.TrimSpace(c.Name),
		Description: strings.TrimSpace(c.Description),
		BornBefore:  strings.TrimSpace(c.BornBefore),
		Sex:         strings.TrimSpace(c.Sex),
		OwnerName:   strings.TrimSpace(c.OwnerName),
	}
	if out.BornBefore != "" {
		d, err := ParseDate(out.BornBefore)
		if err != nil {
			return Criteria{}, err
		}
		out.BornBefore = d.String()
	}
	if out.Sex != "" {
		sex, err := ParseSex(out.Sex)
		if err != nil {
			return Criteria{}, err
		}
		out.Sex = string(sex)
	}
	return out, nil
}

// Query es la consulta decidida: filtrada (solo con los criterios presentes) o "traer todo".
type Query struct {
	Filtered bool
	Params   map[string]string
}

func Plan(c Criteria) (Query, error) {
	n, err := c.Normalize()
	if err != nil {
		return Query{}, err
	}
	if n.IsEmpty() {
		return Query{}, nil
	}

	params := map[string]string{}
	set := func(k, v string) {
		if v != "" {
			params[k] = v
		}
	}
	set(ParamName, n.Name)
	set(ParamDescription, n.Description)
	set(ParamBornBefore, n.BornBefore)
	set(ParamSex, n.Sex)
	set(ParamOwnerName, n.OwnerName)

	return Query{Filtered: true, Params: params}, nil
}

type SearchEngine struct {
	store HorseSearcher
}

func NewSearchEngine(store HorseSearcher) *SearchEngine {
	return &SearchEngine{store: store}
}

func (e *SearchEngine) Find(ctx context.Context, c Criteria) ([]Horse, error) {
	q, err := Plan(c)
	if err != nil {
		return nil, err
	}
	if !q.Filtered {
		return e.store.All(ctx)
	}
	return e.store.Search(ctx, q.Params)
}
