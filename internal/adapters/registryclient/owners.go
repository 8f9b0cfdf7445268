package registryclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"horse-registry/internal/pedigree"
	"horse-registry/internal/platform/httpclient"
)

// OwnerClient cubre lo que el editor necesita de /owners.
type OwnerClient struct {
	http *httpclient.Client
}

func NewOwnerClient(c *httpclient.Client) *OwnerClient {
	return &OwnerClient{http: c}
}

// Owners comparte la conexión del cliente de caballos.
func (c *HorseClient) Owners() *OwnerClient {
	return NewOwnerClient(c.http)
}

// OwnerCreate es el cuerpo de alta de un owner.
type OwnerCreate struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
}

// Search busca por substring de "nombre apellido". limit 0 = sin límite.
func (c *OwnerClient) Search(ctx context.Context, name string, limit int) ([]pedigree.Owner, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	out := []pedigree.Owner{}
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/owners",
		Query:  q,
		Out:    &out,
	})
	if err != nil {
		return nil, classify("search owners", err)
	}
	return out, nil
}

func (c *OwnerClient) Create(ctx context.Context, in OwnerCreate) (pedigree.Owner, error) {
	var o pedigree.Owner
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/owners",
		In:     in,
		Out:    &o,
	})
	if err != nil {
		return pedigree.Owner{}, classify("create owner", err)
	}
	return o, nil
}

func (c *OwnerClient) Delete(ctx context.Context, id int64) error {
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   "/owners/" + strconv.FormatInt(id, 10),
	})
	if err != nil {
		return classify(fmt.Sprintf("delete owner %d", id), err)
	}
	return nil
}
