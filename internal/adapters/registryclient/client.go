package registryclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"horse-registry/internal/pedigree"
	"horse-registry/internal/platform/httpclient"
)

// HorseClient es el pedigree.Store que habla con la API del registro.
type HorseClient struct {
	http *httpclient.Client
}

var _ pedigree.Store = (*HorseClient)(nil)

func New(baseURL string, timeout time.Duration) (*HorseClient, error) {
	c, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &HorseClient{http: c}, nil
}

// NewFromClient reutiliza un httpclient ya armado (tests, transport propio).
func NewFromClient(c *httpclient.Client) *HorseClient {
	return &HorseClient{http: c}
}

func (c *HorseClient) Get(ctx context.Context, id int64) (pedigree.Horse, error) {
	var h pedigree.Horse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   horsePath(id),
		Out:    &h,
	})
	if err != nil {
		return pedigree.Horse{}, classify(fmt.Sprintf("get horse %d", id), err)
	}
	return h, nil
}

func (c *HorseClient) All(ctx context.Context) ([]pedigree.Horse, error) {
	return c.list(ctx, nil)
}

// Search manda solo los parámetros presentes.
func (c *HorseClient) Search(ctx context.Context, params map[string]string) ([]pedigree.Horse, error) {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	return c.list(ctx, q)
}

func (c *HorseClient) list(ctx context.Context, q url.Values) ([]pedigree.Horse, error) {
	out := []pedigree.Horse{}
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/horses",
		Query:  q,
		Out:    &out,
	})
	if err != nil {
		return nil, classify("list horses", err)
	}
	return out, nil
}

func (c *HorseClient) Create(ctx context.Context, in pedigree.HorseCreate) (pedigree.Horse, error) {
	var h pedigree.Horse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/horses",
		In:     in,
		Out:    &h,
	})
	if err != nil {
		return pedigree.Horse{}, classify("create horse", err)
	}
	return h, nil
}

func (c *HorseClient) Update(ctx context.Context, id int64, in pedigree.HorseUpdate) (pedigree.Horse, error) {
	var h pedigree.Horse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPut,
		Path:   horsePath(id),
		In:     in,
		Out:    &h,
	})
	if err != nil {
		return pedigree.Horse{}, classify(fmt.Sprintf("update horse %d", id), err)
	}
	return h, nil
}

func (c *HorseClient) Delete(ctx context.Context, id int64) error {
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   horsePath(id),
	})
	if err != nil {
		return classify(fmt.Sprintf("delete horse %d", id), err)
	}
	return nil
}

// FamilyTree trae el árbol de ancestros con los padres ya embebidos (Resolved).
func (c *HorseClient) FamilyTree(ctx context.Context, id int64, generations int) (pedigree.Horse, error) {
	q := url.Values{}
	if generations > 0 {
		q.Set("generations", strconv.Itoa(generations))
	}
	var h pedigree.Horse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   horsePath(id) + "/familytree",
		Query:  q,
		Out:    &h,
	})
	if err != nil {
		return pedigree.Horse{}, classify(fmt.Sprintf("family tree of %d", id), err)
	}
	return h, nil
}

func horsePath(id int64) string {
	return "/horses/" + strconv.FormatInt(id, 10)
}

// classify traduce errores HTTP a los sentinels de pedigree, conservando el original.
func classify(op string, err error) error {
	var herr *httpclient.HTTPError
	if errors.As(err, &herr) {
		switch {
		case herr.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%s: %w: %w", op, pedigree.ErrNotFound, err)
		case herr.StatusCode == http.StatusBadRequest,
			herr.StatusCode == http.StatusUnprocessableEntity,
			herr.StatusCode == http.StatusConflict:
			return fmt.Errorf("%s: %w: %w", op, pedigree.ErrValidation, err)
		default:
			return fmt.Errorf("%s: %w: %w", op, pedigree.ErrTransport, err)
		}
	}
	// *httpclient.TransportError y errores de decode
	return fmt.Errorf("%s: %w: %w", op, pedigree.ErrTransport, err)
}
