package owners

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/owners", func(or chi.Router) {
		or.Get("/", searchOwnersHandler(svc))
		or.Post("/", createOwnerHandler(svc))
		or.Get("/{ownerID}", getOwnerHandler(svc))
		or.Delete("/{ownerID}", deleteOwnerHandler(svc))
	})
}

type createOwnerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// OwnerResponse es el owner tal como lo expone la API (también embebido en caballos).
type OwnerResponse struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
}

func ToResponse(o Owner) OwnerResponse {
	return OwnerResponse{
		ID:          o.ID,
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		Email:       o.Email,
		Description: o.Description,
	}
}

// searchOwnersHandler godoc
// @Summary Buscar owners
// @Description Substring sobre "nombre apellido". Sin `name` devuelve todos.
// @Tags owners
// @Produce json
// @Param name query string false "Substring del nombre completo"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {array} OwnerResponse
// @Failure 400 {string} string "limit inválido"
// @Router /owners [get]
func searchOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		items, err := svc.Search(r.Context(), r.URL.Query().Get("name"), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]OwnerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, ToResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createOwnerHandler godoc
// @Summary Crear owner
// @Tags owners
// @Accept json
// @Produce json
// @Param payload body createOwnerRequest true "Datos del owner"
// @Success 201 {object} OwnerResponse
// @Failure 400 {string} string "invalid json / nombre requerido / email inválido"
// @Router /owners [post]
func createOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Create(r.Context(), CreateInput{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Description: req.Description,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(o))
	}
}

// getOwnerHandler godoc
// @Summary Obtener owner por id
// @Tags owners
// @Produce json
// @Param ownerID path int true "ID del owner"
// @Success 200 {object} OwnerResponse
// @Failure 404 {string} string "owner not found"
// @Router /owners/{ownerID} [get]
func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := ownerIDParam(w, r)
		if !ok {
			return
		}
		o, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(o))
	}
}

// deleteOwnerHandler godoc
// @Summary Borrar owner
// @Description Los caballos del owner quedan sin owner.
// @Tags owners
// @Param ownerID path int true "ID del owner"
// @Success 204
// @Failure 404 {string} string "owner not found"
// @Router /owners/{ownerID} [delete]
func deleteOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := ownerIDParam(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ownerIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
	if err != nil {
		http.Error(w, "owner id must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "owner not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
