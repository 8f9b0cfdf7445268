package horses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"horse-registry/internal/domain/owners"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/horses", func(hr chi.Router) {
		hr.Get("/", searchHorsesHandler(svc))
		hr.Post("/", createHorseHandler(svc))

		hr.Get("/{horseID}", getHorseHandler(svc))
		hr.Put("/{horseID}", updateHorseHandler(svc))
		hr.Delete("/{horseID}", deleteHorseHandler(svc))

		// Árbol de ancestros con padres embebidos
		hr.Get("/{horseID}/familytree", familyTreeHandler(svc))
	})
}

// horseRequest es el cuerpo para alta (POST) y update completo (PUT).
type horseRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	DateOfBirth    string `json:"dateOfBirth"` // YYYY-MM-DD
	Sex            string `json:"sex" enums:"female,male"`
	Image          string `json:"image"`
	OwnerID        *int64 `json:"ownerId"`
	ParentFemaleID *int64 `json:"parentFemaleId"`
	ParentMaleID   *int64 `json:"parentMaleId"`
}

// horseResponse: owner embebido, padres como id.
type horseResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	DateOfBirth  string                `json:"dateOfBirth"`
	Sex          Sex                   `json:"sex"`
	Image        string                `json:"image,omitempty"`
	Owner        *owners.OwnerResponse `json:"owner,omitempty"`
	ParentFemale *int64                `json:"parentFemale,omitempty"`
	ParentMale   *int64                `json:"parentMale,omitempty"`
}

// treeResponse: igual que horseResponse pero con los padres embebidos.
type treeResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	DateOfBirth  string                `json:"dateOfBirth"`
	Sex          Sex                   `json:"sex"`
	Image        string                `json:"image,omitempty"`
	Owner        *owners.OwnerResponse `json:"owner,omitempty"`
	ParentFemale *treeResponse         `json:"parentFemale,omitempty"`
	ParentMale   *treeResponse         `json:"parentMale,omitempty"`
}

type validationErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// searchHorsesHandler godoc
// @Summary Listar / buscar caballos
// @Description Sin parámetros devuelve todos. Con parámetros aplica todos como intersección: name y description por substring, bornBefore estricto (YYYY-MM-DD), sex exacto, ownerName por substring de "nombre apellido".
// @Tags horses
// @Produce json
// @Param name query string false "Substring del nombre"
// @Param description query string false "Substring de la descripción"
// @Param bornBefore query string false "Nacidos antes de (YYYY-MM-DD)"
// @Param sex query string false "female | male"
// @Param ownerName query string false "Substring del nombre del owner"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {array} horseResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 500 {string} string "internal error"
// @Router /horses [get]
func searchHorsesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := parseCriteria(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var items []Horse
		if c.IsEmpty() {
			items, err = svc.List(r.Context())
		} else {
			items, err = svc.Search(r.Context(), c)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		ownerMap, err := svc.OwnersOf(r.Context(), items...)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]horseResponse, 0, len(items))
		for _, h := range items {
			out = append(out, toHorseResponse(h, ownerMap))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createHorseHandler godoc
// @Summary Crear caballo
// @Description Owner y padres se referencian por id. La madre debe ser female y el padre male, ambos nacidos antes que el caballo.
// @Tags horses
// @Accept json
// @Produce json
// @Param payload body horseRequest true "Datos del caballo; dateOfBirth en YYYY-MM-DD"
// @Success 201 {object} horseResponse
// @Failure 400 {object} validationErrorResponse
// @Router /horses [post]
func createHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		h, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeHorse(w, r, svc, http.StatusCreated, h)
	}
}

// getHorseHandler godoc
// @Summary Obtener caballo por id
// @Description Los padres vienen como id; el cliente los resuelve aparte.
// @Tags horses
// @Produce json
// @Param horseID path int true "ID del caballo"
// @Success 200 {object} horseResponse
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID} [get]
func getHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := horseIDParam(w, r)
		if !ok {
			return
		}
		h, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeHorse(w, r, svc, http.StatusOK, h)
	}
}

// updateHorseHandler godoc
// @Summary Actualizar caballo (registro completo)
// @Tags horses
// @Accept json
// @Produce json
// @Param horseID path int true "ID del caballo"
// @Param payload body horseRequest true "Registro completo; campos ausentes quedan vacíos"
// @Success 200 {object} horseResponse
// @Failure 400 {object} validationErrorResponse
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID} [put]
func updateHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := horseIDParam(w, r)
		if !ok {
			return
		}
		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		h, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeHorse(w, r, svc, http.StatusOK, h)
	}
}

// deleteHorseHandler godoc
// @Summary Borrar caballo
// @Description Los hijos que lo referencian como madre/padre quedan con ese slot vacío.
// @Tags horses
// @Param horseID path int true "ID del caballo"
// @Success 204
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID} [delete]
func deleteHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := horseIDParam(w, r)
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

// familyTreeHandler godoc
// @Summary Árbol de ancestros
// @Tags horses
// @Produce json
// @Param horseID path int true "ID del caballo"
// @Param generations query int false "Generaciones a incluir (1-10). Por defecto 3"
// @Success 200 {object} treeResponse
// @Failure 400 {object} validationErrorResponse
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID}/familytree [get]
func familyTreeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := horseIDParam(w, r)
		if !ok {
			return
		}

		depth := 0
		if v := strings.TrimSpace(r.URL.Query().Get("generations")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, "generations must be a positive integer", http.StatusBadRequest)
				return
			}
			depth = n
		}

		tree, err := svc.FamilyTree(r.Context(), id, depth)
		if err != nil {
			writeError(w, err)
			return
		}

		ownerMap, err := svc.OwnersOf(r.Context(), flattenTree(tree)...)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toTreeResponse(tree, ownerMap))
	}
}

func parseCriteria(r *http.Request) (Criteria, error) {
	q := r.URL.Query()
	c := Criteria{
		Name:        q.Get("name"),
		Description: q.Get("description"),
		OwnerName:   q.Get("ownerName"),
	}

	if v := strings.TrimSpace(q.Get("bornBefore")); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return Criteria{}, errors.New("bornBefore must be YYYY-MM-DD")
		}
		c.BornBefore = &t
	}
	if v := strings.TrimSpace(q.Get("sex")); v != "" {
		sex, ok := ParseSex(v)
		if !ok {
			return Criteria{}, errors.New("sex must be female or male")
		}
		c.Sex = sex
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Criteria{}, errors.New("limit must be a non-negative integer")
		}
		c.Limit = n
	}
	return c, nil
}

func decodeInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var req horseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return Input{}, false
	}

	in := Input{
		Name:           req.Name,
		Description:    req.Description,
		Sex:            req.Sex,
		Image:          req.Image,
		OwnerID:        req.OwnerID,
		ParentFemaleID: req.ParentFemaleID,
		ParentMaleID:   req.ParentMaleID,
	}
	if v := strings.TrimSpace(req.DateOfBirth); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, validationErrorResponse{
				Message: "invalid input",
				Errors:  []FieldError{{Field: "dateOfBirth", Message: "must be YYYY-MM-DD"}},
			})
			return Input{}, false
		}
		in.DateOfBirth = &t
	}
	return in, true
}

func horseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "horseID"), 10, 64)
	if err != nil {
		http.Error(w, "horse id must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeHorse(w http.ResponseWriter, r *http.Request, svc *Service, status int, h Horse) {
	ownerMap, err := svc.OwnersOf(r.Context(), h)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, toHorseResponse(h, ownerMap))
}

func writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			Message: "invalid input",
			Errors:  verr.Fields,
		})
	case errors.Is(err, ErrNotFound):
		http.Error(w, "horse not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toHorseResponse(h Horse, ownerMap map[int64]owners.Owner) horseResponse {
	return horseResponse{
		ID:           h.ID,
		Name:         h.Name,
		Description:  h.Description,
		DateOfBirth:  h.DateOfBirth.Format(dateLayout),
		Sex:          h.Sex,
		Image:        h.Image,
		Owner:        embedOwner(h.OwnerID, ownerMap),
		ParentFemale: h.ParentFemaleID,
		ParentMale:   h.ParentMaleID,
	}
}

func toTreeResponse(n *TreeNode, ownerMap map[int64]owners.Owner) *treeResponse {
	if n == nil {
		return nil
	}
	h := n.Horse
	return &treeResponse{
		ID:           h.ID,
		Name:         h.Name,
		Description:  h.Description,
		DateOfBirth:  h.DateOfBirth.Format(dateLayout),
		Sex:          h.Sex,
		Image:        h.Image,
		Owner:        embedOwner(h.OwnerID, ownerMap),
		ParentFemale: toTreeResponse(n.Mother, ownerMap),
		ParentMale:   toTreeResponse(n.Father, ownerMap),
	}
}

func embedOwner(id *int64, ownerMap map[int64]owners.Owner) *owners.OwnerResponse {
	if id == nil {
		return nil
	}
	o, ok := ownerMap[*id]
	if !ok {
		return nil
	}
	resp := owners.ToResponse(o)
	return &resp
}

func flattenTree(n *TreeNode) []Horse {
	if n == nil {
		return nil
	}
	out := []Horse{n.Horse}
	out = append(out, flattenTree(n.Mother)...)
	return append(out, flattenTree(n.Father)...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
