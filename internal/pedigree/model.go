package pedigree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Sex define el sexo de un caballo.
// @Enum female, male
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

func ParseSex(s string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexFemale:
		return SexFemale, nil
	case SexMale:
		return SexMale, nil
	default:
		return "", fmt.Errorf("%w: unknown sex %q", ErrValidation, s)
	}
}

const dateLayout = "2006-01-02"

// Date es una fecha de calendario sin hora ni zona.
// Viaja siempre como YYYY-MM-DD.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate acepta YYYY-MM-DD o un timestamp RFC3339 (se conserva solo la parte de fecha).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if len(s) >= len(dateLayout) {
		if _, err := time.Parse(time.RFC3339, s); err == nil {
			// la parte de fecha tal como vino, sin convertir de zona
			t, _ := time.Parse(dateLayout, s[:len(dateLayout)])
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrValidation, s)
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(dateLayout)
}

func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Owner struct {
	ID          *int64 `json:"id,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
}

func (o Owner) FullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// UnmarshalJSON tolera que el owner llegue solo como id numérico.
func (o *Owner) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '{' {
		var id int64
		if err := json.Unmarshal(b, &id); err != nil {
			return fmt.Errorf("owner: expected object or id: %w", err)
		}
		*o = Owner{ID: &id}
		return nil
	}
	type plain Owner
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*o = Owner(p)
	return nil
}

type RefKind int

const (
	RefAbsent RefKind = iota
	RefUnresolved
	RefResolved
)

func (k RefKind) String() string {
	switch k {
	case RefUnresolved:
		return "unresolved"
	case RefResolved:
		return "resolved"
	default:
		return "absent"
	}
}

// ParentRef apunta al padre/madre de un caballo.
// El valor cero es Absent. Unresolved lleva solo el id; Resolved lleva el registro completo.
type ParentRef struct {
	kind  RefKind
	id    int64
	horse *Horse
}

func NoParent() ParentRef { return ParentRef{} }

func ParentID(id int64) ParentRef { return ParentRef{kind: RefUnresolved, id: id} }

func ParentRecord(h *Horse) ParentRef {
	if h == nil {
		return ParentRef{}
	}
	return ParentRef{kind: RefResolved, horse: h}
}

func (r ParentRef) Kind() RefKind { return r.kind }

// ID devuelve el id referenciado. Un registro resuelto sin id devuelve false.
func (r ParentRef) ID() (int64, bool) {
	switch r.kind {
	case RefUnresolved:
		return r.id, true
	case RefResolved:
		if r.horse != nil && r.horse.ID != nil {
			return *r.horse.ID, true
		}
	}
	return 0, false
}

func (r ParentRef) Record() (*Horse, bool) {
	if r.kind != RefResolved {
		return nil, false
	}
	return r.horse, true
}

func (r ParentRef) String() string {
	switch r.kind {
	case RefUnresolved:
		return fmt.Sprintf("#%d", r.id)
	case RefResolved:
		if id, ok := r.ID(); ok {
			return fmt.Sprintf("%s (#%d)", r.horse.Name, id)
		}
		return r.horse.Name
	default:
		return "none"
	}
}

func (r ParentRef) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case RefUnresolved:
		return json.Marshal(r.id)
	case RefResolved:
		return json.Marshal(r.horse)
	default:
		return []byte("null"), nil
	}
}

func (r *ParentRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*r = NoParent()
	case b[0] == '{':
		var h Horse
		if err := json.Unmarshal(b, &h); err != nil {
			return fmt.Errorf("parent: %w", err)
		}
		*r = ParentRecord(&h)
	default:
		var id int64
		if err := json.Unmarshal(b, &id); err != nil {
			return fmt.Errorf("parent: expected object, id or null: %w", err)
		}
		*r = ParentID(id)
	}
	return nil
}

// Horse es la vista de cliente de un caballo del registro.
type Horse struct {
	ID           *int64    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DateOfBirth  Date      `json:"dateOfBirth"`
	Sex          Sex       `json:"sex"`
	Image        string    `json:"image,omitempty"`
	Owner        *Owner    `json:"owner,omitempty"`
	ParentFemale ParentRef `json:"parentFemale,omitzero"`
	ParentMale   ParentRef `json:"parentMale,omitzero"`
}

// HorseCreate es la proyección de alta: owner y padres van por id.
type HorseCreate struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	DateOfBirth    Date   `json:"dateOfBirth"`
	Sex            Sex    `json:"sex"`
	Image          string `json:"image,omitempty"`
	OwnerID        *int64 `json:"ownerId,omitempty"`
	ParentFemaleID *int64 `json:"parentFemaleId,omitempty"`
	ParentMaleID   *int64 `json:"parentMaleId,omitempty"`
}

// HorseUpdate es el registro completo aplanado que se envía al actualizar por id.
type HorseUpdate HorseCreate

// ToCreate convierte un Horse en su proyección de alta. Nunca falla:
// un owner o padre sin id se omite.
func ToCreate(h Horse) HorseCreate {
	return HorseCreate{
		Name:           h.Name,
		Description:    h.Description,
		DateOfBirth:    h.DateOfBirth,
		Sex:            h.Sex,
		Image:          h.Image,
		OwnerID:        ownerID(h.Owner),
		ParentFemaleID: optionalID(h.ParentFemale.ID()),
		ParentMaleID:   optionalID(h.ParentMale.ID()),
	}
}

func ToUpdate(h Horse) (int64, HorseUpdate, error) {
	if h.ID == nil {
		return 0, HorseUpdate{}, fmt.Errorf("%w: horse has no id", ErrValidation)
	}
	return *h.ID, HorseUpdate(ToCreate(h)), nil
}

// CheckParentSexes verifica que los padres resueltos tengan el sexo de su slot.
func CheckParentSexes(h Horse) error {
	if p, ok := h.ParentFemale.Record(); ok && p.Sex != SexFemale {
		return &SlotError{Slot: SlotFemale, ID: refIDOrZero(h.ParentFemale), Err: ErrParentSexMismatch}
	}
	if p, ok := h.ParentMale.Record(); ok && p.Sex != SexMale {
		return &SlotError{Slot: SlotMale, ID: refIDOrZero(h.ParentMale), Err: ErrParentSexMismatch}
	}
	return nil
}

func ownerID(o *Owner) *int64 {
	if o == nil || o.ID == nil {
		return nil
	}
	id := *o.ID
	return &id
}

func optionalID(id int64, ok bool) *int64 {
	if !ok {
		return nil
	}
	return &id
}

func refIDOrZero(r ParentRef) int64 {
	id, _ := r.ID()
	return id
}
