package horses

import (
	"strings"
	"time"
)

// Sex define el sexo del caballo.
// @Enum female, male
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

func ParseSex(s string) (Sex, bool) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexFemale:
		return SexFemale, true
	case SexMale:
		return SexMale, true
	default:
		return "", false
	}
}

// Horse es el registro persistido. Owner y padres se guardan solo como id.
// No se valida aciclicidad: un caballo podría figurar como su propio ancestro lejano.
type Horse struct {
	ID int64

	Name        string
	Description string
	DateOfBirth time.Time // solo fecha (UTC 00:00)
	Sex         Sex
	Image       string // URI opaca

	OwnerID        *int64
	ParentFemaleID *int64
	ParentMaleID   *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TreeNode es un caballo con sus ancestros ya embebidos (hasta la profundidad pedida).
type TreeNode struct {
	Horse  Horse
	Mother *TreeNode
	Father *TreeNode
}
