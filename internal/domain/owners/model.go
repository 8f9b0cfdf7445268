package owners

import "strings"

// Owner es una persona asociada a cero o más caballos.
type Owner struct {
	ID int64

	FirstName string
	LastName  string

	Email       string
	Description string
}

func (o Owner) FullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}
