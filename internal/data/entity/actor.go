package entity

import "github.com/google/uuid"

type Actor struct {
	ID        uuid.UUID `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
}

func (a *Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}
