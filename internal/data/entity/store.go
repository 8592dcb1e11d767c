package entity

import (
	"github.com/google/uuid"
)

type Store struct {
	Base
	Name    string  `db:"name"`
	Email   string  `db:"email"`
	Address *string `db:"address"`
	// OwnerID references the owning user (role OWNER). At most one store
	// per owner, enforced by a unique index.
	OwnerID *uuid.UUID `db:"owner_id"`
}
