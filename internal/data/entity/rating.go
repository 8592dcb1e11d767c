package entity

import (
	"github.com/google/uuid"
)

type Rating struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	StoreID uuid.UUID `db:"store_id"`
	Rating  int       `db:"rating"` // 1-5
}
