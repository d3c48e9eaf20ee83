package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Vote : one row per successful vote, ordered by id
type Vote struct {
	bun.BaseModel `bun:"table:votes"`

	ID        int64     `bun:",pk,autoincrement"`
	EventID   int64     `bun:",notnull"`
	Event     *Event    `bun:"rel:belongs-to,join:event_id=id"`
	Voter     string    `bun:",notnull"`
	CreatedAt time.Time `bun:",notnull"`
}
