package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Registry : single row holding the registry owner
type Registry struct {
	bun.BaseModel `bun:"table:registries"`

	ID        int64     `bun:",pk"`
	Owner     string    `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
