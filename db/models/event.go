package models

import (
	"time"

	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/uptrace/bun"
)

// Event : Event Model, the id is the position in the registry
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID              int64           `bun:",pk"`
	Creator         string          `bun:",notnull"`
	CreatedAt       time.Time       `bun:",notnull"`
	Title           string          `bun:",notnull"`
	Description     string          `bun:",notnull"`
	EstimatedBudget registry.Budget `bun:"type:varchar(39),notnull"`
	TotalVotes      int64           `bun:",notnull,default:0"`
	Votes           []*Vote         `bun:"rel:has-many,join:id=event_id"`
}

func EventFromRecord(e registry.Event) *Event {
	return &Event{
		ID:              e.ID,
		Creator:         e.Creator,
		CreatedAt:       e.CreatedAt,
		Title:           e.Title,
		Description:     e.Description,
		EstimatedBudget: e.EstimatedBudget,
		TotalVotes:      e.TotalVotes,
	}
}

// Record converts the row into a registry event. Votes must be loaded
// ordered by id.
func (e *Event) Record() registry.Event {
	votes := make([]string, 0, len(e.Votes))
	for _, v := range e.Votes {
		votes = append(votes, v.Voter)
	}
	return registry.Event{
		ID:              e.ID,
		Creator:         e.Creator,
		CreatedAt:       e.CreatedAt.UTC(),
		Title:           e.Title,
		EstimatedBudget: e.EstimatedBudget,
		Description:     e.Description,
		TotalVotes:      e.TotalVotes,
		Votes:           votes,
	}
}
