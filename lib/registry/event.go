package registry

import (
	"fmt"
	"math"
	"time"
)

// Event is a single proposal and its vote tally. Everything except
// TotalVotes and Votes is fixed at creation.
type Event struct {
	ID              int64     `json:"id"`
	Creator         string    `json:"creator"`
	CreatedAt       time.Time `json:"created_at"`
	Title           string    `json:"title"`
	EstimatedBudget Budget    `json:"estimated_budget"`
	Description     string    `json:"description"`
	TotalVotes      int64     `json:"total_votes"`
	Votes           []string  `json:"votes"`
}

func NewEvent(id int64, title string, budget Budget, description string, creator string, createdAt time.Time) Event {
	return Event{
		ID:              id,
		Creator:         creator,
		CreatedAt:       createdAt,
		Title:           title,
		EstimatedBudget: budget,
		Description:     description,
		TotalVotes:      0,
		Votes:           []string{},
	}
}

// RecordVote counts one vote for voter. The same voter may vote any number
// of times; every call is counted.
func (e *Event) RecordVote(voter string) error {
	if e.TotalVotes == math.MaxInt64 {
		return fmt.Errorf("event %d: %w", e.ID, ErrOverflow)
	}
	e.Votes = append(e.Votes, voter)
	e.TotalVotes++
	return nil
}

// Clone returns a copy that shares no memory with e.
func (e Event) Clone() Event {
	votes := make([]string, len(e.Votes))
	copy(votes, e.Votes)
	e.Votes = votes
	return e
}

func (e Event) consistent() bool {
	return e.TotalVotes == int64(len(e.Votes))
}
