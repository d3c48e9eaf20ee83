package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/getAlby/votehub.go/common"
	"github.com/getAlby/votehub.go/db/models"
	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/uptrace/bun"
)

// BunStore persists the registry in the events and votes tables.
type BunStore struct {
	DB *bun.DB
}

var _ registry.Store = (*BunStore)(nil)

func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{DB: db}
}

func (s *BunStore) LoadRegistry(ctx context.Context) (string, []registry.Event, error) {
	row := models.Registry{}
	err := s.DB.NewSelect().Model(&row).Where("id = ?", common.RegistryRowID).Limit(1).Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", nil, err
	}

	rows := []*models.Event{}
	err = s.DB.NewSelect().
		Model(&rows).
		Relation("Votes", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("vote.id ASC")
		}).
		OrderExpr("event.id ASC").
		Scan(ctx)
	if err != nil {
		return "", nil, err
	}
	events := make([]registry.Event, 0, len(rows))
	for _, e := range rows {
		events = append(events, e.Record())
	}
	return row.Owner, events, nil
}

// LoadReadOnly restores the persisted registry without attaching the store,
// so nothing is ever written back. An empty database yields an empty
// registry with no owner.
func (s *BunStore) LoadReadOnly(ctx context.Context) (*registry.Registry, error) {
	owner, events, err := s.LoadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	return registry.FromSnapshot(registry.Snapshot{
		Version: registry.SnapshotVersion,
		Owner:   owner,
		Events:  events,
	})
}

func (s *BunStore) SaveOwner(ctx context.Context, owner string) error {
	row := models.Registry{ID: common.RegistryRowID, Owner: owner}
	_, err := s.DB.NewInsert().Model(&row).Exec(ctx)
	return err
}

func (s *BunStore) InsertEvent(ctx context.Context, event registry.Event) error {
	_, err := s.DB.NewInsert().Model(models.EventFromRecord(event)).Exec(ctx)
	return err
}

// InsertVote stores the vote row and bumps the counter in one transaction
// so total_votes always matches the number of vote rows.
func (s *BunStore) InsertVote(ctx context.Context, eventID int64, voter string, at time.Time) error {
	return s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		vote := models.Vote{EventID: eventID, Voter: voter, CreatedAt: at}
		if _, err := tx.NewInsert().Model(&vote).Exec(ctx); err != nil {
			return err
		}
		res, err := tx.NewUpdate().
			Model((*models.Event)(nil)).
			Set("total_votes = total_votes + 1").
			Where("id = ?", eventID).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected != 1 {
			return fmt.Errorf("event %d: %w", eventID, registry.ErrEventNotFound)
		}
		return nil
	})
}
