package migrations

import (
	"context"

	"github.com/getAlby/votehub.go/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().Model((*models.Registry)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Event)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Vote)(nil)).
			IfNotExists().
			ForeignKey(`("event_id") REFERENCES "events" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().Model((*models.Vote)(nil)).
			IfNotExists().
			Index("index_votes_on_event_id").
			Column("event_id").
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}, nil)
}
