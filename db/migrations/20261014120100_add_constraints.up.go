package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- ids are positions in the registry, they start at zero
				alter table events
				ADD CONSTRAINT check_event_id_not_negative
				CHECK (id >= 0);

			-- vote counters only ever grow from zero
				alter table events
				ADD CONSTRAINT check_total_votes_not_negative
				CHECK (total_votes >= 0);

			-- only one registry row exists
				alter table registries
				ADD CONSTRAINT check_single_registry
				CHECK (id = 1);
		`
		if _, err := db.ExecContext(ctx, sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
