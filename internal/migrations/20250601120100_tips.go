package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upTips, downTips)
}

func upTips(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE tips (
		tx_hash      VARCHAR(66) NOT NULL,
		log_index    INTEGER NOT NULL,
		from_address VARCHAR(42) NOT NULL,
		to_address   VARCHAR(42) NOT NULL,
		amount       NUMERIC(78, 0) NOT NULL,
		block_number BIGINT NOT NULL,
		created_at   TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
		PRIMARY KEY (tx_hash, log_index)
	);
	CREATE INDEX tips_to_address_idx ON tips (to_address, block_number DESC);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downTips(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE tips;
	`)
	if err != nil {
		return err
	}
	return nil
}
