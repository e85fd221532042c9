package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upUserDirectory, downUserDirectory)
}

func upUserDirectory(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE user_directory (
		address       VARCHAR(42) PRIMARY KEY,
		username      VARCHAR NOT NULL,
		updated_block BIGINT NOT NULL DEFAULT 0,
		updated_at    TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	CREATE INDEX user_directory_username_idx ON user_directory (lower(username));

	CREATE TABLE indexer_cursors (
		name       VARCHAR PRIMARY KEY,
		block      BIGINT NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downUserDirectory(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE indexer_cursors;
	DROP TABLE user_directory;
	`)
	if err != nil {
		return err
	}
	return nil
}
