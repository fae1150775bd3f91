package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// eventRepo implements EventRepo on top of sqlx.
type eventRepo struct {
	db *sqlx.DB
}

// eventHeader is embedded by every event row. Sequence is shared by all
// event tables so LLM requests and quiz events can be ordered against
// each other.
type eventHeader struct {
	ID          int   `db:"id"`
	Sequence    int64 `db:"sequence"`
	TimestampMs int64 `db:"timestamp_ms"`
}

func (h *eventHeader) header() *eventHeader { return h }

type sequenced interface {
	header() *eventHeader
}

// insertEvent claims the next sequence number and stores row with it in
// one transaction.
func (r *eventRepo) insertEvent(ctx context.Context, insert string, row sequenced) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	h := row.header()
	err = tx.GetContext(ctx, &h.Sequence,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	h.TimestampMs = time.Now().UnixMilli()

	if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
		return err
	}
	return tx.Commit()
}

func (h eventHeader) at() time.Time {
	return time.UnixMilli(h.TimestampMs).UTC()
}
