package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/basurapp/pkg/core/policy"
)

// GetPolicy retrieves the latest saved policy snapshot
func (d *DB) GetPolicy(ctx context.Context) (*policy.Snapshot, error) {
	var raw []byte
	err := d.pool.QueryRow(ctx, `
		SELECT snapshot::text FROM policy_snapshot ORDER BY id DESC LIMIT 1
	`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}

	var snapshot policy.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode policy: %w", err)
	}
	return &snapshot, nil
}

// SavePolicy appends a policy snapshot. Earlier snapshots are kept as history.
func (d *DB) SavePolicy(ctx context.Context, snapshot policy.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode policy: %w", err)
	}

	if _, err := d.pool.Exec(ctx, `INSERT INTO policy_snapshot (snapshot) VALUES ($1::jsonb)`, string(raw)); err != nil {
		return fmt.Errorf("failed to save policy: %w", err)
	}
	return nil
}
