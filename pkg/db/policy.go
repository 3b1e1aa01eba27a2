package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jakechorley/basurapp/pkg/core/policy"
)

// GetPolicy retrieves the latest saved policy snapshot
func (db *DB) GetPolicy(ctx context.Context) (*policy.Snapshot, error) {
	var raw string
	err := db.sql.QueryRowContext(ctx, `
		SELECT snapshot FROM policy_snapshots ORDER BY id DESC LIMIT 1
	`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}

	var snapshot policy.Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode policy: %w", err)
	}
	return &snapshot, nil
}

// SavePolicy appends a policy snapshot. Earlier snapshots are kept as history.
func (db *DB) SavePolicy(ctx context.Context, snapshot policy.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode policy: %w", err)
	}

	if _, err := db.sql.ExecContext(ctx, `INSERT INTO policy_snapshots (snapshot) VALUES (?)`, string(raw)); err != nil {
		return fmt.Errorf("failed to save policy: %w", err)
	}
	return nil
}
