package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jakechorley/basurapp/pkg/core/model"
)

const pickupCols = `id, scheduled_at, kind, locality, address, time_slot, requested_by,
	status, staff, staff_username, collected_weight_kg, archived`

func scanPickup(scanner interface{ Scan(...any) error }) (*model.Pickup, error) {
	var p model.Pickup
	var scheduledAt string
	var weight sql.NullFloat64
	var archived int

	err := scanner.Scan(
		&p.ID, &scheduledAt, &p.Kind, &p.Locality, &p.Address, &p.TimeSlot, &p.RequestedBy,
		&p.Status, &p.Staff, &p.StaffUsername, &weight, &archived,
	)
	if err != nil {
		return nil, err
	}

	p.ScheduledAt, err = time.Parse(time.RFC3339Nano, scheduledAt)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled_at %q for pickup %s: %w", scheduledAt, p.ID, err)
	}
	if weight.Valid {
		p.CollectedWeightKg = &weight.Float64
	}
	p.Archived = archived != 0

	return &p, nil
}

// GetPickups retrieves all pickup records ordered by scheduled time
func (db *DB) GetPickups(ctx context.Context) ([]model.Pickup, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT `+pickupCols+` FROM pickups ORDER BY scheduled_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pickups: %w", err)
	}
	defer rows.Close()

	var pickups []model.Pickup
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pickup: %w", err)
		}
		pickups = append(pickups, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pickups: %w", err)
	}

	return pickups, nil
}

// GetPickup retrieves a single pickup by id
func (db *DB) GetPickup(ctx context.Context, id string) (*model.Pickup, error) {
	row := db.sql.QueryRowContext(ctx, `SELECT `+pickupCols+` FROM pickups WHERE id = ?`, id)
	p, err := scanPickup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pickup: %w", err)
	}
	return p, nil
}

// InsertPickup inserts a new pickup record
func (db *DB) InsertPickup(ctx context.Context, pickup *model.Pickup) error {
	_, err := db.sql.ExecContext(ctx, `
		INSERT INTO pickups (`+pickupCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, pickupArgs(pickup)...)
	if err != nil {
		return fmt.Errorf("failed to insert pickup: %w", err)
	}
	return nil
}

// UpdatePickup overwrites every mutable field of an existing pickup
func (db *DB) UpdatePickup(ctx context.Context, pickup *model.Pickup) error {
	args := pickupArgs(pickup)
	result, err := db.sql.ExecContext(ctx, `
		UPDATE pickups SET
			scheduled_at = ?, kind = ?, locality = ?, address = ?, time_slot = ?,
			requested_by = ?, status = ?, staff = ?, staff_username = ?,
			collected_weight_kg = ?, archived = ?,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?
	`, append(args[1:], args[0])...)
	if err != nil {
		return fmt.Errorf("failed to update pickup: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("failed to update pickup: no pickup with id %s", pickup.ID)
	}
	return nil
}

// pickupArgs returns the column values in pickupCols order
func pickupArgs(p *model.Pickup) []any {
	var weight sql.NullFloat64
	if p.CollectedWeightKg != nil {
		weight = sql.NullFloat64{Float64: *p.CollectedWeightKg, Valid: true}
	}
	var archived int
	if p.Archived {
		archived = 1
	}

	return []any{
		p.ID,
		p.ScheduledAt.UTC().Format(time.RFC3339Nano),
		string(p.Kind),
		p.Locality,
		p.Address,
		string(p.TimeSlot),
		p.RequestedBy,
		string(p.Status),
		p.Staff,
		p.StaffUsername,
		weight,
		archived,
	}
}
