package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/basurapp/pkg/core/model"
)

const pickupCols = `id::text, scheduled_at, kind, locality, address, time_slot, requested_by,
	status, staff, staff_username, collected_weight_kg, archived`

func scanPickup(row pgx.Row) (model.Pickup, error) {
	var p model.Pickup
	var kind, timeSlot, status string
	var scheduledAt time.Time
	var weight *float64

	err := row.Scan(
		&p.ID, &scheduledAt, &kind, &p.Locality, &p.Address, &timeSlot, &p.RequestedBy,
		&status, &p.Staff, &p.StaffUsername, &weight, &p.Archived,
	)
	if err != nil {
		return p, err
	}

	p.ScheduledAt = scheduledAt
	p.Kind = model.Kind(kind)
	p.TimeSlot = model.TimeSlot(timeSlot)
	p.Status = model.Status(status)
	p.CollectedWeightKg = weight
	return p, nil
}

// GetPickups retrieves all pickup records ordered by scheduled time
func (d *DB) GetPickups(ctx context.Context) ([]model.Pickup, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+pickupCols+`
		FROM pickup
		ORDER BY scheduled_at, id
	`)
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
		pickups = append(pickups, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pickups: %w", err)
	}

	return pickups, nil
}

// GetPickup retrieves a single pickup by id
func (d *DB) GetPickup(ctx context.Context, id string) (*model.Pickup, error) {
	p, err := scanPickup(d.pool.QueryRow(ctx, `
		SELECT `+pickupCols+`
		FROM pickup
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pickup: %w", err)
	}
	return &p, nil
}

// InsertPickup inserts a new pickup record
func (d *DB) InsertPickup(ctx context.Context, pickup *model.Pickup) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO pickup (id, scheduled_at, kind, locality, address, time_slot, requested_by,
			status, staff, staff_username, collected_weight_kg, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, pickup.ID, pickup.ScheduledAt.UTC(), string(pickup.Kind), pickup.Locality, pickup.Address,
		string(pickup.TimeSlot), pickup.RequestedBy, string(pickup.Status), pickup.Staff,
		pickup.StaffUsername, pickup.CollectedWeightKg, pickup.Archived)
	if err != nil {
		return fmt.Errorf("failed to insert pickup: %w", err)
	}
	return nil
}

// UpdatePickup overwrites every mutable field of an existing pickup
func (d *DB) UpdatePickup(ctx context.Context, pickup *model.Pickup) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE pickup SET
			scheduled_at = $2, kind = $3, locality = $4, address = $5, time_slot = $6,
			requested_by = $7, status = $8, staff = $9, staff_username = $10,
			collected_weight_kg = $11, archived = $12, updated_at = NOW()
		WHERE id = $1
	`, pickup.ID, pickup.ScheduledAt.UTC(), string(pickup.Kind), pickup.Locality, pickup.Address,
		string(pickup.TimeSlot), pickup.RequestedBy, string(pickup.Status), pickup.Staff,
		pickup.StaffUsername, pickup.CollectedWeightKg, pickup.Archived)
	if err != nil {
		return fmt.Errorf("failed to update pickup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update pickup: no pickup with id %s", pickup.ID)
	}
	return nil
}
