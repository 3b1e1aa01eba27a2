package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/basurapp/pkg/core/services"
)

// AssignPickupCmd creates the assignPickup command
func AssignPickupCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assignPickup <pickup_id> <collector_username> [collector_name]",
		Short: "Confirm a pickup and assign it to a collector",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			collector := services.Collector{Username: args[1]}
			if len(args) > 2 {
				collector.Name = args[2]
			}

			pickup, err := services.AssignPickup(app.Ctx, app.Database, app.Logger, args[0], collector)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Pickup assigned to %s\n\n", pickup.Staff)
			printPickupDetail(pickup, app)
			return nil
		},
	}
}

// RejectPickupCmd creates the rejectPickup command
func RejectPickupCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rejectPickup <pickup_id>",
		Short: "Reject a pending or confirmed pickup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pickup, err := services.RejectPickup(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Pickup %s rejected\n\n", pickup.ID)
			return nil
		},
	}
}

// CompletePickupCmd creates the completePickup command
func CompletePickupCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completePickup <pickup_id> [weight_kg]",
		Short: "Record a confirmed pickup as collected",
		Long: `Record a confirmed pickup as collected.

Inorganic pickups need the collected weight in kilograms. The completion time
defaults to now and can be set with --at "yyyy-mm-dd hh:mm".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			completion := services.Completion{CompletedAt: time.Now().In(app.Location)}

			if at, _ := cmd.Flags().GetString("at"); strings.TrimSpace(at) != "" {
				completedAt, err := parseMoment(at, app.Location)
				if err != nil {
					return err
				}
				completion.CompletedAt = completedAt
			}

			if len(args) > 1 {
				weight, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
				if err != nil {
					return fmt.Errorf("weight_kg must be a number: %w", err)
				}
				completion.WeightKg = &weight
			}

			pickup, err := services.CompletePickup(app.Ctx, app.Database, app.Logger, args[0], completion)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Pickup completed!\n\n")
			printPickupDetail(pickup, app)
			return nil
		},
	}

	cmd.Flags().String("at", "", "Completion time (default now)")

	return cmd
}

// ArchivePickupCmd creates the archivePickup command
func ArchivePickupCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "archivePickup <pickup_id>",
		Short: "Hide a pickup from listings, limits and points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pickup, err := services.ArchivePickup(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Pickup %s archived\n\n", pickup.ID)
			return nil
		},
	}
}
