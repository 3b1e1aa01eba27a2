package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/services"
)

const pickupArgsUsage = "<kind> <locality> <date> <slot> <address>"

// pickupRequestFromArgs reads kind, locality, date, slot and address in that order
func pickupRequestFromArgs(app *AppContext, args []string) (services.PickupRequest, error) {
	kind, err := parseKind(args[0])
	if err != nil {
		return services.PickupRequest{}, err
	}
	locality, err := parseLocality(args[1])
	if err != nil {
		return services.PickupRequest{}, err
	}
	date, err := parseDate(args[2], app.Location)
	if err != nil {
		return services.PickupRequest{}, err
	}
	slot, err := model.ParseTimeSlot(args[3])
	if err != nil {
		return services.PickupRequest{}, err
	}

	return services.PickupRequest{
		Kind:     kind,
		Locality: locality,
		Address:  strings.TrimSpace(args[4]),
		Date:     date,
		TimeSlot: slot,
	}, nil
}

func requesterFlag(cmd *cobra.Command) (string, error) {
	requester, _ := cmd.Flags().GetString("as")
	requester = strings.TrimSpace(requester)
	if requester == "" {
		return "", fmt.Errorf("--as <requester> is required")
	}
	return requester, nil
}

// explainDenial prints a friendly message for pickups refused by the scheduling rules
func explainDenial(err error) error {
	if eligibilityErr, ok := services.AsEligibilityError(err); ok {
		fmt.Printf("\n❌ Pickup not allowed: %s\n\n", eligibilityErr.Result.Reason)
		return nil
	}
	if errors.Is(err, services.ErrDateNotInFuture) {
		fmt.Printf("\n❌ %v\n\n", err)
		return nil
	}
	return err
}

// SchedulePickupCmd creates the schedulePickup command
func SchedulePickupCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedulePickup " + pickupArgsUsage + " --as <requester>",
		Short: "Book a waste pickup for a citizen",
		Long: `Book a waste pickup for a citizen.

Kinds are organic, inorganic and hazardous. The slot is 08:00, 12:00 or 16:00 and
the date must be after today. The pickup is created pending.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			requester, err := requesterFlag(cmd)
			if err != nil {
				return err
			}
			req, err := pickupRequestFromArgs(app, args)
			if err != nil {
				return err
			}

			app.Logger.Debug("schedulePickup command", zap.String("requester", requester))

			pickup, err := services.SchedulePickup(
				app.Ctx,
				app.Database,
				app.Logger,
				app.Policy.Current().FrequencyRules,
				app.Location,
				requester,
				req,
			)
			if err != nil {
				return explainDenial(err)
			}

			fmt.Printf("\n✓ Pickup scheduled!\n\n")
			printPickupDetail(pickup, app)
			return nil
		},
	}

	cmd.Flags().String("as", "", "Requester the pickup is booked for")

	return cmd
}

// CheckPickupCmd creates the checkPickup command
func CheckPickupCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkPickup " + pickupArgsUsage + " --as <requester>",
		Short: "Check whether a pickup could be booked, without booking it",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			requester, err := requesterFlag(cmd)
			if err != nil {
				return err
			}
			req, err := pickupRequestFromArgs(app, args)
			if err != nil {
				return err
			}
			exclude, _ := cmd.Flags().GetString("exclude")

			result, err := services.CheckPickup(
				app.Ctx,
				app.Database,
				app.Logger,
				app.Policy.Current().FrequencyRules,
				app.Location,
				requester,
				req,
				exclude,
			)
			if err != nil {
				return explainDenial(err)
			}

			if result.Valid {
				fmt.Printf("\n✓ Pickup allowed\n\n")
				return nil
			}
			fmt.Printf("\n❌ Pickup not allowed (%s): %s\n\n", result.Rule, result.Reason)
			return nil
		},
	}

	cmd.Flags().String("as", "", "Requester the pickup would be booked for")
	cmd.Flags().String("exclude", "", "Pickup id to leave out, as when editing it")

	return cmd
}

// EditPickupCmd creates the editPickup command
func EditPickupCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "editPickup <pickup_id> " + pickupArgsUsage,
		Short: "Change a pending or confirmed pickup",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			req, err := pickupRequestFromArgs(app, args[1:])
			if err != nil {
				return err
			}

			app.Logger.Debug("editPickup command", zap.String("pickup_id", id))

			pickup, err := services.EditPickup(
				app.Ctx,
				app.Database,
				app.Logger,
				app.Policy.Current().FrequencyRules,
				app.Location,
				id,
				req,
			)
			if err != nil {
				return explainDenial(err)
			}

			fmt.Printf("\n✓ Pickup updated!\n\n")
			printPickupDetail(pickup, app)
			return nil
		},
	}
}
