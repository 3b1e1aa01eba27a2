package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/points"
	"github.com/jakechorley/basurapp/pkg/core/services"
)

const displayTimeLayout = "Mon 2006-01-02 15:04"

// ListPickupsCmd creates the listPickups command
func ListPickupsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listPickups",
		Short: "List pickups, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := pickupFilterFromFlags(cmd, app)
			if err != nil {
				return err
			}

			pickups, err := services.ListPickups(app.Ctx, app.Database, app.Logger, filter)
			if err != nil {
				return err
			}

			formula := app.Policy.Current().PointsFormula
			fmt.Printf("\nFound %d pickups:\n\n", len(pickups))
			printPickupTable(pickups, app, func(p model.Pickup) string {
				return fmt.Sprintf("%d", points.PointsFor(p, formula))
			})
			return nil
		},
	}

	cmd.Flags().String("as", "", "Only pickups booked by this requester")
	cmd.Flags().String("kind", "", "Only pickups of this kind")
	cmd.Flags().String("locality", "", "Only pickups in this locality")
	cmd.Flags().String("status", "", "Only pickups with this status")
	cmd.Flags().String("from", "", "Only pickups on or after this date (yyyy-mm-dd)")
	cmd.Flags().String("to", "", "Only pickups before this date (yyyy-mm-dd)")
	cmd.Flags().Bool("archived", false, "Include archived pickups")

	return cmd
}

func pickupFilterFromFlags(cmd *cobra.Command, app *AppContext) (services.PickupFilter, error) {
	var filter services.PickupFilter
	var err error

	filter.Requester, _ = cmd.Flags().GetString("as")
	filter.IncludeArchived, _ = cmd.Flags().GetBool("archived")

	if value, _ := cmd.Flags().GetString("kind"); value != "" {
		if filter.Kind, err = parseKind(value); err != nil {
			return filter, err
		}
	}
	if value, _ := cmd.Flags().GetString("locality"); value != "" {
		if filter.Locality, err = parseLocality(value); err != nil {
			return filter, err
		}
	}
	if value, _ := cmd.Flags().GetString("status"); value != "" {
		if filter.Status, err = parseStatus(value); err != nil {
			return filter, err
		}
	}
	if value, _ := cmd.Flags().GetString("from"); value != "" {
		if filter.From, err = parseDate(value, app.Location); err != nil {
			return filter, err
		}
	}
	if value, _ := cmd.Flags().GetString("to"); value != "" {
		if filter.To, err = parseDate(value, app.Location); err != nil {
			return filter, err
		}
	}

	return filter, nil
}

// CollectorPickupsCmd creates the collectorPickups command
func CollectorPickupsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collectorPickups --collector <username>",
		Short: "List the confirmed and completed pickups assigned to a collector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("collector")

			pickups, err := services.ListCollectorPickups(app.Ctx, app.Database, app.Logger, username)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d pickups assigned to %s:\n\n", len(pickups), strings.TrimSpace(username))
			printPickupTable(pickups, app, func(p model.Pickup) string {
				if weight, ok := p.Weight(); ok {
					return fmt.Sprintf("%.1f kg", weight)
				}
				return "—"
			})
			return nil
		},
	}

	cmd.Flags().String("collector", "", "Collector username")

	return cmd
}

func printPickupTable(pickups []model.Pickup, app *AppContext, extra func(model.Pickup) string) {
	if len(pickups) == 0 {
		fmt.Println("No pickups found.")
		fmt.Println()
		return
	}

	fmt.Printf("%-36s  %-20s  %-10s  %-14s  %-10s  %-12s  %s\n", "ID", "When", "Kind", "Locality", "Status", "Requester", "")
	fmt.Println(strings.Repeat("-", 120))
	for _, p := range pickups {
		status := string(p.Status)
		if p.Archived {
			status += "*"
		}
		fmt.Printf("%-36s  %-20s  %-10s  %-14s  %-10s  %-12s  %s\n",
			p.ID,
			p.ScheduledAt.In(app.Location).Format(displayTimeLayout),
			p.Kind,
			p.Locality,
			status,
			p.RequestedBy,
			extra(p),
		)
	}
	fmt.Println()
}

func printPickupDetail(p *model.Pickup, app *AppContext) {
	fmt.Printf("ID:        %s\n", p.ID)
	fmt.Printf("When:      %s (%s)\n", p.ScheduledAt.In(app.Location).Format(displayTimeLayout), p.TimeSlot)
	fmt.Printf("Kind:      %s\n", p.Kind)
	fmt.Printf("Locality:  %s\n", p.Locality)
	fmt.Printf("Address:   %s\n", p.Address)
	fmt.Printf("Requester: %s\n", p.RequestedBy)
	fmt.Printf("Status:    %s\n", p.Status)
	if p.StaffUsername != "" {
		fmt.Printf("Collector: %s (%s)\n", p.Staff, p.StaffUsername)
	}
	if weight, ok := p.Weight(); ok {
		fmt.Printf("Weight:    %.2f kg\n", weight)
	}
	fmt.Printf("Points:    %d\n", points.PointsFor(*p, app.Policy.Current().PointsFormula))
	fmt.Println()
}
