package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/basurapp/pkg/core/services"
)

const defaultOrganicDateCount = 4

// OrganicDatesCmd creates the organicDates command
func OrganicDatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "organicDates <locality> [count]",
		Short: "List the next dates organic waste can be booked in a locality",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			locality, err := parseLocality(args[0])
			if err != nil {
				return err
			}

			count := defaultOrganicDateCount
			if len(args) > 1 {
				count, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("count must be a number: %w", err)
				}
			}

			dates, err := services.OrganicDates(app.Policy.Current().FrequencyRules, locality, app.Location, count)
			if err != nil {
				return err
			}

			fmt.Printf("\nNext organic collection dates in %s:\n", locality)
			for i, date := range dates {
				fmt.Printf("  %2d. %s\n", i+1, date.Format("2006-01-02 (Monday)"))
			}
			fmt.Println()
			return nil
		},
	}
}
