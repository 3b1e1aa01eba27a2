package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/basurapp/pkg/core/policy"
	"github.com/jakechorley/basurapp/pkg/core/services"
)

// ShowPolicyCmd creates the showPolicy command
func ShowPolicyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "showPolicy",
		Short: "Print the points formula and scheduling rules in force",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPolicy(app.Policy.Current())
		},
	}
}

func printPolicy(snapshot policy.Snapshot) error {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to render policy: %w", err)
	}
	fmt.Printf("\n%s\n", out)
	return nil
}

// policyUpdated reports a successful change and prints the new policy
func policyUpdated(snapshot policy.Snapshot) error {
	fmt.Printf("\n✓ Policy updated\n")
	return printPolicy(snapshot)
}

// SetBasePointsCmd creates the setBasePoints command
func SetBasePointsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setBasePoints <kind> <points>",
		Short: "Set the base points a kind of pickup earns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			base, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("points must be a whole number: %w", err)
			}

			snapshot, err := services.SetBasePoints(app.Ctx, app.Policy, app.Database, app.Logger, kind, base)
			if err != nil {
				return err
			}
			return policyUpdated(snapshot)
		},
	}
}

// SetWeightMultiplierCmd creates the setWeightMultiplier command
func SetWeightMultiplierCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setWeightMultiplier <points_per_kg>",
		Short: "Set the points each collected inorganic kilogram earns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			multiplier, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
			if err != nil {
				return fmt.Errorf("points_per_kg must be a number: %w", err)
			}

			snapshot, err := services.SetWeightMultiplier(app.Ctx, app.Policy, app.Database, app.Logger, multiplier)
			if err != nil {
				return err
			}
			return policyUpdated(snapshot)
		},
	}
}

// SetOrganicDayCmd creates the setOrganicDay command
func SetOrganicDayCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setOrganicDay <locality|default> <weekday|none>",
		Short: "Set the weekday organic waste is collected in a locality",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			locality, err := parsePolicyLocality(args[0])
			if err != nil {
				return err
			}
			weekday, err := parseOptionalWeekday(args[1])
			if err != nil {
				return err
			}

			snapshot, err := services.SetOrganicDay(app.Ctx, app.Policy, app.Database, app.Logger, locality, weekday)
			if err != nil {
				return err
			}
			return policyUpdated(snapshot)
		},
	}
}

// SetInorganicLimitsCmd creates the setInorganicLimits command
func SetInorganicLimitsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setInorganicLimits <max_per_week> <min_hours_between>",
		Short: "Set how often a citizen may book inorganic pickups",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxPerWeek, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("max_per_week must be a whole number: %w", err)
			}
			minHours, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
			if err != nil {
				return fmt.Errorf("min_hours_between must be a number: %w", err)
			}

			snapshot, err := services.SetInorganicLimits(app.Ctx, app.Policy, app.Database, app.Logger, maxPerWeek, minHours)
			if err != nil {
				return err
			}
			return policyUpdated(snapshot)
		},
	}
}

// SetHazardousLimitsCmd creates the setHazardousLimits command
func SetHazardousLimitsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setHazardousLimits <max_per_week_per_user>",
		Short: "Set how many hazardous pickups a citizen may book per week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxPerUser, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("max_per_week_per_user must be a whole number: %w", err)
			}

			snapshot, err := services.SetHazardousLimits(app.Ctx, app.Policy, app.Database, app.Logger, maxPerUser)
			if err != nil {
				return err
			}
			return policyUpdated(snapshot)
		},
	}
}

// SetHazardousCapacityCmd creates the setHazardousCapacity command
func SetHazardousCapacityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setHazardousCapacity <locality|default> <capacity|none>",
		Short: "Set how many hazardous pickups a locality can take per week",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			locality, err := parsePolicyLocality(args[0])
			if err != nil {
				return err
			}
			capacity, err := parseOptionalCount(args[1])
			if err != nil {
				return err
			}

			snapshot, err := services.SetHazardousCapacity(app.Ctx, app.Policy, app.Database, app.Logger, locality, capacity)
			if err != nil {
				return err
			}
			return policyUpdated(snapshot)
		},
	}
}
