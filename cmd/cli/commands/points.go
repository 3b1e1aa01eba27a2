package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/pkg/core/points"
	"github.com/jakechorley/basurapp/pkg/core/services"
)

// PointsCmd creates the points command
func PointsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points --as <requester>",
		Short: "Show the points a citizen has earned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requester, err := requesterFlag(cmd)
			if err != nil {
				return err
			}

			total, err := services.RequesterPoints(app.Ctx, app.Database, app.Logger, app.Policy.Current().PointsFormula, requester)
			if err != nil {
				return err
			}

			fmt.Printf("\n⭐ %s has %d points\n\n", requester, total)
			return nil
		},
	}

	cmd.Flags().String("as", "", "Requester to total")

	return cmd
}

// CollectorPointsCmd creates the collectorPoints command
func CollectorPointsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collectorPoints --collector <username>",
		Short: "Show the points of the pickups a collector has completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("collector")
			if points.NormalizeUsername(username) == "" {
				return fmt.Errorf("--collector <username> is required")
			}

			total, err := services.CollectorPoints(app.Ctx, app.Database, app.Logger, app.Policy.Current().PointsFormula, username)
			if err != nil {
				return err
			}

			fmt.Printf("\n⭐ %s has collected %d points\n\n", username, total)
			return nil
		},
	}

	cmd.Flags().String("collector", "", "Collector username")

	return cmd
}

// LeaderboardCmd creates the leaderboard command
func LeaderboardCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank citizens by points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			standings, err := services.Leaderboard(app.Ctx, app.Database, app.Logger, app.Policy.Current().PointsFormula)
			if err != nil {
				return err
			}

			fmt.Println()
			printStandings(standings)
			return nil
		},
	}
}

// PublishReportCmd creates the publishReport command
func PublishReportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishReport",
		Short: "Publish the points leaderboard to Google Sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			publisher, err := app.ReportPublisher()
			if err != nil {
				return err
			}

			title, standings, err := services.PublishPointsReport(
				app.Ctx,
				app.Database,
				publisher,
				app.Logger,
				app.Policy.Current().PointsFormula,
				app.Location,
			)
			if err != nil {
				return err
			}

			app.Logger.Debug("publishReport command", zap.String("title", title))

			fmt.Printf("\n✅ Points report published\n\n")
			fmt.Printf("Tab:      %s\n", title)
			fmt.Printf("Sheet ID: %s\n\n", app.Cfg.ReportSheetID)
			printStandings(standings)
			return nil
		},
	}
}

func printStandings(standings []points.Standing) {
	if len(standings) == 0 {
		fmt.Println("No points earned yet.")
		fmt.Println()
		return
	}

	fmt.Printf("%-5s  %-24s  %8s  %8s\n", "Rank", "Requester", "Points", "Pickups")
	fmt.Println("-----  ------------------------  --------  --------")
	for i, s := range standings {
		fmt.Printf("%-5d  %-24s  %8d  %8d\n", i+1, s.Requester, s.Points, s.Pickups)
	}
	fmt.Println()
}
