package sheetsclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/pkg/core/points"
)

var reportHeader = []interface{}{"Rank", "Requester", "Points", "Pickups"}

// ReportPublisher writes points leaderboards into tabs of one spreadsheet
type ReportPublisher struct {
	client        *Client
	spreadsheetID string
}

// NewReportPublisher returns a publisher writing to spreadsheetID
func NewReportPublisher(client *Client, spreadsheetID string) *ReportPublisher {
	return &ReportPublisher{client: client, spreadsheetID: spreadsheetID}
}

// PublishStandings writes standings to the tab named title.
// The tab is created if missing and overwritten if it already exists.
func (p *ReportPublisher) PublishStandings(ctx context.Context, title string, standings []points.Standing) error {
	existing, err := p.client.findSheet(ctx, p.spreadsheetID, title)
	if err != nil {
		return err
	}

	if existing == nil {
		p.client.logger.Debug("Creating report tab", zap.String("title", title))
		if _, err := p.client.CreateSheet(ctx, p.spreadsheetID, title); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	} else {
		p.client.logger.Debug("Overwriting report tab", zap.String("title", title))
		if err := p.client.ClearSheet(ctx, p.spreadsheetID, title); err != nil {
			return err
		}
	}

	return p.client.WriteRows(ctx, p.spreadsheetID, title, buildReportRows(standings))
}

// buildReportRows lays out standings under a header row. Requesters tied on
// points share a rank.
func buildReportRows(standings []points.Standing) [][]interface{} {
	rows := make([][]interface{}, 0, len(standings)+1)
	rows = append(rows, reportHeader)

	rank := 0
	for i, standing := range standings {
		if i == 0 || standing.Points != standings[i-1].Points {
			rank = i + 1
		}
		rows = append(rows, []interface{}{rank, standing.Requester, standing.Points, standing.Pickups})
	}

	return rows
}
