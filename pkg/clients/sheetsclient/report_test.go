package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/basurapp/pkg/core/points"
)

func TestBuildReportRows(t *testing.T) {
	standings := []points.Standing{
		{Requester: "luis", Points: 120, Pickups: 1},
		{Requester: "ana", Points: 100, Pickups: 2},
		{Requester: "bea", Points: 100, Pickups: 2},
		{Requester: "zoe", Points: 40, Pickups: 1},
	}

	rows := buildReportRows(standings)

	assert.Equal(t, [][]interface{}{
		{"Rank", "Requester", "Points", "Pickups"},
		{1, "luis", 120, 1},
		{2, "ana", 100, 2},
		{2, "bea", 100, 2},
		{4, "zoe", 40, 1},
	}, rows)
}

func TestBuildReportRows_Empty(t *testing.T) {
	assert.Equal(t, [][]interface{}{reportHeader}, buildReportRows(nil))
}

func TestSheetRange(t *testing.T) {
	assert.Equal(t, "'Points 2026-10-18'!A1", sheetRange("Points 2026-10-18", "A1"))
}
