package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/store"
)

func TestTableAlignsAndTruncates(t *testing.T) {
	var buf bytes.Buffer
	tb := newTable(&buf,
		column{title: "Name", width: 6},
		column{title: "N", width: 4, right: true},
		column{title: "Note", width: 3},
	)
	tb.header()
	tb.row("Geography", 7, "last column is kept whole")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name       N  Note", lines[0])
	assert.Equal(t, strings.Repeat("─", 6+2+4+2+3), lines[1])
	assert.Equal(t, "Geogra     7  last column is kept whole", lines[2])
}

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "Café", truncate("Café au lait", 4))
	assert.Equal(t, "short", truncate("short", 10))
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.50", formatCost(1.5))
}

func TestBuildUsageReportFlagsUnpricedModels(t *testing.T) {
	report := buildUsageReport(
		[]store.PurposeUsage{{Purpose: "trivia-batch", Calls: 2}},
		[]store.ModelUsage{
			{Model: "claude-haiku-4-5", Calls: 2, InputTokens: 1_000_000, OutputTokens: 0},
			{Model: "home-grown-model", Calls: 1},
		},
	)

	require.Len(t, report.Models, 2)
	require.NotNil(t, report.Models[0].CostUSD)
	assert.InDelta(t, 1.0, *report.Models[0].CostUSD, 1e-9)
	assert.Nil(t, report.Models[1].CostUSD)
	assert.InDelta(t, 1.0, report.TotalCostUSD, 1e-9)
	assert.Equal(t, []string{"home-grown-model"}, report.UnpricedModels)
}
