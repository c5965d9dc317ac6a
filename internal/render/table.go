// Package render owns presentation of the summary report: a styled
// console table and a CSV export for spreadsheets.
package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/P0werNap/Kraken-PNL/internal/report"
)

var headers = []string{
	"asset", "quote", "total_bought", "avg_buy_price",
	"total_sold", "avg_sell_price", "net_from_history",
	"remaining_unsold_volume", "avg_buy_price_of_remaining",
	"fees_total", "realized_pnl", "current_price", "unrealized_pnl",
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func rowValues(r report.Row) []string {
	return []string{
		r.Asset,
		r.Quote,
		r.TotalBought.String(),
		r.AvgBuyPrice.String(),
		r.TotalSold.String(),
		r.AvgSellPrice.String(),
		r.NetFromHistory.String(),
		r.RemainingVolume.String(),
		r.RemainingAvgCost.String(),
		r.FeesTotal.String(),
		r.RealizedPnL.String(),
		r.CurrentPrice.String(),
		r.UnrealizedPnL.String(),
	}
}

// Table writes the summary table to w. An empty report prints a
// short notice instead of an empty grid.
func Table(w io.Writer, rows []report.Row) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, "No trades found.\n")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range rows {
		t.Row(rowValues(r)...)
	}

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}
