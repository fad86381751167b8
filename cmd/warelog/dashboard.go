package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/warelog/warelog/internal/cli"
	"github.com/warelog/warelog/internal/model"
	"github.com/warelog/warelog/internal/stats"
)

const trendBarWidth = 30

func dashboardCmd() *cobra.Command {
	var (
		year  string
		month string
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the aggregate dashboard",
		Long: `Summarize the year: inbound totals, a monthly cost trend, and the
spend distribution across machine categories.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.storage.GetTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to load records: %w", err)
			}

			today := model.Today()
			if year == "" {
				year = today[:4]
			}
			scopedKind := model.Kind(kind)

			fmt.Println(cli.FormatTitle("Dashboard " + year))

			summary := stats.SummarizeInbound(records, year, today[5:7])
			printInboundSummary(summary, year == today[:4])

			fmt.Println(cli.SubtitleStyle.Render("Monthly trend"))
			printTrend(stats.MonthlyTrend(records, year, scopedKind))

			fmt.Println(cli.SubtitleStyle.Render("By machine category"))
			printBreakdown(stats.CategoryBreakdown(records, year, month, scopedKind))

			years := stats.AvailableYears(records, today[:4])
			fmt.Println(cli.SubtleStyle.Render("years with data: " + strings.Join(years, ", ")))
			return nil
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "four-digit year (default: current)")
	cmd.Flags().StringVar(&month, "month", "", "narrow the breakdown to one month (01-12)")
	cmd.Flags().StringVar(&kind, "kind", string(model.KindAll), "record kind to aggregate")

	return cmd
}

func printInboundSummary(s stats.InboundSummary, currentYear bool) {
	lines := fmt.Sprintf("Inbound this year: %s (%d records)",
		formatAmount(s.YearAmount), s.YearCount)
	if currentYear {
		lines += fmt.Sprintf("\nInbound this month: %s (%d records)",
			formatAmount(s.MonthAmount), s.MonthCount)
	}
	fmt.Println(cli.RenderBox("進貨", lines))
}

func printTrend(buckets []stats.MonthBucket) {
	var peak float64
	for _, b := range buckets {
		if b.Amount > peak {
			peak = b.Amount
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	barStyle := lipgloss.NewStyle().Foreground(cli.PrimaryColor)
	for _, b := range buckets {
		width := 0
		if peak > 0 {
			width = int(b.Amount / peak * trendBarWidth)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			b.Month,
			barStyle.Render(strings.Repeat("█", width)),
			formatAmount(b.Amount),
			b.Count)
	}
}

func printBreakdown(slices []stats.CategorySlice) {
	if len(slices) == 0 {
		fmt.Println(cli.InfoStyle.Render("No records in scope."))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("Category"),
		headerStyle.Render("Amount"),
		headerStyle.Render("Share"),
		headerStyle.Render("Records"))

	for _, s := range slices {
		fmt.Fprintf(w, "%s\t%s\t%.1f%%\t%d\n",
			s.Name, formatAmount(s.Amount), s.Percent, s.Count)
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
