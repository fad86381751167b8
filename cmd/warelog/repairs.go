package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/warelog/warelog/internal/cli"
	"github.com/warelog/warelog/internal/model"
	"github.com/warelog/warelog/internal/stats"
)

func repairsCmd() *cobra.Command {
	var (
		year  string
		month string
		start string
		end   string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "repairs",
		Short: "Rank materials by repair frequency",
		Long: `Count repair records per material and list the most repaired first.
Narrow by year and month, or by an explicit date range; the two are
mutually exclusive and the range wins when given.`,
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

			scope := model.AggregationScope{
				Mode:  model.RankByYearMonth,
				Year:  year,
				Month: month,
				Limit: limit,
			}
			if start != "" || end != "" {
				scope = model.AggregationScope{
					Mode:      model.RankByDateRange,
					StartDate: start,
					EndDate:   end,
					Limit:     limit,
				}
			}
			if scope.Year == "" {
				scope.Year = model.Today()[:4]
			}

			ranking := stats.RepairRanking(records, scope)
			if len(ranking) == 0 {
				fmt.Println(cli.InfoStyle.Render("No repairs in scope."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(cli.WrenchIcon + " Repair frequency"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("#"),
				headerStyle.Render("Material"),
				headerStyle.Render("Repairs"))
			for i, r := range ranking {
				fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, r.MaterialName, r.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "four-digit year (default: current; \"all\" disables)")
	cmd.Flags().StringVar(&month, "month", "", "month within the year (01-12; \"all\" disables)")
	cmd.Flags().StringVar(&start, "start", "", "range start (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "range end (YYYY-MM-DD, inclusive)")
	cmd.Flags().IntVar(&limit, "limit", 5, "how many materials to show (-1 for all)")

	return cmd
}
