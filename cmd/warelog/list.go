package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/warelog/warelog/internal/cli"
	"github.com/warelog/warelog/internal/engine"
	"github.com/warelog/warelog/internal/model"
)

func listCmd() *cobra.Command {
	var (
		view     string
		status   string
		category string
		start    string
		end      string
		keyword  string
		scope    string
		page     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records",
		Long: `Show the filtered record list. The records view hides repairs and
scrapped items; the repairs view shows only repairs. A status filter
searches the whole record set regardless of view.`,
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

			state := model.FilterState{
				ActiveView: model.View(view),
				Status:     model.Status(status),
				Category:   model.Kind(category),
				StartDate:  start,
				EndDate:    end,
				Keyword:    keyword,
				ViewScope:  model.Scope(scope),
				Page:       page,
			}
			if state.Status == "" {
				state.Status = model.StatusAll
			}

			// Remember the selections for the next run.
			_ = a.sessions.SetActiveView(ctx, state.ActiveView)
			_ = a.sessions.SetViewScope(ctx, state.ViewScope)

			filtered := engine.Filter(records, state)
			window := engine.Paginate(filtered, state.ViewScope, state.Page)

			if len(window) == 0 {
				fmt.Println(cli.InfoStyle.Render("No records match."))
				return nil
			}

			printTransactionTable(window, state.ActiveView == model.ViewRepairs)

			if state.ViewScope == model.ScopeAll {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
					"page %d of %d, %d records", state.Page, engine.PageCount(len(filtered)), len(filtered))))
			} else {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
					"newest %d of %d records", len(window), len(filtered))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", string(model.ViewRecords), "view (records, repairs)")
	cmd.Flags().StringVar(&status, "status", string(model.StatusAll), "status filter (all, pending_inbound, scrapped, repairing)")
	cmd.Flags().StringVar(&category, "category", "", "narrow the records view to one kind")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&keyword, "keyword", "", "substring match on name, numbers, serial, operator")
	cmd.Flags().StringVar(&scope, "scope", string(model.ScopeRecent), "scope (recent, all)")
	cmd.Flags().IntVar(&page, "page", 1, "page number in all scope")

	return cmd
}

func printTransactionTable(records []model.Transaction, repairs bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	if repairs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			headerStyle.Render("ID"),
			headerStyle.Render("Date"),
			headerStyle.Render("Material"),
			headerStyle.Render("Machine"),
			headerStyle.Render("SN"),
			headerStyle.Render("Fault"),
			headerStyle.Render("State"))
	} else {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			headerStyle.Render("ID"),
			headerStyle.Render("Date"),
			headerStyle.Render("Kind"),
			headerStyle.Render("Material"),
			headerStyle.Render("Qty"),
			headerStyle.Render("Unit"),
			headerStyle.Render("Total"),
			headerStyle.Render("Operator"))
	}

	for _, tx := range records {
		if repairs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				tx.ID, tx.Date, tx.MaterialName, tx.MachineNumber,
				tx.SN, tx.FaultReason, repairState(tx))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\t%.2f\t%s\n",
			tx.ID, tx.Date, string(tx.Kind), tx.MaterialName,
			tx.Quantity, tx.UnitPrice, tx.Total, tx.Operator)
	}
}

func repairState(tx model.Transaction) string {
	switch {
	case tx.IsScrapped:
		return cli.StyleError("報廢")
	case tx.Repairing():
		return cli.StyleWarning("維修中")
	default:
		return cli.StyleSuccess("已完修")
	}
}
