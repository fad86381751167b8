package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warelog/warelog/internal/cli"
	"github.com/warelog/warelog/internal/model"
	"github.com/warelog/warelog/internal/service"
)

func addCmd() *cobra.Command {
	var (
		id              string
		kind            string
		date            string
		materialName    string
		materialNumber  string
		machineCategory string
		machineNumber   string
		quantity        int
		unitPrice       float64
		note            string
		accountCategory string
		received        bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or edit an inbound, usage, or construction record",
		Long: `Create a record, or edit one by passing its id. The total is always
quantity times unit price; a stale total is recomputed. The write
lands locally first and syncs to the remote store.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			k := model.Kind(kind)
			if !k.Valid() || k == model.KindRepair {
				return fmt.Errorf("invalid kind %q (use %s, %s, or %s)",
					kind, model.KindInbound, model.KindUsage, model.KindConstruction)
			}

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			outcome, err := a.coord.Upsert(ctx, model.Transaction{
				ID:              id,
				Date:            date,
				Kind:            k,
				MaterialName:    materialName,
				MaterialNumber:  materialNumber,
				MachineCategory: machineCategory,
				MachineNumber:   machineNumber,
				Quantity:        quantity,
				UnitPrice:       unitPrice,
				Note:            note,
				AccountCategory: accountCategory,
				IsReceived:      received,
			})
			if err != nil {
				return err
			}

			reportOutcome(outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "record id (empty creates a new record)")
	cmd.Flags().StringVar(&kind, "kind", string(model.KindInbound), "record kind")
	cmd.Flags().StringVar(&date, "date", "", "record date (default: today)")
	cmd.Flags().StringVar(&materialName, "name", "", "material name")
	cmd.Flags().StringVar(&materialNumber, "pn", "", "material part number")
	cmd.Flags().StringVar(&machineCategory, "machine-category", "", "machine category")
	cmd.Flags().StringVar(&machineNumber, "machine", "", "machine number")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity")
	cmd.Flags().Float64Var(&unitPrice, "price", 0, "unit price")
	cmd.Flags().StringVar(&note, "note", "", "note")
	cmd.Flags().StringVar(&accountCategory, "account", "", "account category")
	cmd.Flags().BoolVar(&received, "received", false, "goods already received")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func repairAddCmd() *cobra.Command {
	var (
		id            string
		date          string
		materialName  string
		machineNumber string
		sn            string
		faultReason   string
		total         float64
		note          string
		scrapped      bool
		sentDate      string
		repairDate    string
		installDate   string
	)

	cmd := &cobra.Command{
		Use:   "repair-add",
		Short: "Add or edit a repair record",
		Long: `Create a repair record, or edit one by passing its id. Repairs carry a
flat fee: the total stands as entered and quantity is fixed at one.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			outcome, err := a.coord.Upsert(ctx, model.Transaction{
				ID:            id,
				Date:          date,
				Kind:          model.KindRepair,
				MaterialName:  materialName,
				MachineNumber: machineNumber,
				SN:            sn,
				FaultReason:   faultReason,
				Total:         total,
				Note:          note,
				IsScrapped:    scrapped,
				SentDate:      sentDate,
				RepairDate:    repairDate,
				InstallDate:   installDate,
			})
			if err != nil {
				return err
			}

			reportOutcome(outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "record id (empty creates a new record)")
	cmd.Flags().StringVar(&date, "date", "", "record date (default: today)")
	cmd.Flags().StringVar(&materialName, "name", "", "repaired part or unit")
	cmd.Flags().StringVar(&machineNumber, "machine", "", "machine number")
	cmd.Flags().StringVar(&sn, "sn", "", "device serial number")
	cmd.Flags().StringVar(&faultReason, "fault", "", "fault description")
	cmd.Flags().Float64Var(&total, "total", 0, "flat repair fee")
	cmd.Flags().StringVar(&note, "note", "", "note")
	cmd.Flags().BoolVar(&scrapped, "scrapped", false, "written off as scrap")
	cmd.Flags().StringVar(&sentDate, "sent", "", "date sent out for repair")
	cmd.Flags().StringVar(&repairDate, "repaired", "", "date the repair completed")
	cmd.Flags().StringVar(&installDate, "installed", "", "date reinstalled on the machine")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func reportOutcome(outcome service.WriteOutcome) {
	verb := "Updated"
	if outcome.Created {
		verb = "Created"
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s record %s", verb, outcome.ID)))

	if !outcome.Synced {
		fmt.Println(cli.FormatWarning("Remote write failed; the record is saved locally and will show as pending"))
	} else if !outcome.Reconciled {
		fmt.Println(cli.FormatWarning("Synced, but the follow-up refresh failed"))
	}
}
