package commands

import (
	"sort"

	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/domain/entity"
	"patient-record-manager/internal/usecase"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newDashboardCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the analytics dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			names := map[string]string{}
			for _, q := range entity.DashboardQueries(app.Dialect()) {
				names[q.ID] = q.Name
			}
			return renderDashboard(app.Dashboard.Get(cmd.Context()), names)
		},
	}
}

func renderDashboard(d *dto.DashboardResponse, names map[string]string) error {
	pterm.DefaultSection.Println("Metrics")

	ids := make([]string, 0, len(d.Metrics))
	for id := range d.Metrics {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	metrics := pterm.TableData{{"Metric", "Value"}}
	for _, id := range ids {
		metrics = append(metrics, []string{names[id], d.Metrics[id]})
	}
	insured := usecase.NotAvailable
	if d.InsuredPercentage.Valid {
		insured = d.InsuredPercentage.Decimal.String() + "%"
	}
	metrics = append(metrics, []string{"Insured patients", insured})

	if err := pterm.DefaultTable.WithHasHeader().WithData(metrics).Render(); err != nil {
		return err
	}

	seriesIDs := make([]string, 0, len(d.Series))
	for id := range d.Series {
		seriesIDs = append(seriesIDs, id)
	}
	sort.Strings(seriesIDs)

	for _, id := range seriesIDs {
		pterm.DefaultSection.Println(names[id])
		rows := d.Series[id]
		if len(rows) == 0 {
			pterm.Info.Println("No data")
			continue
		}
		data := pterm.TableData{rows[0].Columns}
		for _, row := range rows {
			cells := make([]string, len(row.Values))
			for i, v := range row.Values {
				cells[i] = v.String()
			}
			data = append(data, cells)
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}
	return nil
}
