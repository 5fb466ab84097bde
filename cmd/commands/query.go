package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"patient-record-manager/internal/delivery/dto"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newQueryCommand(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run SQL against the patient database",
		Example: `  patientdb query "SELECT gender, COUNT(*) FROM patients GROUP BY gender"
  patientdb query "SELECT * FROM patients" --export csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if format != "" {
				return exportQuery(cmd.Context(), app.Queries, args[0], format, output)
			}

			result, err := app.Queries.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderResult(result)
		},
	}

	cmd.Flags().StringVar(&format, "export", "", "Write the result as csv, json or xlsx instead of printing it")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export file path (defaults to query-results.<format>)")
	return cmd
}

type queryExporter interface {
	Export(ctx context.Context, req *dto.ExportQueryRequest) (*dto.ExportFile, error)
}

func exportQuery(ctx context.Context, queries queryExporter, query, format, output string) error {
	file, err := queries.Export(ctx, &dto.ExportQueryRequest{Query: query, Format: format})
	if err != nil {
		return err
	}
	if output == "" {
		output = file.Filename
	}
	if err := os.WriteFile(output, file.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	pterm.Success.Printfln("Exported to %s", output)
	return nil
}

func renderResult(result *dto.QueryResultResponse) error {
	return writeResult(os.Stdout, result)
}

func writeResult(w io.Writer, result *dto.QueryResultResponse) error {
	if len(result.Columns) == 0 {
		pterm.Info.Println("Statement executed")
		return nil
	}

	data := pterm.TableData{resultHeader(result)}
	for _, row := range result.Rows {
		cells := make([]string, len(row.Values))
		for i, v := range row.Values {
			if v.IsNull() {
				cells[i] = "NULL"
				continue
			}
			cells[i] = strings.ReplaceAll(v.String(), "\n", " ")
		}
		data = append(data, cells)
	}

	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).WithWriter(w).Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d row(s)\n", result.RowCount)
	return nil
}

func resultHeader(result *dto.QueryResultResponse) []string {
	header := make([]string, len(result.Columns))
	for i, c := range result.Columns {
		header[i] = c.Name
	}
	return header
}
