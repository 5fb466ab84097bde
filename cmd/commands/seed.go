package commands

import (
	"fmt"

	"patient-record-manager/internal/delivery/dto"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:     "seed",
		Short:   "Insert generated patient records",
		Example: "  patientdb seed\n  patientdb seed --count 250",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 || count > dto.MaxSeedCount {
				return fmt.Errorf("--count must be between 0 and %d, got %d", dto.MaxSeedCount, count)
			}

			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			result := app.Patients.Seed(cmd.Context(), count)
			if result.Inserted == 0 {
				return fmt.Errorf("seeding %d patients failed, see log for the engine error", result.Requested)
			}

			pterm.Success.Printfln("Inserted %d patients", result.Inserted)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, fmt.Sprintf("Number of patients, at most %d (defaults to SEED_DEFAULT_COUNT)", dto.MaxSeedCount))
	return cmd
}
