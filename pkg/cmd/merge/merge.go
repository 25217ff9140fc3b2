package merge

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/acc-hotlap-merger-go/log"
	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/archive"
	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/carmodel"
	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/config"
	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/processing"
	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/report"
)

func NewMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "merge the session results of an archive into a hotlap report",
		Long: `Reads all session result json files of a zip archive, computes each
driver's best valid lap per car model across all sessions and writes a
csv report ranked by lap time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&config.InputArchive,
		"input",
		"i",
		"",
		"zip archive containing session result json files")
	cmd.Flags().StringVarP(&config.OutputFile,
		"output",
		"o",
		"",
		"path of the csv report to write")
	//nolint:errcheck // flags are defined above
	cmd.MarkFlagRequired("input")
	//nolint:errcheck // flags are defined above
	cmd.MarkFlagRequired("output")
	return cmd
}

func runMerge(ctx context.Context) error {
	logger := log.GetFromContext(ctx).Named("merge")

	cars := carmodel.Default()
	if config.CarModelsFile != "" {
		if err := cars.MergeFile(config.CarModelsFile); err != nil {
			return err
		}
	}

	provider, err := archive.NewZipProvider(config.InputArchive)
	if err != nil {
		return err
	}
	defer provider.Close()

	agg := processing.NewAggregator()
	entries, err := agg.Aggregate(provider)
	if err != nil {
		return err
	}
	logger.Info("best laps aggregated", log.Int("entries", len(entries)))

	if err := report.NewWriter(cars).WriteCSV(config.OutputFile, entries); err != nil {
		return err
	}
	logger.Info("report written", log.String("file", config.OutputFile))
	return nil
}
