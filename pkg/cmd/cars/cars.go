package cars

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/carmodel"
	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/config"
)

// NewCarsCmd lists the effective car model table (built-in plus the entries
// of --car-models if given).
func NewCarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cars",
		Short: "list the known car models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCars()
		},
	}
	return cmd
}

func listCars() error {
	cars := carmodel.Default()
	if config.CarModelsFile != "" {
		if err := cars.MergeFile(config.CarModelsFile); err != nil {
			return err
		}
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Name"})
	for _, id := range cars.IDs() {
		name, _ := cars.Lookup(id)
		t.AppendRow(table.Row{id, name})
	}
	t.Render()
	return nil
}
