package report

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/carmodel"
	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/processing"
)

// FormatLapTime renders milliseconds as mm:ss.mmm. Minutes are not capped,
// values of 100 minutes and more render with additional digits.
func FormatLapTime(ms int) string {
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

// FormatGap renders a gap in milliseconds as seconds with 3 decimals.
func FormatGap(ms int) string {
	return fmt.Sprintf("%.3f", float64(ms)/1000.0)
}

// Row is one formatted line of the report.
type Row struct {
	Name    string
	Car     string
	LapTime string
	S1      string
	S2      string
	S3      string
	Gap     string
}

type Writer struct {
	cars *carmodel.Table
}

func NewWriter(cars *carmodel.Table) *Writer {
	return &Writer{cars: cars}
}

// Rows formats the ranked entries. An unknown car model is an error, it
// signals a stale car model table rather than a data problem.
func (w *Writer) Rows(entries []processing.RankedEntry) ([]Row, error) {
	rows := make([]Row, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		carName, err := w.cars.Lookup(e.Key.CarModel)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{
			Name:    e.Lap.FirstName + " " + e.Lap.LastName,
			Car:     carName,
			LapTime: FormatLapTime(e.Lap.Laptime),
			S1:      FormatLapTime(e.Lap.Splits[0]),
			S2:      FormatLapTime(e.Lap.Splits[1]),
			S3:      FormatLapTime(e.Lap.Splits[2]),
			Gap:     FormatGap(e.Gap),
		})
	}
	return rows, nil
}

// WriteCSV formats all entries and writes them to path. The rows are built
// completely before the file is created, a formatting error leaves no
// partial output behind.
func (w *Writer) WriteCSV(path string, entries []processing.RankedEntry) error {
	rows, err := w.Rows(entries)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output file %s: %w", path, err)
	}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	// keep the header verbatim, no upper-casing
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Name", "Car", "Lap Time", "S1", "S2", "S3", "Gap"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Name, r.Car, r.LapTime, r.S1, r.S2, r.S3, r.Gap})
	}
	t.RenderCSV()
	if err := out.Close(); err != nil {
		return fmt.Errorf("could not write output file %s: %w", path, err)
	}
	return nil
}
