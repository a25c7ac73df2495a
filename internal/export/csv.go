package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/projsim/internal/flight"
)

// WriteCSV writes the flown path with columns i,x,y.
func WriteCSV(w io.Writer, sn flight.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"i", "x", "y"}); err != nil {
		return err
	}
	for i, p := range sn.Path {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
