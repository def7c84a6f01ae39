package export

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/featurelayer-cli/internal/table"
)

// WriteCSV writes t with a header row of column names. Geometries are WKT
// and nil values are empty cells.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return eris.Wrap(err, "csv: write header")
	}

	record := make([]string, len(t.Columns()))
	for i := 0; i < t.Len(); i++ {
		for c, v := range t.Row(i) {
			s, err := cellText(v)
			if err != nil {
				return eris.Wrapf(err, "csv: row %d", i+1)
			}
			record[c] = s
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "csv: write row %d", i+1)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "csv: flush")
}
