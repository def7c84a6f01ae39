package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/featurelayer-cli/internal/table"
)

// SheetName is the worksheet WriteXLSX creates.
const SheetName = "features"

// WriteXLSX saves t to a workbook at path with one sheet laid out like the
// CSV output. Numbers and booleans keep their cell types.
func WriteXLSX(path string, t *table.Table) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, c := range t.Columns() {
		header.AddCell().SetString(c)
	}

	for i := 0; i < t.Len(); i++ {
		row := sheet.AddRow()
		for _, v := range t.Row(i) {
			cell := row.AddCell()
			switch x := v.(type) {
			case float64:
				cell.SetFloat(x)
			case bool:
				cell.SetBool(x)
			default:
				s, err := cellText(v)
				if err != nil {
					return eris.Wrapf(err, "xlsx: row %d", i+1)
				}
				cell.SetString(s)
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx: save %s", path)
	}
	return nil
}
