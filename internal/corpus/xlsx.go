package corpus

import (
	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first sheet of a workbook using the same layout as the
// CSV exports.
func readXLSX(path string) ([]point, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Path: path, Err: errNoColumns}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(rows) <= preambleLines {
		return nil, &ParseError{Path: path, Err: errNoColumns}
	}

	p := &rowParser{path: path}
	for i := preambleLines; i < len(rows); i++ {
		if err := p.add(rows[i], i+1); err != nil {
			return nil, err
		}
	}

	return p.finish()
}
