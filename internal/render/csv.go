package render

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/P0werNap/Kraken-PNL/internal/report"
)

// CSV writes the summary report as delimited text so it opens in
// Excel or Sheets.
func CSV(w io.Writer, rows []report.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, r := range rows {
		if err := cw.Write(rowValues(r)); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// CSVFile writes the report to path. An empty report writes nothing
// and leaves no file behind.
func CSVFile(path string, rows []report.Row) error {
	if len(rows) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := CSV(f, rows); err != nil {
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
