package encoder

import (
	"bytes"
	"encoding/csv"

	"github.com/muzammil922/dentalcare-reporter/pkg/model"
)

// Delimited encodes the record's flat projection as comma-separated text.
// An empty projection yields a header-only file.
func Delimited(record *model.ReportRecord) ([]byte, error) {
	headers, rows := record.FlatTable()

	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
