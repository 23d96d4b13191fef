package table

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"
)

const dataURIPrefix = "data:text/csv;charset=utf-8;base64,"

func Write(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}

	return nil
}

// DataURI encodes the table as a base64 CSV data URI suitable for a download link.
func DataURI(t *Table) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
