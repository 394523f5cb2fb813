// Package export serializes transaction snapshots to CSV. A pure function of
// a snapshot: the sync layer only supplies the data.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"cashier/internal/core"
)

var header = []string{"date", "title", "type", "category", "amount"}

// WriteCSV writes the snapshot with the fixed column order
// date, title, type, category, amount. Field quoting follows RFC 4180.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range txs {
		record := []string{
			t.Date.Format("2006-01-02"),
			t.Title,
			string(t.Type),
			t.Category,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Bytes renders the snapshot to an in-memory CSV document.
func Bytes(txs []core.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, txs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
