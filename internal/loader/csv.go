package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads a CSV payload into a table. Ragged rows are tolerated;
// missing trailing cells read as absent. An empty payload yields an empty
// table, not an error.
func ParseCSV(raw []byte) (Table, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}

	table := Table{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read row: %w", err)
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
