package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
)

// getCellValue returns the cell of row under the header named columnName.
// The first table row is the header.
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return strings.TrimSpace(row.Cells[i].Value)
			}
			return ""
		}
	}
	return ""
}

// parseCount reads a table count; "?" is cargo.Unknown.
func parseCount(s string) (int, error) {
	if s == "?" {
		return cargo.Unknown, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return n, nil
}

// cargoTable reads a | commodity | count | table into a map.
func cargoTable(table *godog.Table) (cargo.Map, error) {
	out := make(cargo.Map)
	for _, row := range table.Rows[1:] {
		n, err := parseCount(getCellValue(table, row, "count"))
		if err != nil {
			return nil, err
		}
		out[getCellValue(table, row, "commodity")] = n
	}
	return out, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
