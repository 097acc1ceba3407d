// Package render draws records as terminal tables. Renderers take the records
// to draw as arguments and keep no state of their own.
package render

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table renders records of kind with one column per schema field, key field
// first. Missing values render as empty cells.
func Table(kind domain.Kind, records []domain.Document) string {
	headers := kind.FieldNames()

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(headers))
		for i, name := range headers {
			row[i] = FormatValue(rec[name])
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// FormatValue renders one field value: numbers without a trailing ".0", nil
// as an empty string.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
