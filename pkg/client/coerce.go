package client

import (
	"strconv"
	"strings"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// Coerce turns raw form input into a record: number fields that parse become
// float64, everything else is sent as typed, empty strings included. The
// server applies its own typing, so this is only a shallow convenience.
func Coerce(kind domain.Kind, form map[string]string) domain.Document {
	record := make(domain.Document, len(form))
	for name, raw := range form {
		record[name] = raw
		if f, ok := kind.Field(name); ok && f.Type == domain.FieldNumber {
			if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				record[name] = n
			}
		}
	}
	return record
}

// ParseAssignments splits field=value arguments into a form mapping.
func ParseAssignments(args []string) (map[string]string, error) {
	form := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, &AssignmentError{Arg: arg}
		}
		form[name] = value
	}
	return form, nil
}

// AssignmentError reports an argument that is not field=value.
type AssignmentError struct {
	Arg string
}

func (e *AssignmentError) Error() string {
	return "expected field=value, got " + strconv.Quote(e.Arg)
}
