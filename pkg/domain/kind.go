package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldType is the schema type of a record field.
type FieldType int

const (
	FieldString FieldType = iota
	FieldNumber
)

func (t FieldType) String() string {
	switch t {
	case FieldNumber:
		return "number"
	default:
		return "string"
	}
}

// Field is one named, typed field of a record kind.
type Field struct {
	Name string
	Type FieldType
}

// Kind describes one record category: where it is served, which collection
// holds it and how its fields are typed.
type Kind struct {
	Name       string
	Path       string // URL segment under /api
	Collection string
	Plural     string // human-readable plural, used in messages
	KeyField   string
	Fields     []Field // key field first

	CreatedMessage string
	FailedMessage  string
}

var (
	BloodType = Kind{
		Name:       "BloodType",
		Path:       "blood-types",
		Collection: "bloodtypes",
		Plural:     "blood types",
		KeyField:   "Blood_Type_ID",
		Fields: []Field{
			{Name: "Blood_Type_ID"},
			{Name: "Name"},
		},
		CreatedMessage: "Blood Type saved",
		FailedMessage:  "Failed to save blood type",
	}

	Hospital = Kind{
		Name:       "Hospital",
		Path:       "hospitals",
		Collection: "hospitals",
		Plural:     "hospitals",
		KeyField:   "Hospital_ID",
		Fields: []Field{
			{Name: "Hospital_ID"},
			{Name: "Name"},
			{Name: "Address"},
			{Name: "Contact"},
		},
		CreatedMessage: "Hospital added successfully",
		FailedMessage:  "Failed to add hospital",
	}

	Donor = Kind{
		Name:       "Donor",
		Path:       "donors",
		Collection: "donors",
		Plural:     "donors",
		KeyField:   "Donor_ID",
		Fields: []Field{
			{Name: "Donor_ID"},
			{Name: "Name"},
			{Name: "Contact"},
			{Name: "Age", Type: FieldNumber},
			{Name: "Blood_Type"},
			{Name: "Card_ID"},
		},
		CreatedMessage: "Donor added successfully",
		FailedMessage:  "Failed to add donor",
	}

	Recipient = Kind{
		Name:       "Recipient",
		Path:       "recipients",
		Collection: "recipients",
		Plural:     "recipients",
		KeyField:   "Recipient_ID",
		Fields: []Field{
			{Name: "Recipient_ID"},
			{Name: "Name"},
			{Name: "Contact"},
			{Name: "Age", Type: FieldNumber},
			{Name: "Blood_Type"},
			{Name: "Card_ID"},
		},
		CreatedMessage: "Recipient added successfully",
		FailedMessage:  "Failed to add recipient",
	}

	DonorTransaction = Kind{
		Name:       "DonorTransaction",
		Path:       "donor-transactions",
		Collection: "donortransactions",
		Plural:     "donor transactions",
		KeyField:   "Transaction_ID",
		Fields: []Field{
			{Name: "Transaction_ID"},
			{Name: "Donor_ID"},
			{Name: "Hospital_ID"},
			{Name: "Date"},
			{Name: "Confirmation_Code"},
			{Name: "Health_Status"},
		},
		CreatedMessage: "Donor transaction saved",
		FailedMessage:  "Failed to save donor transaction",
	}

	RecipientTransaction = Kind{
		Name:       "RecipientTransaction",
		Path:       "recipient-transactions",
		Collection: "recipienttransactions",
		Plural:     "recipient transactions",
		KeyField:   "Transaction_ID",
		Fields: []Field{
			{Name: "Transaction_ID"},
			{Name: "Recipient_ID"},
			{Name: "Hospital_ID"},
			{Name: "Date"},
			{Name: "Blood_Type"},
		},
		CreatedMessage: "Recipient transaction saved",
		FailedMessage:  "Failed to save recipient transaction",
	}
)

var kinds = []Kind{BloodType, Hospital, Donor, Recipient, DonorTransaction, RecipientTransaction}

// Kinds returns every registered record kind.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// KindByPath looks up a kind by its URL segment, e.g. "donor-transactions".
func KindByPath(path string) (Kind, error) {
	for _, k := range kinds {
		if k.Path == path {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("%w: %q", ErrUnknownKind, path)
}

// KindByName looks up a kind by name or path, ignoring case, dashes and
// underscores: "DonorTransaction", "donor-transactions" and
// "donor_transaction" all resolve.
func KindByName(name string) (Kind, error) {
	want := normalizeKindName(name)
	for _, k := range kinds {
		if normalizeKindName(k.Name) == want ||
			normalizeKindName(k.Path) == want ||
			normalizeKindName(k.Collection) == want ||
			normalizeKindName(k.Name)+"s" == want {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func normalizeKindName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// Field returns the schema field with the given name.
func (k Kind) Field(name string) (Field, bool) {
	for _, f := range k.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the schema field names in schema order.
func (k Kind) FieldNames() []string {
	names := make([]string, len(k.Fields))
	for i, f := range k.Fields {
		names[i] = f.Name
	}
	return names
}

// Cast applies the kind's schema typing to an untyped field mapping. Fields
// outside the schema, including a caller-supplied IDField, are dropped and
// fields that are absent stay absent. A value that cannot be cast yields an
// error wrapping ErrCast.
func (k Kind) Cast(fields map[string]interface{}) (Document, error) {
	doc := make(Document, len(k.Fields))
	for _, f := range k.Fields {
		raw, ok := fields[f.Name]
		if !ok {
			continue
		}
		v, err := f.Type.cast(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", ErrCast, k.Name, f.Name, err)
		}
		doc[f.Name] = v
	}
	return doc, nil
}

func (t FieldType) cast(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch t {
	case FieldNumber:
		return castNumber(v)
	default:
		return castString(v)
	}
}

func castString(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return nil, fmt.Errorf("cannot cast %T to string", v)
	}
}

// parseNumber reads decimal and exponent forms plus unsigned 0x, 0o and 0b
// integer literals. Underscore separators are not accepted.
func parseNumber(s string) (float64, error) {
	if strings.Contains(s, "_") {
		return 0, strconv.ErrSyntax
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, err
			}
			return float64(u), nil
		}
	}
	return strconv.ParseFloat(s, 64)
}

func castNumber(v interface{}) (interface{}, error) {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case float32:
		n = float64(val)
	case int:
		n = float64(val)
	case int64:
		n = float64(val)
	case bool:
		if val {
			n = 1
		}
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, nil
		}
		parsed, err := parseNumber(s)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to number", val)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("cannot cast %T to number", v)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("cannot cast %v to number", v)
	}
	return n, nil
}
