package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.Kind
		form     map[string]string
		expected domain.Document
	}{
		{
			name:     "numeric age",
			kind:     domain.Donor,
			form:     map[string]string{"Donor_ID": "D1", "Age": "42"},
			expected: domain.Document{"Donor_ID": "D1", "Age": float64(42)},
		},
		{
			name:     "numeric-looking id stays a string",
			kind:     domain.Donor,
			form:     map[string]string{"Donor_ID": "007"},
			expected: domain.Document{"Donor_ID": "007"},
		},
		{
			name:     "unparseable age passed through",
			kind:     domain.Recipient,
			form:     map[string]string{"Age": "forty"},
			expected: domain.Document{"Age": "forty"},
		},
		{
			name:     "empty values sent as empty strings",
			kind:     domain.Hospital,
			form:     map[string]string{"Hospital_ID": "H1", "Name": "", "Address": "  "},
			expected: domain.Document{"Hospital_ID": "H1", "Name": "", "Address": "  "},
		},
		{
			name:     "empty age left for the server",
			kind:     domain.Donor,
			form:     map[string]string{"Donor_ID": "D1", "Age": ""},
			expected: domain.Document{"Donor_ID": "D1", "Age": ""},
		},
		{
			name:     "padded age parsed",
			kind:     domain.Donor,
			form:     map[string]string{"Age": " 27 "},
			expected: domain.Document{"Age": float64(27)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Coerce(tt.kind, tt.form))
		})
	}
}

func TestParseAssignments(t *testing.T) {
	form, err := ParseAssignments([]string{"Name=O+", "Blood_Type_ID=BT1", "Note=a=b", "Empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Name":          "O+",
		"Blood_Type_ID": "BT1",
		"Note":          "a=b",
		"Empty":         "",
	}, form)

	for _, bad := range []string{"Name", "=value"} {
		_, err := ParseAssignments([]string{bad})
		var assignErr *AssignmentError
		assert.ErrorAs(t, err, &assignErr, bad)
	}
}
