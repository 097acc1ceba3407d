package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds_Registry(t *testing.T) {
	all := Kinds()
	require.Len(t, all, 6)

	paths := make(map[string]bool)
	collections := make(map[string]bool)
	for _, k := range all {
		assert.False(t, paths[k.Path], "duplicate path %s", k.Path)
		assert.False(t, collections[k.Collection], "duplicate collection %s", k.Collection)
		paths[k.Path] = true
		collections[k.Collection] = true

		require.NotEmpty(t, k.Fields)
		assert.Equal(t, k.KeyField, k.Fields[0].Name, "key field must come first for %s", k.Name)
		assert.NotEmpty(t, k.CreatedMessage)
		assert.NotEmpty(t, k.FailedMessage)
	}

	// Mutating the returned slice must not affect the registry
	all[0].Path = "changed"
	assert.Equal(t, "blood-types", Kinds()[0].Path)
}

func TestKindByPath(t *testing.T) {
	k, err := KindByPath("donor-transactions")
	require.NoError(t, err)
	assert.Equal(t, "DonorTransaction", k.Name)

	_, err = KindByPath("patients")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestKindByName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Donor", "Donor"},
		{"donors", "Donor"},
		{"blood-types", "BloodType"},
		{"BloodType", "BloodType"},
		{"blood_type", "BloodType"},
		{"recipient-transactions", "RecipientTransaction"},
		{"RecipientTransaction", "RecipientTransaction"},
		{" hospital ", "Hospital"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k, err := KindByName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, k.Name)
		})
	}

	_, err := KindByName("nurse")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKind_Cast(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		input    map[string]interface{}
		expected Document
		wantErr  bool
	}{
		{
			name:     "string fields kept verbatim",
			kind:     BloodType,
			input:    map[string]interface{}{"Blood_Type_ID": "BT1", "Name": "O+"},
			expected: Document{"Blood_Type_ID": "BT1", "Name": "O+"},
		},
		{
			name:     "empty name accepted",
			kind:     BloodType,
			input:    map[string]interface{}{"Blood_Type_ID": "BT2", "Name": ""},
			expected: Document{"Blood_Type_ID": "BT2", "Name": ""},
		},
		{
			name:     "unknown fields and caller id dropped",
			kind:     BloodType,
			input:    map[string]interface{}{"Blood_Type_ID": "BT3", "Rh": "+", "_id": "abc"},
			expected: Document{"Blood_Type_ID": "BT3"},
		},
		{
			name:     "numeric age string cast to number",
			kind:     Donor,
			input:    map[string]interface{}{"Donor_ID": "D1", "Age": " 42 "},
			expected: Document{"Donor_ID": "D1", "Age": float64(42)},
		},
		{
			name:     "number into string field formatted",
			kind:     Donor,
			input:    map[string]interface{}{"Donor_ID": float64(7), "Contact": float64(5551234)},
			expected: Document{"Donor_ID": "7", "Contact": "5551234"},
		},
		{
			name:     "empty age becomes null",
			kind:     Recipient,
			input:    map[string]interface{}{"Recipient_ID": "R1", "Age": ""},
			expected: Document{"Recipient_ID": "R1", "Age": nil},
		},
		{
			name:     "null kept",
			kind:     Hospital,
			input:    map[string]interface{}{"Hospital_ID": "H1", "Address": nil},
			expected: Document{"Hospital_ID": "H1", "Address": nil},
		},
		{
			name:     "bool into number",
			kind:     Donor,
			input:    map[string]interface{}{"Age": true},
			expected: Document{"Age": float64(1)},
		},
		{
			name:     "hex age",
			kind:     Donor,
			input:    map[string]interface{}{"Age": "0x1A"},
			expected: Document{"Age": float64(26)},
		},
		{
			name:     "binary and octal ages",
			kind:     Recipient,
			input:    map[string]interface{}{"Age": "0b101", "Recipient_ID": "R9"},
			expected: Document{"Age": float64(5), "Recipient_ID": "R9"},
		},
		{
			name:     "leading zero is decimal",
			kind:     Donor,
			input:    map[string]interface{}{"Age": "017"},
			expected: Document{"Age": float64(17)},
		},
		{
			name:     "exponent form",
			kind:     Donor,
			input:    map[string]interface{}{"Age": "4.2e1"},
			expected: Document{"Age": float64(42)},
		},
		{
			name:    "signed hex rejected",
			kind:    Donor,
			input:   map[string]interface{}{"Age": "-0x1A"},
			wantErr: true,
		},
		{
			name:    "underscore separators rejected",
			kind:    Donor,
			input:   map[string]interface{}{"Age": "1_000"},
			wantErr: true,
		},
		{
			name:    "infinity rejected",
			kind:    Donor,
			input:   map[string]interface{}{"Age": "Infinity"},
			wantErr: true,
		},
		{
			name:    "non-numeric age rejected",
			kind:    Donor,
			input:   map[string]interface{}{"Donor_ID": "D2", "Age": "forty"},
			wantErr: true,
		},
		{
			name:    "NaN age rejected",
			kind:    Donor,
			input:   map[string]interface{}{"Age": "NaN"},
			wantErr: true,
		},
		{
			name:    "object into string field rejected",
			kind:    Hospital,
			input:   map[string]interface{}{"Name": map[string]interface{}{"first": "St"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := tt.kind.Cast(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCast)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc)
		})
	}
}

func TestCollection_Order(t *testing.T) {
	c := NewCollection("donors")
	c.Add("b", Document{"n": 1})
	c.Add("a", Document{"n": 2})
	c.Add("c", Document{"n": 3})
	c.Add("a", Document{"n": 4}) // replace keeps position

	docs := c.All()
	require.Len(t, docs, 3)
	assert.Equal(t, 1, docs[0]["n"])
	assert.Equal(t, 4, docs[1]["n"])
	assert.Equal(t, 3, docs[2]["n"])

	c.Remove("a")
	assert.Equal(t, []string{"b", "c"}, c.Order)

	// Copies are returned
	docs = c.All()
	docs[0]["n"] = 99
	assert.Equal(t, 1, c.Documents["b"]["n"])
}
