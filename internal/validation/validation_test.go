package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Comma Separated String",
			input:    `"go, rust , python"`,
			expected: []string{"go", "rust", "python"},
		},
		{
			name:     "Array",
			input:    `["go", " rust ", "python"]`,
			expected: []string{"go", "rust", "python"},
		},
		{
			name:     "Drops Empty Elements",
			input:    `"go,,  ,rust"`,
			expected: []string{"go", "rust"},
		},
		{
			name:     "Order Preserved",
			input:    `"zig, ada, c"`,
			expected: []string{"zig", "ada", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var skills SkillList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &skills))
			assert.Equal(t, tt.expected, []string(skills))
		})
	}
}

func TestSkillList_UnmarshalJSON_Invalid(t *testing.T) {
	var skills SkillList
	assert.Error(t, json.Unmarshal([]byte(`{"not": "skills"}`), &skills))
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &skills))
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name           string
		inputName      string
		email          string
		password       string
		expectedFields []string
	}{
		{
			name:      "Valid",
			inputName: "jane",
			email:     "jane@example.com",
			password:  "secret1",
		},
		{
			name:           "Missing Name",
			inputName:      "  ",
			email:          "jane@example.com",
			password:       "secret1",
			expectedFields: []string{"name"},
		},
		{
			name:           "Bad Email",
			inputName:      "jane",
			email:          "not-an-email",
			password:       "secret1",
			expectedFields: []string{"email"},
		},
		{
			name:           "Short Password",
			inputName:      "jane",
			email:          "jane@example.com",
			password:       "12345",
			expectedFields: []string{"password"},
		},
		{
			name:           "Everything Wrong",
			inputName:      "",
			email:          "nope",
			password:       "x",
			expectedFields: []string{"name", "email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ValidateRegistration(tt.inputName, tt.email, tt.password)
			var got []string
			for _, f := range fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.expectedFields, got)
		})
	}
}

func TestValidatePassword_Bounds(t *testing.T) {
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))

	long := make([]byte, 129)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidatePassword(string(long)))
}
