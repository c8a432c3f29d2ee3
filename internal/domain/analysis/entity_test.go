package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		raw     string
		want    Type
		wantErr bool
	}{
		{"", TypeComprehensive, false},
		{"comprehensive", TypeComprehensive, false},
		{"medical", TypeMedical, false},
		{"nutrition", TypeNutrition, false},
		{"exercise", TypeExercise, false},
		{"verification", TypeVerification, false},
		{"surgery", "", true},
		{"Medical", "", true},
		{"comprehensive ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseType(tt.raw)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "analysis_type", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidTypesCoversEnum(t *testing.T) {
	assert.Len(t, ValidTypes(), 5)
	for _, v := range ValidTypes() {
		got, err := ParseType(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
