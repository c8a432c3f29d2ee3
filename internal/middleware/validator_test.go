package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUploadFilename(t *testing.T) {
	valid := []string{"report.pdf", "Blood Test 2025.PDF", "a.pdf"}
	for _, name := range valid {
		assert.NoError(t, ValidateUploadFilename(name), name)
	}

	invalid := []string{
		"",
		"   ",
		"report.txt",
		"report",
		"../report.pdf",
		"dir/report.pdf",
		`dir\report.pdf`,
		"report..pdf",
	}
	for _, name := range invalid {
		assert.Error(t, ValidateUploadFilename(name), name)
	}
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery("Summarise my blood test"))
	assert.Error(t, ValidateQuery(""))
	assert.Error(t, ValidateQuery("   \t\n"))
}

func TestValidateUserUUID(t *testing.T) {
	assert.NoError(t, ValidateUserUUID(""), "optional field")
	assert.NoError(t, ValidateUserUUID("6f1e0f33-8b6e-4d05-8f2e-cf2a87a3a111"))
	assert.NoError(t, ValidateUserUUID("6F1E0F33-8B6E-4D05-8F2E-CF2A87A3A111"))

	assert.Error(t, ValidateUserUUID("not-a-uuid"))
	assert.Error(t, ValidateUserUUID("6f1e0f33-8b6e-4d05-8f2e"))
	assert.Error(t, ValidateUserUUID("6f1e0f33-8b6e-4d05-8f2e-cf2a87a3a111x"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "hello", SanitizeString("he\x00llo"))
	assert.Equal(t, "line1\nline2", SanitizeString("line1\nline2"))
	assert.Equal(t, "ab", SanitizeString("a\x01\x02b"))
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 10, ValidateLimit(0))
	assert.Equal(t, 10, ValidateLimit(-5))
	assert.Equal(t, 25, ValidateLimit(25))
	assert.Equal(t, 50, ValidateLimit(200))
}
