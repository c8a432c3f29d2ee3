package docload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/hemolab/internal/domain/analysis"
)

func TestLoadMissingFile(t *testing.T) {
	l := NewPDFLoader()
	_, err := l.Load(filepath.Join(t.TempDir(), "nope.pdf"))
	var derr *analysis.DocumentError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "file not found", derr.Reason)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := NewPDFLoader().Load(path)
	var derr *analysis.DocumentError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "file is empty", derr.Reason)
}

func TestLoadGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf at all"), 0o644))

	_, err := NewPDFLoader().Load(path)
	var derr *analysis.DocumentError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "not a readable PDF", derr.Reason)
}

func TestCollapseWhitespace(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"   \n\t ", ""},
		{"Hemoglobin  14.2\n g/dL", "Hemoglobin 14.2 g/dL"},
		{"one", "one"},
		{"\nCholesterol\t\t180\n\nmg/dL\n", "Cholesterol 180 mg/dL"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, collapseWhitespace(tc.in))
	}
}
