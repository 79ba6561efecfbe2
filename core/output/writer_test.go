package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameFor(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"https://example.com", "example_com"},
		{"https://example.com/docs/intro/", "example_com_docs_intro"},
		{"https://example.com:8080/a-b", "example_com_8080_a_b"},
		{"pages/my page.html", "my_page"},
		{"/tmp/index.htm", "index"},
		{"-", "stdin"},
		{"", "stdin"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, NameFor(tt.source))
		})
	}
}

func TestWriter_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir, nil)
	require.NoError(t, err)

	path, err := w.Write("example_com", []byte("# hi\n"), ".md", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "example_com.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(data))
}

func TestWriter_Stdout(t *testing.T) {
	var out bytes.Buffer
	w, err := New("", &out)
	require.NoError(t, err)

	path, err := w.Write("ignored", []byte("text"), ".md", false)
	require.NoError(t, err)
	assert.Equal(t, "-", path)
	assert.Equal(t, "text", out.String())
}

func TestWriter_BinaryWithoutDirUsesWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var out bytes.Buffer
	w, err := New("", &out)
	require.NoError(t, err)

	path, err := w.Write("doc", []byte("%PDF"), ".pdf", true)
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.FileExists(t, path)
	assert.Equal(t, "doc.pdf", filepath.Base(path))
}
