package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvenkat9889/latish-Offboarding-Module/internal/models"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	store, err := NewFileStore(filepath.Join(t.TempDir(), "uploads"), filepath.Join(t.TempDir(), "staging"), logger)
	require.NoError(t, err)
	return store
}

func makeFileHeader(t *testing.T, name, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="projectDocs"; filename="%s"`, name))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	headers := form.File["projectDocs"]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestStage(t *testing.T) {
	store := newTestFileStore(t)

	t.Run("Copies Content Into Staging", func(t *testing.T) {
		header := makeFileHeader(t, "handover.pdf", "application/pdf", "pdf-bytes")

		doc, err := store.Stage(header)
		require.NoError(t, err)

		assert.Equal(t, "handover.pdf", doc.FileName)
		assert.Equal(t, "application/pdf", doc.ContentType)
		assert.Equal(t, int64(len("pdf-bytes")), doc.Size)

		staged, err := os.ReadFile(doc.StagedPath)
		require.NoError(t, err)
		assert.Equal(t, "pdf-bytes", string(staged))

		assert.Equal(t, store.uploadDir, filepath.Dir(doc.FinalPath))
		assert.True(t, strings.HasSuffix(doc.FinalPath, "-handover.pdf"))
	})

	t.Run("Strips Path Components From Name", func(t *testing.T) {
		header := makeFileHeader(t, "../../etc/notes.txt", "text/plain", "text")

		doc, err := store.Stage(header)
		require.NoError(t, err)
		assert.Equal(t, "notes.txt", doc.FileName)
	})
}

func TestPromote(t *testing.T) {
	store := newTestFileStore(t)

	header := makeFileHeader(t, "handover.pdf", "application/pdf", "pdf-bytes")
	doc, err := store.Stage(header)
	require.NoError(t, err)

	store.Promote([]models.DocumentUpload{doc})

	_, err = os.Stat(doc.StagedPath)
	assert.True(t, os.IsNotExist(err), "staged blob should be gone after promote")

	promoted, err := os.ReadFile(doc.FinalPath)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(promoted))
}

func TestDiscard(t *testing.T) {
	store := newTestFileStore(t)

	header := makeFileHeader(t, "handover.pdf", "application/pdf", "pdf-bytes")
	doc, err := store.Stage(header)
	require.NoError(t, err)

	store.Discard([]models.DocumentUpload{doc})

	_, err = os.Stat(doc.StagedPath)
	assert.True(t, os.IsNotExist(err), "staged blob should be gone after discard")

	// Discarding again must not panic or log spuriously
	store.Discard([]models.DocumentUpload{doc})
}

func TestRemove(t *testing.T) {
	store := newTestFileStore(t)

	t.Run("Removes Existing File", func(t *testing.T) {
		path := filepath.Join(store.uploadDir, "1756600000000-handover.pdf")
		require.NoError(t, os.WriteFile(path, []byte("pdf-bytes"), 0o644))

		store.Remove(path)

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Missing File Is Not An Error", func(t *testing.T) {
		store.Remove(filepath.Join(store.uploadDir, "never-existed.pdf"))
	})
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"handover.pdf", "handover.pdf"},
		{"  handover.pdf  ", "handover.pdf"},
		{"../../etc/passwd", "passwd"},
		{"dir/notes.txt", "notes.txt"},
		{"bad\x00name.txt", "badname.txt"},
		{"", "document.bin"},
		{".", "document.bin"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeFileName(tt.input), "input %q", tt.input)
	}
}
