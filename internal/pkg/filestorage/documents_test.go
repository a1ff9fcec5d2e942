package filestorage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestStore(t *testing.T, clock *fakeClock) (*DocumentStore, string) {
	t.Helper()
	root := t.TempDir()
	local, err := NewLocalStorage(root, "http://localhost:8080/media")
	require.NoError(t, err)
	return NewDocumentStore(local, zerolog.Nop(), WithClock(clock.Now)), root
}

func TestStoreReader_PartitionsByUploadDate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)}
	store, root := newTestStore(t, clock)
	ctx := context.Background()

	first, err := store.StoreReader(ctx, models.DocumentIDCopy, "id.pdf", strings.NewReader("one"))
	require.NoError(t, err)
	assert.Equal(t, "applications/id/id_documents/2024/03/09/id.pdf", first)

	clock.t = clock.t.Add(2 * time.Minute)
	second, err := store.StoreReader(ctx, models.DocumentIDCopy, "id.pdf", strings.NewReader("two"))
	require.NoError(t, err)
	assert.Equal(t, "applications/id/id_documents/2024/03/10/id.pdf", second)

	for _, p := range []string{first, second} {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(p)))
		assert.NoError(t, err)
	}
}

func TestStoreReader_AdditionalDocsShareFolder(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)}
	store, _ := newTestStore(t, clock)

	p, err := store.StoreReader(context.Background(), models.DocumentAdditional2, "letter.docx", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "applications/additional/additional_docs/2025/01/02/letter.docx", p)
}

func TestStoreReader_CollisionGetsSuffix(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
	store, _ := newTestStore(t, clock)
	ctx := context.Background()

	first, err := store.StoreReader(ctx, models.DocumentMatric, "matric.png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.StoreReader(ctx, models.DocumentMatric, "matric.png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second, "applications/matric/matric_certificates/2025/06/01/matric_"))
	assert.True(t, strings.HasSuffix(second, ".png"))

	rc, err := store.Open(ctx, first)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "a", string(body))
}

func TestStoreReader_RejectsDisallowedExtensionBeforeWriting(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
	store, root := newTestStore(t, clock)

	_, err := store.StoreReader(context.Background(), models.DocumentProofOfPayment, "pop.exe", strings.NewReader("MZ"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFileType))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidate_DocExtensionsOnlyForAdditional(t *testing.T) {
	store, _ := newTestStore(t, &fakeClock{t: time.Now()})

	assert.NoError(t, store.Validate(models.DocumentAdditional1, "cv.DOC"))
	assert.Error(t, store.Validate(models.DocumentIDCopy, "id.doc"))
	assert.Error(t, store.Validate(models.DocumentIDCopy, "noextension"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "my_id.pdf", SanitizeFilename(`C:\Users\me\my id.pdf`))
	assert.Equal(t, "file", SanitizeFilename(".."))
}

func TestStatAndDelete(t *testing.T) {
	store, _ := newTestStore(t, &fakeClock{t: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	p, err := store.StoreReader(ctx, models.DocumentIDCopy, "id.jpg", strings.NewReader("12345"))
	require.NoError(t, err)

	info, err := store.Stat(ctx, p)
	require.NoError(t, err)
	assert.EqualValues(t, 5, info.Size)
	assert.False(t, info.ModTime.IsZero())
	assert.Equal(t, "http://localhost:8080/media/"+p, store.URL(p))

	require.NoError(t, store.Delete(ctx, p))
	_, err = store.Stat(ctx, p)
	assert.True(t, IsNotFound(err))
	assert.NoError(t, store.Delete(ctx, p))
}

func TestCleanPath(t *testing.T) {
	cases := map[string]bool{
		"applications/id/x.pdf":    true,
		"./news/a.png":             true,
		"../secret":                false,
		"applications/../../etc":   false,
		"/etc/passwd":              false,
		"":                         false,
		`applications\..\..\x.pdf`: false,
	}
	for in, ok := range cases {
		_, err := CleanPath(in)
		if ok {
			assert.NoError(t, err, in)
		} else {
			assert.ErrorIs(t, err, ErrInvalidPath, in)
		}
	}
}
