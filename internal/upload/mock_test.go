package upload

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/K1mc4n/GoClip/internal/storage"
	"github.com/K1mc4n/GoClip/internal/upload/tempfile"
	"github.com/K1mc4n/GoClip/testhelper"
)

// mockUploader records each upload with the bytes it received
type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, obj storage.Object) (string, error) {
	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", err
	}
	args := m.Called(obj.Name, string(body))
	return args.String(0), args.Error(1)
}

type fixture struct {
	uploader *mockUploader
	store    *MemoryStore
	staging  *tempfile.Manager
	logger   *testhelper.TestLogger
	service  *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := testhelper.NewTestLogger(false)
	staging, err := tempfile.NewManager(&tempfile.Config{BaseDir: filepath.Join(t.TempDir(), "staging")}, log)
	require.NoError(t, err)

	f := &fixture{
		uploader: &mockUploader{},
		store:    NewMemoryStore(time.Hour),
		staging:  staging,
		logger:   log,
	}
	f.service = NewService(f.uploader, f.store, staging, log)
	return f
}
