package w3s

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	w3sclient "github.com/web3-storage/go-w3s-client"

	apperrors "github.com/K1mc4n/GoClip/internal/errors"
	"github.com/K1mc4n/GoClip/internal/storage"
	"github.com/K1mc4n/GoClip/testhelper"
)

const rootCID = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"

type stubClient struct {
	root     cid.Cid
	err      error
	calls    int
	name     string
	size     int64
	contents string
}

func (s *stubClient) Put(_ context.Context, file fs.File, _ ...w3sclient.PutOption) (cid.Cid, error) {
	s.calls++
	info, err := file.Stat()
	if err != nil {
		return cid.Undef, err
	}
	s.name = info.Name()
	s.size = info.Size()
	data, err := io.ReadAll(file)
	if err != nil {
		return cid.Undef, err
	}
	s.contents = string(data)
	return s.root, s.err
}

func TestService_Put(t *testing.T) {
	root, err := cid.Decode(rootCID)
	require.NoError(t, err)

	client := &stubClient{root: root}
	svc := newService(client, testhelper.NewTestLogger(false))

	got, err := svc.Put(context.Background(), storage.Object{
		Name: "clip.mp4",
		Size: 10,
		Body: strings.NewReader("clip bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, rootCID, got)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "clip.mp4", client.name)
	assert.Equal(t, int64(10), client.size)
	assert.Equal(t, "clip bytes", client.contents)
}

func TestService_PutError(t *testing.T) {
	client := &stubClient{err: errors.New("401 unauthorized")}
	svc := newService(client, testhelper.NewTestLogger(false))

	_, err := svc.Put(context.Background(), storage.Object{Name: "clip.mp4", Body: strings.NewReader("x")})
	assert.ErrorContains(t, err, "401 unauthorized")
}

func TestNewService_MissingToken(t *testing.T) {
	logger := testhelper.NewTestLogger(false)

	svc, err := NewService(&storage.W3SConfig{}, logger)
	require.NoError(t, err)

	_, err = svc.Put(context.Background(), storage.Object{Name: "clip.mp4", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, apperrors.ErrMissingCredential)
	assert.Len(t, logger.GetInfoMessages(), 1)
}

func TestFile_Stat(t *testing.T) {
	f := newFile(storage.Object{Name: "a.mov", Size: 3, Body: strings.NewReader("abc")})

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "a.mov", info.Name())
	assert.Equal(t, int64(3), info.Size())
	assert.False(t, info.IsDir())
	assert.NoError(t, f.Close())
}
