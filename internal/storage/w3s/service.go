package w3s

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/ipfs/go-cid"
	w3sclient "github.com/web3-storage/go-w3s-client"

	apperrors "github.com/K1mc4n/GoClip/internal/errors"
	"github.com/K1mc4n/GoClip/internal/storage"
)

// putter is the part of the web3.storage client the service uses
type putter interface {
	Put(ctx context.Context, file fs.File, options ...w3sclient.PutOption) (cid.Cid, error)
}

// Service implements storage.Uploader on top of web3.storage
type Service struct {
	client putter
	logger storage.Logger
}

// NewService creates a new web3.storage service instance.
// Without a token the service is still created and every Put fails
// with ErrMissingCredential.
func NewService(cfg *storage.W3SConfig, logger storage.Logger) (*Service, error) {
	if cfg.Token == "" {
		logger.LogInfo("web3.storage token is not configured, uploads will fail", nil)
		return &Service{logger: logger}, nil
	}

	options := []w3sclient.Option{w3sclient.WithToken(cfg.Token)}
	if cfg.Endpoint != "" {
		options = append(options, w3sclient.WithEndpoint(cfg.Endpoint))
	}

	client, err := w3sclient.NewClient(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create web3.storage client: %v", err)
	}

	return newService(client, logger), nil
}

func newService(client putter, logger storage.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Put uploads obj wrapped in a directory and returns the directory CID
func (s *Service) Put(ctx context.Context, obj storage.Object) (string, error) {
	if s.client == nil {
		return "", apperrors.ErrMissingCredential
	}

	root, err := s.client.Put(ctx, newFile(obj))
	if err != nil {
		return "", fmt.Errorf("failed to upload to web3.storage: %w", err)
	}
	return root.String(), nil
}

// Close is a no-op, the client keeps no long-lived connections
func (s *Service) Close() error {
	return nil
}
