package storage

import (
	"context"
	"time"

	apperrors "github.com/K1mc4n/GoClip/internal/errors"
)

// Adapter turns a local file into a durable content-addressed URL
type Adapter struct {
	uploader      Uploader
	gatewayDomain string
	logger        Logger
}

// NewAdapter creates a new storage upload adapter
func NewAdapter(uploader Uploader, gatewayDomain string, logger Logger) *Adapter {
	if gatewayDomain == "" {
		gatewayDomain = DefaultGatewayDomain
	}
	return &Adapter{
		uploader:      uploader,
		gatewayDomain: gatewayDomain,
		logger:        logger,
	}
}

// Upload sends obj to the provider once and returns its gateway URL.
// Empty or oversized payloads are the caller's concern.
func (a *Adapter) Upload(ctx context.Context, obj Object) (string, error) {
	start := time.Now()

	cid, err := a.uploader.Put(ctx, obj)
	if err != nil {
		return "", apperrors.NewStorageError("failed to upload clip", err)
	}

	clipURL := ClipURL(cid, a.gatewayDomain, obj.Name)
	a.logger.LogInfo("Clip uploaded", map[string]interface{}{
		"file_name":  obj.Name,
		"file_size":  obj.Size,
		"cid":        cid,
		"url":        clipURL,
		"latency_ms": time.Since(start).Milliseconds(),
	})
	return clipURL, nil
}

// GatewayDomain returns the domain used to build clip URLs
func (a *Adapter) GatewayDomain() string {
	return a.gatewayDomain
}

// Close releases the underlying provider
func (a *Adapter) Close() error {
	return a.uploader.Close()
}
