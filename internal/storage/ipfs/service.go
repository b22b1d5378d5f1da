package ipfs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/K1mc4n/GoClip/internal/storage"
)

// Service implements storage.Uploader against an IPFS HTTP RPC endpoint,
// either a local node or a pinning service exposing /api/v0/add
type Service struct {
	shell  *shell.Shell
	logger storage.Logger
}

// addEntry is one line of the streamed /api/v0/add response
type addEntry struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
}

// NewService creates a new IPFS service instance
func NewService(cfg *storage.IPFSConfig, logger storage.Logger) *Service {
	client := &http.Client{
		Transport: &bearerTransport{token: cfg.Token, base: http.DefaultTransport},
	}
	return &Service{
		shell:  shell.NewShellWithClient(cfg.APIAddress, client),
		logger: logger,
	}
}

// Put adds obj wrapped in a directory, pins it and returns the directory CID
func (s *Service) Put(ctx context.Context, obj storage.Object) (string, error) {
	body, contentType := multipartBody(obj)
	defer body.Close()

	resp, err := s.shell.Request("add").
		Option("wrap-with-directory", true).
		Option("pin", true).
		Option("cid-version", 1).
		Header("Content-Type", contentType).
		Body(body).
		Send(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to upload to IPFS: %w", err)
	}
	defer resp.Close()

	if resp.Error != nil {
		return "", fmt.Errorf("failed to upload to IPFS: %w", resp.Error)
	}

	// The wrapping directory is the entry with an empty name
	var root string
	dec := json.NewDecoder(resp.Output)
	for {
		var entry addEntry
		if err := dec.Decode(&entry); err == io.EOF {
			break
		} else if err != nil {
			return "", fmt.Errorf("failed to decode IPFS add response: %w", err)
		}
		if entry.Name == "" {
			root = entry.Hash
		}
	}

	if root == "" {
		return "", fmt.Errorf("IPFS add response has no directory entry")
	}
	return root, nil
}

// Close closes any open IPFS connections and resources
func (s *Service) Close() error {
	// The shell does not keep long-lived connections
	return nil
}

// multipartBody streams obj as the single "file" part of a form
func multipartBody(obj storage.Object) (*io.PipeReader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, url.QueryEscape(obj.Name)))
		header.Set("Content-Type", "application/octet-stream")

		part, err := mw.CreatePart(header)
		if err == nil {
			_, err = io.Copy(part, obj.Body)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	return pr, mw.FormDataContentType()
}

// bearerTransport adds the pinning service token to every request
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(req)
}
