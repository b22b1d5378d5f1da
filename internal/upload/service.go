package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	apperrors "github.com/K1mc4n/GoClip/internal/errors"
	"github.com/K1mc4n/GoClip/internal/logger"
	"github.com/K1mc4n/GoClip/internal/storage"
	"github.com/K1mc4n/GoClip/internal/upload/tempfile"
)

// Uploader is the storage adapter as seen by the upload form
type Uploader interface {
	Upload(ctx context.Context, obj storage.Object) (string, error)
}

// Service drives the upload state machine of each session
type Service struct {
	uploader Uploader
	store    SessionStore
	staging  tempfile.TempFileManager
	logger   logger.Logger
	locks    *sessionLocks
}

// NewService creates a new upload service
func NewService(uploader Uploader, store SessionStore, staging tempfile.TempFileManager, logger logger.Logger) *Service {
	return &Service{
		uploader: uploader,
		store:    store,
		staging:  staging,
		logger:   logger,
		locks:    newSessionLocks(),
	}
}

// State returns the current state of a session
func (s *Service) State(ctx context.Context, sessionID string) (State, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.State, nil
}

// Select stages body as the session's file. Any earlier file and result are dropped.
func (s *Service) Select(ctx context.Context, sessionID, name, contentType string, body io.Reader) (State, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	path, size, err := s.staging.Stage(name, body)
	if err != nil {
		return nil, s.logger.LogErrorf(err, "Failed to stage file: session=%s", sessionID)
	}

	previous := session.State
	session.State = FileSelected{File: File{
		Name:        name,
		Size:        size,
		ContentType: contentType,
		Path:        path,
	}}
	if err := s.save(ctx, session); err != nil {
		s.discard(session.State)
		return nil, err
	}
	s.discard(previous)

	s.logger.LogInfo("File selected", map[string]interface{}{
		"sessionID": sessionID,
		"file_name": name,
		"file_size": size,
	})
	return session.State, nil
}

// Upload sends the session's file to storage. Every call uploads again,
// including from the Uploaded and Failed states. Other operations on the
// same session wait until the upload finishes.
func (s *Service) Upload(ctx context.Context, sessionID string) (State, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	file, ok := FileOf(session.State)
	if !ok {
		return session.State, apperrors.ErrNoFileSelected
	}

	url, uploadErr := s.uploadStaged(ctx, file)
	if uploadErr != nil {
		s.logger.LogError(uploadErr, fmt.Sprintf("Upload failed: session=%s file=%s", sessionID, file.Name))
		session.State = Failed{File: file, Reason: uploadErr.Error()}
	} else {
		session.State = Uploaded{File: file, URL: url}
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session.State, uploadErr
}

// Reset drops the staged file and returns the session to Idle
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	s.discard(session.State)
	return s.store.Delete(ctx, sessionID)
}

// UploadFile sends body straight to storage without touching any session
func (s *Service) UploadFile(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error) {
	url, err := s.uploader.Upload(ctx, storage.Object{
		Name:        name,
		Size:        size,
		ContentType: contentType,
		Body:        body,
	})
	if err != nil {
		return "", s.logger.LogErrorf(err, "Upload failed: file=%s", name)
	}
	return url, nil
}

// Release removes the staged file of a session that is gone
func (s *Service) Release(session *Session) {
	s.discard(session.State)
	s.logger.LogDebug("Released expired session", map[string]interface{}{
		"sessionID": session.ID,
	})
}

// RunCleanup sweeps expired sessions and staged files idle for longer
// than maxIdle every interval, until ctx is done
func (s *Service) RunCleanup(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup(ctx, maxIdle)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) cleanup(ctx context.Context, maxIdle time.Duration) {
	if sweeper, ok := s.store.(Sweeper); ok {
		if n := sweeper.Sweep(ctx); n > 0 {
			s.logger.LogInfo("Expired upload sessions", map[string]interface{}{
				"count": n,
			})
		}
	}
	if _, err := s.staging.RemoveIdle(maxIdle); err != nil {
		s.logger.LogError(err, "Failed to remove idle staged files")
	}
}

// save stores the session and marks its staged file as in use
func (s *Service) save(ctx context.Context, session *Session) error {
	if err := s.store.Save(ctx, session); err != nil {
		return err
	}
	if file, ok := FileOf(session.State); ok {
		s.staging.Touch(file.Path)
	}
	return nil
}

func (s *Service) uploadStaged(ctx context.Context, file File) (string, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return "", apperrors.NewStorageError("staged file is no longer available", err)
	}
	defer f.Close()

	return s.uploader.Upload(ctx, storage.Object{
		Name:        file.Name,
		Size:        file.Size,
		ContentType: file.ContentType,
		Body:        f,
	})
}

func (s *Service) discard(state State) {
	file, ok := FileOf(state)
	if !ok || !s.staging.IsManaged(file.Path) {
		return
	}
	if err := s.staging.Remove(file.Path); err != nil {
		s.logger.LogWarn("Failed to remove staged file", map[string]interface{}{
			"path":  file.Path,
			"error": err.Error(),
		})
	}
}
