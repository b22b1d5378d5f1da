package tempfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/K1mc4n/GoClip/internal/logger"
)

const fallbackName = "upload"

// Manager handles staged upload files
type Manager struct {
	baseDir     string
	activeDirs  map[string]time.Time // last use of each staged directory
	logger      logger.Logger
	now         func() time.Time
	mu          sync.RWMutex
	permissions os.FileMode
}

// Config represents the configuration for the temporary file manager
type Config struct {
	BaseDir     string      // Base directory for staged files
	Permissions os.FileMode // File permissions for created directories
}

// NewManager creates a new temporary file manager
func NewManager(config *Config, logger logger.Logger) (*Manager, error) {
	permissions := config.Permissions
	if permissions == 0 {
		permissions = 0o700
	}

	if err := os.MkdirAll(config.BaseDir, permissions); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Manager{
		baseDir:     config.BaseDir,
		activeDirs:  make(map[string]time.Time),
		logger:      logger,
		now:         time.Now,
		permissions: permissions,
	}, nil
}

// Stage copies r into a new directory named after a uuid. The file keeps
// the base of name so providers that read the name from disk see the original.
func (m *Manager) Stage(name string, r io.Reader) (string, int64, error) {
	dirPath := filepath.Join(m.baseDir, uuid.New().String())
	if err := os.MkdirAll(dirPath, m.permissions); err != nil {
		m.logger.LogError(err, fmt.Sprintf("Failed to create staging directory: path=%s", dirPath))
		return "", 0, fmt.Errorf("failed to create staging directory: %w", err)
	}

	m.mu.Lock()
	m.activeDirs[dirPath] = m.now()
	m.mu.Unlock()

	filePath := filepath.Join(dirPath, safeName(name))
	size, err := writeFile(filePath, r)
	if err != nil {
		m.removeDir(dirPath)
		return "", 0, fmt.Errorf("failed to stage file: %w", err)
	}

	m.logger.LogDebug("Staged file", map[string]interface{}{
		"path": filePath,
		"size": size,
	})
	return filePath, size, nil
}

// Remove deletes a staged file and its directory
func (m *Manager) Remove(path string) error {
	dirPath := filepath.Dir(path)
	if !m.IsManaged(path) {
		return fmt.Errorf("not a managed staged file: %s", path)
	}
	return m.removeDir(dirPath)
}

// CleanupAll removes all managed directories
func (m *Manager) CleanupAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for dirPath := range m.activeDirs {
		if err := os.RemoveAll(dirPath); err != nil {
			m.logger.LogError(err, fmt.Sprintf("Failed to cleanup staging directory: path=%s", dirPath))
			lastErr = err
		} else {
			delete(m.activeDirs, dirPath)
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to cleanup all staging directories: %w", lastErr)
	}

	m.logger.LogInfo("Cleaned up all staging directories", nil)
	return nil
}

// IsManaged checks if a staged file is managed by this manager
func (m *Manager) IsManaged(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.activeDirs[filepath.Dir(path)]
	return ok
}

// Touch marks a staged file as in use, postponing its idle removal
func (m *Manager) Touch(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dirPath := filepath.Dir(path)
	if _, ok := m.activeDirs[dirPath]; ok {
		m.activeDirs[dirPath] = m.now()
	}
}

// RemoveIdle removes staged files that were not touched within maxIdle
// and returns how many were removed
func (m *Manager) RemoveIdle(maxIdle time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	removed := 0
	var lastErr error
	for dirPath, lastUsed := range m.activeDirs {
		if lastUsed.After(cutoff) {
			continue
		}
		if err := os.RemoveAll(dirPath); err != nil {
			m.logger.LogError(err, fmt.Sprintf("Failed to remove idle staging directory: path=%s", dirPath))
			lastErr = err
			continue
		}
		delete(m.activeDirs, dirPath)
		removed++
	}

	if removed > 0 {
		m.logger.LogInfo("Removed idle staging directories", map[string]interface{}{
			"count": removed,
		})
	}
	return removed, lastErr
}

func (m *Manager) removeDir(dirPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.RemoveAll(dirPath); err != nil {
		m.logger.LogError(err, fmt.Sprintf("Failed to cleanup staging directory: path=%s", dirPath))
		return fmt.Errorf("failed to cleanup staging directory: %w", err)
	}
	delete(m.activeDirs, dirPath)
	return nil
}

func writeFile(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return 0, err
	}

	size, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return size, err
}

// safeName strips directories from a client supplied file name
func safeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == ".." || base == "" {
		return fallbackName
	}
	return base
}
