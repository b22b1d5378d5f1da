package upload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/K1mc4n/GoClip/internal/cache"
)

const sessionKeyPrefix = "goclips:session:"

// SessionStore persists upload sessions between requests
type SessionStore interface {
	// Get returns the session, or an Idle one if it is unknown or expired
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// Sweeper is implemented by stores that expire sessions themselves
type Sweeper interface {
	// Sweep drops expired sessions and returns how many were dropped
	Sweep(ctx context.Context) int
}

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
	onExpire func(*Session)
}

// NewMemoryStore creates a store whose sessions expire after ttl without a save
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// OnExpire registers fn to run for every session the store expires.
// fn runs outside the store lock.
func (s *MemoryStore) OnExpire(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = fn
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return NewSession(id), nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, id)
		onExpire := s.onExpire
		s.mu.Unlock()

		if onExpire != nil {
			onExpire(&Session{ID: id, State: entry.state})
		}
		return NewSession(id), nil
	}
	s.mu.Unlock()
	return &Session{ID: id, State: entry.state}, nil
}

// Sweep drops every expired session, including ones nobody asks for again
func (s *MemoryStore) Sweep(_ context.Context) int {
	s.mu.Lock()
	now := s.now()
	var expired []*Session
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
			expired = append(expired, &Session{ID: id, State: entry.state})
		}
	}
	onExpire := s.onExpire
	s.mu.Unlock()

	if onExpire != nil {
		for _, session := range expired {
			onExpire(session)
		}
	}
	return len(expired)
}

func (s *MemoryStore) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = memoryEntry{
		state:     session.State,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// sessionRecord is the msgpack shape of a State
type sessionRecord struct {
	Kind        Kind   `msgpack:"kind"`
	FileName    string `msgpack:"file_name,omitempty"`
	FilePath    string `msgpack:"file_path,omitempty"`
	FileSize    int64  `msgpack:"file_size,omitempty"`
	ContentType string `msgpack:"content_type,omitempty"`
	ResultURL   string `msgpack:"result_url,omitempty"`
	Reason      string `msgpack:"reason,omitempty"`
}

// RedisStore keeps sessions in redis through the cache service
type RedisStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewRedisStore creates a redis backed session store
func NewRedisStore(cache cache.Service, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKey(id))
	if errors.Is(err, cache.ErrCacheMiss) {
		return NewSession(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var rec sessionRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	state, err := rec.state()
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, State: state}, nil
}

func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	data, err := msgpack.Marshal(newSessionRecord(session.State))
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKey(session.ID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func newSessionRecord(state State) sessionRecord {
	rec := sessionRecord{Kind: state.Kind()}
	if f, ok := FileOf(state); ok {
		rec.FileName = f.Name
		rec.FilePath = f.Path
		rec.FileSize = f.Size
		rec.ContentType = f.ContentType
	}
	switch st := state.(type) {
	case Uploaded:
		rec.ResultURL = st.URL
	case Failed:
		rec.Reason = st.Reason
	}
	return rec
}

func (r sessionRecord) state() (State, error) {
	f := File{
		Name:        r.FileName,
		Size:        r.FileSize,
		ContentType: r.ContentType,
		Path:        r.FilePath,
	}
	switch r.Kind {
	case KindIdle:
		return Idle{}, nil
	case KindFileSelected:
		return FileSelected{File: f}, nil
	case KindUploaded:
		return Uploaded{File: f, URL: r.ResultURL}, nil
	case KindFailed:
		return Failed{File: f, Reason: r.Reason}, nil
	default:
		return nil, fmt.Errorf("unknown session state %q", r.Kind)
	}
}
