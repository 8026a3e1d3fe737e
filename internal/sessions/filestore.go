package sessions

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/storage/dirstore"
)

// FileStore persists sessions as directories with meta.json + tape.jsonl.
type FileStore struct {
	mu sync.RWMutex
	ds *dirstore.DirStore
}

// NewFileStore creates a FileStore rooted at baseDir on the OS filesystem.
func NewFileStore(baseDir string) *FileStore {
	return NewFileStoreFs(afero.NewOsFs(), baseDir)
}

// NewFileStoreFs creates a FileStore rooted at baseDir on fs.
func NewFileStoreFs(fs afero.Fs, baseDir string) *FileStore {
	return &FileStore{ds: dirstore.NewDirStore(fs, baseDir, "session")}
}

// NewID returns a fresh session identifier.
func NewID() string {
	u := uuid.New().String()
	return "sess_" + strings.ReplaceAll(u[:8], "-", "")
}

// Create initialises a session directory with meta.json. An empty id gets
// a generated one.
func (fs *FileStore) Create(id, client, angle string) (*Session, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if id == "" {
		id = NewID()
	}
	now := time.Now()
	s := &Session{
		ID:        id,
		Client:    client,
		Angle:     angle,
		CreatedAt: now,
		UpdatedAt: now,
		Status:    SessionActive,
	}

	if err := fs.ds.EnsureDir(s.ID); err != nil {
		return nil, err
	}
	if err := fs.ds.WriteMeta(s.ID, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get reads session metadata by ID.
func (fs *FileStore) Get(id string) (*Session, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.readMeta(id)
}

// List returns all sessions sorted by UpdatedAt descending.
func (fs *FileStore) List() ([]*Session, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	ids, err := fs.ds.ListDirs()
	if err != nil {
		return nil, err
	}

	var sessions []*Session
	for _, id := range ids {
		s, err := fs.readMeta(id)
		if err != nil {
			continue // skip corrupted sessions
		}
		sessions = append(sessions, s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

// UpdateMeta atomically rewrites a session's meta.json.
func (fs *FileStore) UpdateMeta(s *Session) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.ds.WriteMeta(s.ID, s)
}

// Close marks a session as closed.
func (fs *FileStore) Close(id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	s, err := fs.readMeta(id)
	if err != nil {
		return err
	}
	s.Status = SessionClosed
	s.UpdatedAt = time.Now()
	return fs.ds.WriteMeta(s.ID, s)
}

// AppendEvent appends an event to the session's tape, creating the session
// directory when needed.
func (fs *FileStore) AppendEvent(sessionID string, e events.Event) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.ds.EnsureDir(sessionID); err != nil {
		return err
	}
	return fs.ds.AppendJSONL(sessionID, TapeFile, e)
}

// LoadTape reads all events recorded for a session.
func (fs *FileStore) LoadTape(sessionID string) ([]events.Event, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return dirstore.LoadJSONL[events.Event](fs.ds, sessionID, TapeFile)
}

// TapePath returns where a session's tape lives on disk.
func (fs *FileStore) TapePath(sessionID string) string {
	return fs.ds.FilePath(sessionID, TapeFile)
}

func (fs *FileStore) readMeta(id string) (*Session, error) {
	var s Session
	if err := fs.ds.ReadMeta(id, &s); err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return &s, nil
}
