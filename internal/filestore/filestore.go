// internal/filestore/filestore.go
package filestore

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultTTL = time.Hour

// mimeTypes maps the supported file type names to their MIME types.
// Unknown types fall back to text/plain.
var mimeTypes = map[string]string{
	"html": "text/html",
	"json": "application/json",
	"csv":  "text/csv",
	"txt":  "text/plain",
	"md":   "text/markdown",
}

// Entry is one stored file.
type Entry struct {
	Content   []byte
	Filename  string
	MIMEType  string
	CreatedAt time.Time
}

// Store holds generated files in memory until they expire. Files are
// transient download artifacts, not durable storage.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]Entry
	now     func() time.Time
}

func NewStore(ttlSeconds int) *Store {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{
		ttl:     ttl,
		entries: map[string]Entry{},
		now:     time.Now,
	}
}

// WithClock overrides the store clock. Test use.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Put stores content under a fresh file id, normalizing the filename
// extension to the file type. Expired entries are swept on every write.
func (s *Store) Put(content []byte, filename, fileType string) (string, Entry) {
	fileType = strings.ToLower(strings.TrimSpace(fileType))
	if fileType == "" {
		fileType = "txt"
	}
	mimeType, ok := mimeTypes[fileType]
	if !ok {
		mimeType = "text/plain"
	}

	filename = strings.TrimSpace(filename)
	if filename == "" {
		filename = "output"
	}
	extension := "." + fileType
	if !strings.HasSuffix(strings.ToLower(filename), extension) {
		filename += extension
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()

	fileID := strings.ReplaceAll(uuid.NewString(), "-", "")
	entry := Entry{
		Content:   content,
		Filename:  filename,
		MIMEType:  mimeType,
		CreatedAt: s.now(),
	}
	s.entries[fileID] = entry
	return fileID, entry
}

// Get returns a stored file. Expired entries are dropped and reported
// as missing.
func (s *Store) Get(fileID string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[fileID]
	if !ok {
		return Entry{}, false
	}
	if s.now().Sub(entry.CreatedAt) > s.ttl {
		delete(s.entries, fileID)
		return Entry{}, false
	}
	return entry, true
}

func (s *Store) cleanupLocked() {
	now := s.now()
	for id, entry := range s.entries {
		if now.Sub(entry.CreatedAt) > s.ttl {
			delete(s.entries, id)
		}
	}
}
