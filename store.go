package bankbook

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Store persists the whole account collection as one document.
type Store interface {
	Load() (map[string]*Account, error)
	Save(map[string]*Account) error
}

// FileStore keeps the collection in a single JSON file on disk.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

// Load reads the document. A missing file means a first run and yields an
// empty collection; an unreadable one is logged and also yields an empty
// collection, so the command line never refuses to start.
func (s *FileStore) Load() (map[string]*Account, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]*Account), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open accounts file: %v: %w", err, ErrPersistence)
	}
	defer f.Close()

	accounts, err := DecodeAccounts(f)
	if err != nil {
		log.Printf("accounts file %q is unreadable, starting empty: %v", s.Path, err)
		return make(map[string]*Account), nil
	}
	return accounts, nil
}

// Save writes the document to a sibling temp file and renames it into place,
// so a crash mid-write never clobbers the previous document.
func (s *FileStore) Save(accounts map[string]*Account) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create accounts dir: %v: %w", err, ErrPersistence)
		}
	}
	tmp := s.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cannot create accounts file: %v: %w", err, ErrPersistence)
	}
	if err := EncodeAccounts(f, accounts); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("cannot encode accounts: %v: %w", err, ErrPersistence)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot write accounts file: %v: %w", err, ErrPersistence)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("cannot replace accounts file: %v: %w", err, ErrPersistence)
	}
	return nil
}

// MemStore keeps the encoded document in memory. It round-trips through the
// same codec as FileStore, and can be told to refuse upcoming saves, which
// tests use to exercise retry and rollback.
type MemStore struct {
	doc      []byte
	FailNext int // number of upcoming Save calls to refuse
}

func (s *MemStore) Load() (map[string]*Account, error) {
	if len(s.doc) == 0 {
		return make(map[string]*Account), nil
	}
	return DecodeAccounts(bytes.NewReader(s.doc))
}

func (s *MemStore) Save(accounts map[string]*Account) error {
	if s.FailNext > 0 {
		s.FailNext--
		return fmt.Errorf("in-memory save refused: %w", ErrPersistence)
	}
	var buf bytes.Buffer
	if err := EncodeAccounts(&buf, accounts); err != nil {
		return err
	}
	s.doc = buf.Bytes()
	return nil
}
