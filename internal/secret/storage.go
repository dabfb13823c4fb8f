package secret

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/lox/seedmix/internal/fileutil"
)

// Storage persists secret documents by location.
type Storage interface {
	// Load returns the document stored at loc. A missing document must be
	// reported as ErrNotExist. A document whose secret is intact but whose
	// other attributes are unreadable is returned with an error wrapping
	// ErrMetadata.
	Load(loc Location) (Document, error)
	// Save durably writes doc to loc, replacing any previous document.
	Save(loc Location, doc Document) error
}

// FileStorage stores each document as an HCL file at the location path.
type FileStorage struct {
	// Perm is the mode used for new documents; zero means 0600.
	Perm os.FileMode
}

// NewFileStorage returns a FileStorage with owner-only permissions.
func NewFileStorage() *FileStorage {
	return &FileStorage{Perm: 0o600}
}

func (f *FileStorage) Load(loc Location) (Document, error) {
	data, err := os.ReadFile(string(loc))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, fmt.Errorf("%w: %s", ErrNotExist, loc)
		}
		return Document{}, fmt.Errorf("read %s: %w", loc, err)
	}
	return DecodeDocument(data, string(loc))
}

func (f *FileStorage) Save(loc Location, doc Document) error {
	perm := f.Perm
	if perm == 0 {
		perm = 0o600
	}
	return fileutil.WriteFileAtomic(string(loc), EncodeDocument(doc), perm)
}
