package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"multiUserBlog/internal/apperr"
)

// MaxURLLength bounds stored image references (img_url column width).
const MaxURLLength = 250

var (
	ErrNoFile          = apperr.Invalid("image", "No selected file")
	ErrInvalidFileType = apperr.New(apperr.CodeUnsupportedMediaType, "Invalid file type")
	ErrURLTooLong      = apperr.Invalid("image", fmt.Sprintf("image URL must be at most %d characters", MaxURLLength))
)

// Store writes uploaded images to Dir and reports them under URLPrefix.
// Existing files with the same sanitised name are overwritten.
type Store struct {
	Dir       string
	URLPrefix string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir, urlPrefix string) *Store {
	return &Store{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Save validates and writes an uploaded file and returns its public URL.
func (s *Store) Save(f FileSource) (string, error) {
	if strings.TrimSpace(f.Filename) == "" {
		return "", ErrNoFile
	}
	if !Allowed(f.Filename) {
		return "", ErrInvalidFileType
	}
	name := SanitizeFilename(f.Filename)
	if name == "" || !Allowed(name) {
		return "", ErrInvalidFileType
	}
	publicURL := s.URLPrefix + "/" + name
	if len(publicURL) > MaxURLLength {
		return "", apperr.Invalid("image", "file name is too long")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, "create upload directory", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), f.Data, 0o644); err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, "save image", err)
	}
	return publicURL, nil
}

// Resolve turns a Source into the value stored on a post. A nil source or a
// blank URL yields nil; any other URL is stored verbatim.
func (s *Store) Resolve(src Source) (*string, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case URLSource:
		if strings.TrimSpace(v.URL) == "" {
			return nil, nil
		}
		if len(v.URL) > MaxURLLength {
			return nil, ErrURLTooLong
		}
		u := v.URL
		return &u, nil
	case *URLSource:
		if v == nil {
			return nil, nil
		}
		return s.Resolve(*v)
	case FileSource:
		u, err := s.Save(v)
		if err != nil {
			return nil, err
		}
		return &u, nil
	case *FileSource:
		if v == nil {
			return nil, nil
		}
		return s.Resolve(*v)
	default:
		return nil, errors.New("unknown image source")
	}
}
