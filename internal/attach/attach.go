// Package attach checks incident attachments. Files are referenced by path
// and never read; only the count and the type allowlist are enforced.
package attach

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxFiles is the most attachments one incident may carry.
const MaxFiles = 5

var (
	ErrNone     = errors.New("Please attach at least 1 file")
	ErrTooMany  = errors.New("Attach up to 5 files")
	ErrFileType = errors.New("Only images (PNG/JPG/WEBP/GIF), PDF, or DOC/DOCX files are allowed")
)

var allowedMIME = map[string]bool{
	"image/png":          true,
	"image/jpeg":         true,
	"image/webp":         true,
	"image/gif":          true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var allowedExt = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true,
	".pdf": true, ".doc": true, ".docx": true,
}

// Ref is an opaque reference to an accepted attachment.
type Ref struct {
	ID   uuid.UUID
	Name string
	Path string
}

// Allowed reports whether name has an accepted extension or MIME type.
func Allowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if allowedExt[ext] {
		return true
	}
	if ext == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	return err == nil && allowedMIME[mt]
}

// Check validates paths and returns one Ref per path in order. Blank entries
// are ignored.
func Check(paths []string) ([]Ref, error) {
	var clean []string
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	switch {
	case len(clean) == 0:
		return nil, ErrNone
	case len(clean) > MaxFiles:
		return nil, ErrTooMany
	}
	refs := make([]Ref, 0, len(clean))
	for _, p := range clean {
		if !Allowed(p) {
			return nil, ErrFileType
		}
		refs = append(refs, Ref{ID: uuid.New(), Name: filepath.Base(p), Path: p})
	}
	return refs, nil
}

// Names returns the base names of refs.
func Names(refs []Ref) []string {
	if len(refs) == 0 {
		return nil
	}
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return names
}

// Split parses a comma-separated list of paths as typed into a form field.
func Split(field string) []string {
	var out []string
	for _, p := range strings.Split(field, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
