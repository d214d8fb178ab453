// Package upload stores multipart files on disk behind a MIME allow-list and
// per-kind size ceilings, returning the public URL of the saved file.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedType is returned when the sniffed content type is not in
	// the kind's allow-list.
	ErrUnsupportedType = errors.New("upload: unsupported file type")
	// ErrTooLarge is returned when the file exceeds the kind's size ceiling.
	ErrTooLarge = errors.New("upload: file too large")
	// ErrUnknownKind is returned for an unrecognized upload kind.
	ErrUnknownKind = errors.New("upload: unknown kind")
)

// Upload kinds accepted by the portal.
const (
	KindPreview  = "preview"
	KindImage    = "image"
	KindVideo    = "video"
	KindDocument = "document"
)

const (
	previewLimit  = 5 << 20
	imageLimit    = 10 << 20
	videoLimit    = 50 << 20
	documentLimit = 50 << 20
)

type kindPolicy struct {
	limit int64
	types map[string]struct{}
}

var policies = map[string]kindPolicy{
	KindPreview: {
		limit: previewLimit,
		types: imageTypes(),
	},
	KindImage: {
		limit: imageLimit,
		types: imageTypes(),
	},
	KindVideo: {
		limit: videoLimit,
		types: map[string]struct{}{
			"video/mp4":  {},
			"video/webm": {},
		},
	},
	KindDocument: {
		limit: documentLimit,
		types: map[string]struct{}{
			"application/pdf": {},
		},
	},
}

func imageTypes() map[string]struct{} {
	return map[string]struct{}{
		"image/jpeg": {},
		"image/png":  {},
		"image/gif":  {},
		"image/webp": {},
	}
}

// Limit returns the size ceiling in bytes for a kind, or 0 when unknown.
func Limit(kind string) int64 {
	p, ok := policies[kind]
	if !ok {
		return 0
	}
	return p.limit
}

// Saver writes uploaded files under a root directory, one subdirectory per
// kind, and reports their public URLs.
type Saver struct {
	root    string
	baseURL string
	now     func() time.Time
}

// NewSaver constructs a Saver rooted at dir. baseURL prefixes returned URLs.
func NewSaver(dir, baseURL string) (*Saver, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload dir is required")
	}
	return &Saver{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}, nil
}

// Result describes a stored file.
type Result struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Save validates and stores one multipart file. The generated filename is a
// timestamp plus a random suffix plus the original extension, so concurrent
// uploads of identically named files never collide.
func (s *Saver) Save(ctx context.Context, kind string, file multipart.File, header *multipart.FileHeader) (Result, error) {
	policy, ok := policies[kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if header.Size > policy.limit {
		return Result{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, header.Size, policy.limit)
	}

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Result{}, err
	}
	sniff = sniff[:n]
	contentType := sniffType(sniff)
	if _, allowed := policy.types[contentType]; !allowed {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return Result{}, err
	}

	name := s.filename(header.Filename)
	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, err
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return Result{}, err
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(file, policy.limit+1))
	if err != nil {
		return Result{}, err
	}
	if written > policy.limit {
		_ = os.Remove(filepath.Join(dir, name))
		return Result{}, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, policy.limit)
	}

	return Result{
		URL:  s.baseURL + path.Join("/", kind, name),
		Name: name,
		Size: written,
		Type: contentType,
	}, nil
}

func (s *Saver) filename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", s.now().UTC().UnixMilli(), suffix, ext)
}

// sniffType normalizes http.DetectContentType output, dropping parameters
// such as charset.
func sniffType(data []byte) string {
	contentType := http.DetectContentType(data)
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}
