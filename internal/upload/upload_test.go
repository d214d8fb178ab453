package upload

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

// pngHeader is the 8-byte PNG signature followed by padding, enough for
// http.DetectContentType to recognize the type.
var pngHeader = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)

func multipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	file, header, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func newTestSaver(t *testing.T) *Saver {
	t.Helper()
	saver, err := NewSaver(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewSaver: %v", err)
	}
	return saver
}

func TestSaveImage(t *testing.T) {
	saver := newTestSaver(t)

	file, header := multipartFile(t, "praça.PNG", pngHeader)
	result, err := saver.Save(context.Background(), KindImage, file, header)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(result.URL, "/uploads/image/") {
		t.Fatalf("unexpected url: %s", result.URL)
	}
	if result.Type != "image/png" {
		t.Fatalf("unexpected type: %s", result.Type)
	}
	if result.Size != int64(len(pngHeader)) {
		t.Fatalf("unexpected size: %d", result.Size)
	}

	// Timestamp, random suffix, lowercased original extension.
	pattern := regexp.MustCompile(`^\d+-[0-9a-f]{12}\.png$`)
	if !pattern.MatchString(result.Name) {
		t.Fatalf("unexpected filename: %s", result.Name)
	}

	stored := filepath.Join(saver.root, KindImage, result.Name)
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Fatalf("stored content differs from upload")
	}
}

func TestSaveRejectsDisallowedType(t *testing.T) {
	saver := newTestSaver(t)

	// Plain text is never a valid image.
	file, header := multipartFile(t, "script.png", []byte("#!/bin/sh\nrm -rf /\n"))
	if _, err := saver.Save(context.Background(), KindImage, file, header); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}

	// A PNG is not a document either.
	file, header = multipartFile(t, "image.pdf", pngHeader)
	if _, err := saver.Save(context.Background(), KindDocument, file, header); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	saver := newTestSaver(t)

	file, header := multipartFile(t, "big.png", pngHeader)
	header.Size = previewLimit + 1
	if _, err := saver.Save(context.Background(), KindPreview, file, header); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestSaveRejectsUnknownKind(t *testing.T) {
	saver := newTestSaver(t)

	file, header := multipartFile(t, "x.png", pngHeader)
	if _, err := saver.Save(context.Background(), "archive", file, header); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestFilenamesNeverCollide(t *testing.T) {
	saver := newTestSaver(t)
	saver.now = func() time.Time { return time.Unix(1700000000, 0) }

	names := make(map[string]struct{})
	for i := 0; i < 16; i++ {
		name := saver.filename("foto.jpg")
		if _, dup := names[name]; dup {
			t.Fatalf("duplicate filename %s", name)
		}
		names[name] = struct{}{}
		if !strings.HasSuffix(name, ".jpg") {
			t.Fatalf("extension not preserved: %s", name)
		}
	}
}

func TestLimit(t *testing.T) {
	if Limit(KindPreview) != 5<<20 {
		t.Fatalf("preview limit: %d", Limit(KindPreview))
	}
	if Limit(KindImage) != 10<<20 {
		t.Fatalf("image limit: %d", Limit(KindImage))
	}
	if Limit(KindVideo) != 50<<20 || Limit(KindDocument) != 50<<20 {
		t.Fatalf("video/document limits")
	}
	if Limit("archive") != 0 {
		t.Fatalf("unknown kind should have no limit")
	}
}
