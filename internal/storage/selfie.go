package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// sniffLen is how much of an upload is inspected to detect its real type.
const sniffLen = 512

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooLarge          = errors.New("image too large")
	ErrInvalidDataURL    = errors.New("invalid data URL")
	ErrEmptyImage        = errors.New("empty image")
	ErrForeignURL        = errors.New("url is not managed by this store")
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

var mimeExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SelfieStore writes selfie images under a public directory and hands back
// the relative URL they are served from.
type SelfieStore struct {
	dir       string
	urlPrefix string
	maxBytes  int64
	now       func() time.Time
}

func NewSelfieStore(dir, urlPrefix string, maxBytes int64) *SelfieStore {
	return &SelfieStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// Save stores r under a generated unique name that keeps the extension of
// originalName (".jpg" when it has none).
func (s *SelfieStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	if !imageExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	if n == 0 {
		return "", ErrEmptyImage
	}
	head = head[:n]
	if mt := mimetype.Detect(head); mimeExts[mt.String()] == "" {
		return "", fmt.Errorf("%w: detected %s", ErrUnsupportedFormat, mt.String())
	}
	r = io.MultiReader(bytes.NewReader(head), r)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := s.filename(ext)
	dst := filepath.Join(s.dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create selfie file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > s.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(dst)
		return "", err
	}

	return path.Join(s.urlPrefix, name), nil
}

// SaveDataURL decodes a base64 "data:image/...;base64," URL and stores it.
func (s *SelfieStore) SaveDataURL(dataURL string) (string, error) {
	mime, payload, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	ext, ok := mimeExts[mime]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxBytes+3 {
		return "", ErrTooLarge
	}
	dec := base64.NewDecoder(base64.StdEncoding, strings.NewReader(payload))
	url, err := s.Save("selfie"+ext, dec)
	var corrupt base64.CorruptInputError
	if errors.As(err, &corrupt) {
		return "", ErrInvalidDataURL
	}
	return url, err
}

// Remove deletes a file previously returned by Save.
func (s *SelfieStore) Remove(url string) error {
	prefix := s.urlPrefix + "/"
	if !strings.HasPrefix(url, prefix) {
		return ErrForeignURL
	}
	name := strings.TrimPrefix(url, prefix)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return ErrForeignURL
	}
	return os.Remove(filepath.Join(s.dir, name))
}

func (s *SelfieStore) filename(ext string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("selfie_%d_%s%s", s.now().UnixMilli(), token, ext)
}

// IsDataURL reports whether v looks like an inline base64 image.
func IsDataURL(v string) bool {
	return strings.HasPrefix(v, "data:")
}

func parseDataURL(v string) (mime, payload string, err error) {
	if !IsDataURL(v) {
		return "", "", ErrInvalidDataURL
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(v, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", "", ErrInvalidDataURL
	}
	mime = strings.ToLower(strings.TrimSuffix(header, ";base64"))
	if payload == "" {
		return "", "", ErrInvalidDataURL
	}
	return mime, payload, nil
}
