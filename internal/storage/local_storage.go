// Package storage keeps uploaded profile images on the local filesystem.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jaevor/go-nanoid"
)

const (
	imageIDLength = 21
	sniffLen      = 3072
)

var (
	ErrNotFound        = errors.New("file not found")
	ErrTooLarge        = errors.New("file exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrInvalidID       = errors.New("invalid file id")
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{3,64}(\.[a-z]{3,4})?$`)

// allowedImages maps accepted image types to the extension stored files get.
var allowedImages = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type LocalStorage struct {
	basePath string
	maxBytes int64
	newID    func() string
}

func NewLocalStorage(basePath string, maxBytes int64) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	generateID, err := nanoid.Standard(imageIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}
	return &LocalStorage{basePath: basePath, maxBytes: maxBytes, newID: generateID}, nil
}

// getPathFromID shards files into directories named after the first two
// characters of the id.
func (ls *LocalStorage) getPathFromID(id string) (string, error) {
	if !validID.MatchString(id) {
		return "", ErrInvalidID
	}
	return filepath.Join(ls.basePath, id[:2], id), nil
}

// Save writes data under id. Writes larger than the configured limit are
// discarded and reported as ErrTooLarge.
func (ls *LocalStorage) Save(id string, data io.Reader) error {
	filePath, err := ls.getPathFromID(id)
	if err != nil {
		return err
	}
	dir := filepath.Dir(filePath)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, io.LimitReader(data, ls.maxBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if written > ls.maxBytes {
		return ErrTooLarge
	}

	return os.Rename(tmp.Name(), filePath)
}

// SaveImage sniffs the upload, rejects anything that is not a supported image
// and stores it under a fresh id, which it returns.
func (ls *LocalStorage) SaveImage(data io.Reader) (string, error) {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(data, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	header = header[:n]

	ext, ok := allowedImages[mimetype.Detect(header).String()]
	if !ok {
		return "", ErrUnsupportedType
	}

	id := ls.newID() + ext
	if err := ls.Save(id, io.MultiReader(bytes.NewReader(header), data)); err != nil {
		return "", err
	}
	return id, nil
}

func (ls *LocalStorage) Get(id string) (*os.File, error) {
	filePath, err := ls.getPathFromID(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file with id %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStorage) Delete(id string) error {
	filePath, err := ls.getPathFromID(id)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
