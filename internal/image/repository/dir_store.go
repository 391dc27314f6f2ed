package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"vitrine/internal/domain"
	"vitrine/internal/errors"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// DirStore keeps uploaded images as plain files in a single directory and
// serves their metadata from directory scans.
type DirStore struct {
	dir        string
	publicPath string
}

func NewDirStore(dir, publicPath string) *DirStore {
	return &DirStore{
		dir:        dir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
	}
}

// List returns metadata for every allowed image file, newest-modified first.
// A missing directory reads as an empty collection.
func (s *DirStore) List(ctx context.Context) ([]domain.Image, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Image{}, nil
		}
		return nil, fmt.Errorf("reading image directory: %w", err)
	}

	images := []domain.Image{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !allowedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		images = append(images, domain.Image{
			Name:         entry.Name(),
			OriginalName: originalName(entry.Name()),
			URL:          s.publicPath + "/" + entry.Name(),
			Size:         info.Size(),
			Modified:     info.ModTime(),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Modified.After(images[j].Modified)
	})

	return images, nil
}

// Save writes the upload under a name derived from the original base name
// plus a creation-time suffix, so repeated uploads never collide.
func (s *DirStore) Save(ctx context.Context, original string, data io.Reader) (*domain.Image, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, errors.NewInternalError("creating image directory", err)
	}

	// O_EXCL so two uploads landing on the same millisecond suffix never
	// overwrite each other; collisions get an extra counter suffix.
	var (
		name string
		path string
		file *os.File
	)
	base := storedName(original)
	for attempt := 0; ; attempt++ {
		name = base
		if attempt > 0 {
			ext := filepath.Ext(base)
			name = strings.TrimSuffix(base, ext) + "-" + strconv.Itoa(attempt) + ext
		}
		path = filepath.Join(s.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			file = f
			break
		}
		if !os.IsExist(err) {
			return nil, errors.NewInternalError("creating image file", err)
		}
	}

	written, err := io.Copy(file, data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, errors.NewInternalError("writing image file", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewInternalError("stating image file", err)
	}

	return &domain.Image{
		Name:         name,
		OriginalName: filepath.Base(original),
		URL:          s.publicPath + "/" + name,
		Size:         written,
		Modified:     info.ModTime(),
	}, nil
}

func (s *DirStore) Delete(ctx context.Context, name string) error {
	// Never let a crafted filename escape the image directory.
	name = filepath.Base(name)
	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NewNotFoundError(fmt.Sprintf("image %s not found", name))
		}
		return errors.NewInternalError("stating image file", err)
	}

	if err := os.Remove(path); err != nil {
		return errors.NewInternalError("removing image file", err)
	}

	return nil
}

func storedName(original string) string {
	base := filepath.Base(original)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	stem = sanitize(stem)
	if stem == "" {
		stem = "image"
	}

	return stem + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + strings.ToLower(ext)
}

// originalName strips the creation-time suffix Save appended, best effort.
func originalName(stored string) string {
	ext := filepath.Ext(stored)
	stem := strings.TrimSuffix(stored, ext)

	idx := strings.LastIndex(stem, "-")
	if idx <= 0 {
		return stored
	}
	if _, err := strconv.ParseInt(stem[idx+1:], 10, 64); err != nil {
		return stored
	}

	return stem[:idx] + ext
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
