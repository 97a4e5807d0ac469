package upload

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// File describes one collected file. Path-backed files reference content on
// disk; in-memory files (pasted text) carry their payload in Data.
type File struct {
	ID   string
	Name string
	Path string
	Size int64
	MIME string
	Data []byte
}

// FromPath builds a File for an existing regular file.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("upload: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("upload: %s is a directory", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("upload: resolve %s: %w", path, err)
	}
	return File{
		ID:   uuid.NewString(),
		Name: filepath.Base(abs),
		Path: abs,
		Size: info.Size(),
		MIME: mime.TypeByExtension(filepath.Ext(abs)),
	}, nil
}

// FromText wraps pasted text in an in-memory file whose name carries a
// timestamp tag, e.g. "pasted-20240131-154500.txt".
func FromText(text string, at time.Time) File {
	return File{
		ID:   uuid.NewString(),
		Name: fmt.Sprintf("pasted-%s.txt", at.Format("20060102-150405")),
		Size: int64(len(text)),
		MIME: "text/plain; charset=utf-8",
		Data: []byte(text),
	}
}

// Bytes returns the file content, reading from disk for path-backed files.
func (f File) Bytes() ([]byte, error) {
	if f.Data != nil {
		return f.Data, nil
	}
	if f.Path == "" {
		return nil, fmt.Errorf("upload: file %q has no content", f.Name)
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("upload: read %s: %w", f.Path, err)
	}
	return data, nil
}

// JSONValue projects the descriptor onto its JSON shape for schema
// validation and guide output. Content is never included.
func (f File) JSONValue() any {
	return map[string]any{
		"id":   f.ID,
		"name": f.Name,
		"path": f.Path,
		"size": f.Size,
		"mime": f.MIME,
	}
}

// ScanDir collects every regular file under root, sorted by path. Dropped
// directories expand through it so multi-file widgets see their full
// contents.
func ScanDir(root string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		f, err := FromPath(path)
		if err != nil {
			return err
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("upload: scan %s: %w", root, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
