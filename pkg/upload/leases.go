package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Lease is one owned preview artifact written for a collected file. Release
// removes the artifact; releasing twice is a no-op.
type Lease struct {
	id       string
	path     string
	owner    *Leases
	released bool
}

// ID returns the id of the file the lease previews.
func (l *Lease) ID() string {
	if l == nil {
		return ""
	}
	return l.id
}

// Path returns the preview artifact location.
func (l *Lease) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release removes the preview artifact and detaches the lease.
func (l *Lease) Release() error {
	if l == nil || l.released {
		return nil
	}
	l.released = true
	if l.owner != nil {
		delete(l.owner.active, l.id)
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("upload: release preview for %s: %w", l.id, err)
	}
	return nil
}

// Leases tracks the preview artifacts a widget owns. Widgets acquire a lease
// when a value arrives and release it when the value is replaced or the
// widget closes, so repeated uploads never accumulate stale artifacts.
type Leases struct {
	dir    string
	active map[string]*Lease
}

// NewLeases returns a tracker writing previews under dir. An empty dir uses
// the system temp directory.
func NewLeases(dir string) *Leases {
	return &Leases{dir: dir, active: make(map[string]*Lease)}
}

// Acquire writes a preview artifact for f and records the lease under the
// file's id. Acquiring for an id that already holds a lease releases the old
// artifact first.
func (ls *Leases) Acquire(f File) (*Lease, error) {
	if ls == nil {
		return nil, fmt.Errorf("upload: leases not initialised")
	}
	if f.ID == "" {
		return nil, fmt.Errorf("upload: file has no id")
	}
	if old, ok := ls.active[f.ID]; ok {
		if err := old.Release(); err != nil {
			return nil, err
		}
	}

	content, err := f.Bytes()
	if err != nil {
		return nil, err
	}
	pattern := "preview-*" + filepath.Ext(f.Name)
	tmp, err := os.CreateTemp(ls.dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("upload: create preview: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("upload: write preview: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("upload: close preview: %w", err)
	}

	lease := &Lease{id: f.ID, path: tmp.Name(), owner: ls}
	ls.active[f.ID] = lease
	return lease, nil
}

// Adopt records a lease over an artifact that already exists on disk, such
// as an exported clip. The tracker takes ownership: releasing the lease
// removes the file. Adopting an id that already holds a lease releases the
// old artifact first.
func (ls *Leases) Adopt(id, path string) (*Lease, error) {
	if ls == nil {
		return nil, fmt.Errorf("upload: leases not initialised")
	}
	if id == "" {
		return nil, fmt.Errorf("upload: lease id is required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("upload: adopt %s: %w", path, err)
	}
	if old, ok := ls.active[id]; ok {
		if err := old.Release(); err != nil {
			return nil, err
		}
	}

	lease := &Lease{id: id, path: path, owner: ls}
	ls.active[id] = lease
	return lease, nil
}

// Dir returns the directory new preview artifacts are written to.
func (ls *Leases) Dir() string {
	if ls == nil {
		return ""
	}
	return ls.dir
}

// Release drops the lease held for id, if any.
func (ls *Leases) Release(id string) error {
	if ls == nil {
		return nil
	}
	lease, ok := ls.active[id]
	if !ok {
		return nil
	}
	return lease.Release()
}

// Active reports how many leases are currently held.
func (ls *Leases) Active() int {
	if ls == nil {
		return 0
	}
	return len(ls.active)
}

// Close releases every held lease.
func (ls *Leases) Close() error {
	if ls == nil {
		return nil
	}
	var errs []error
	for _, lease := range ls.leaseList() {
		if err := lease.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (ls *Leases) leaseList() []*Lease {
	out := make([]*Lease, 0, len(ls.active))
	for _, lease := range ls.active {
		out = append(out, lease)
	}
	return out
}
