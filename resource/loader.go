// Package resource implements scaffold.ResourceLoader over an fs.FS.
package resource

import (
	"errors"
	"io/fs"

	"github.com/scaffoldkit/scaffold"
)

// Loader reads binary and verbatim resources from an fs.FS.
type Loader struct {
	fsys fs.FS
}

// New creates a Loader over fsys, rooted at dir when given.
func New(fsys fs.FS, dir ...string) (*Loader, error) {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	if len(dir) > 0 && dir[0] != "" && dir[0] != "." {
		sub, err := fs.Sub(fsys, dir[0])
		if err != nil {
			return nil, err
		}
		fsys = sub
	}
	return &Loader{fsys}, nil
}

func (l *Loader) Load(resource string) ([]byte, error) {
	if !fs.ValidPath(resource) {
		return nil, &scaffold.ResourceNotFoundError{Path: resource}
	}
	data, err := fs.ReadFile(l.fsys, resource)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &scaffold.ResourceNotFoundError{Path: resource}
		}
		return nil, err
	}
	return data, nil
}
