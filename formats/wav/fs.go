// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"
	"io/fs"
	"os"
)

// DefaultPerm is used by OSFS when no permission is set.
const DefaultPerm fs.FileMode = 0o644

// File is the handle a Writer owns for the length of a session. The only
// seeks ever issued are the two header patches.
type File interface {
	io.Writer
	io.Seeker
	io.Closer
}

// FS is the storage a Writer creates files on.
type FS interface {
	// Create must create path exclusively. When path already exists the
	// returned error must match fs.ErrExist.
	Create(path string) (File, error)
	Remove(path string) error
}

// OSFS is an FS backed by the operating system.
type OSFS struct {
	Perm fs.FileMode
}

func (o OSFS) Create(path string) (File, error) {
	perm := o.Perm
	if perm == 0 {
		perm = DefaultPerm
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (OSFS) Remove(path string) error {
	return os.Remove(path)
}
