package archive

import (
	"archive/zip"
	"fmt"
	"io"
)

// Member is one named entry of an archive.
type Member struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// MemberProvider yields archive members in the order the archive lists them.
type MemberProvider interface {
	// Visit calls fn for every member. A non-nil error from fn stops the
	// iteration and is returned to the caller.
	Visit(fn func(m Member) error) error
	Close() error
}

type zipProvider struct {
	rc *zip.ReadCloser
}

// NewZipProvider opens the zip archive at path.
func NewZipProvider(path string) (MemberProvider, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("could not open archive %s: %w", path, err)
	}
	return &zipProvider{rc: rc}, nil
}

func (z *zipProvider) Visit(fn func(m Member) error) error {
	for _, f := range z.rc.File {
		if err := fn(Member{Name: f.Name, Open: openerFor(f)}); err != nil {
			return err
		}
	}
	return nil
}

func (z *zipProvider) Close() error {
	return z.rc.Close()
}

func openerFor(f *zip.File) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("could not open archive member %s: %w", f.Name, err)
		}
		return rc, nil
	}
}
