// Package storage implements domain.FileStorage on the local filesystem and
// on MinIO/S3.
package storage

import (
	"fmt"
	"strings"

	"weightlog/internal/domain"
)

var (
	_ domain.FileStorage = (*Disk)(nil)
	_ domain.FileStorage = (*MinIO)(nil)
)

// validName rejects names that could escape the storage root.
func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid file name %q", domain.ErrInvalidInput, name)
	}
	return nil
}

func notFound(name string) error {
	return fmt.Errorf("%w: file %q", domain.ErrNotFound, name)
}
