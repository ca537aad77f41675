// Package storage persists processed image files.
package storage

import "context"

// FileStore writes a file named name under the logical directory dir.
type FileStore interface {
	Save(ctx context.Context, dir, name string, data []byte) error
}
