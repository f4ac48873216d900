package storage

import "io"

// BlobStore persists uploaded files (question attachments, file-upload
// answers). Only the returned public URL is stored in the database.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns a public URL
	Get(key string) (io.ReadCloser, error)
}
