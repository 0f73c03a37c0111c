// Package storage keeps uploaded question media (images referenced by
// imageUrl fields).
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	ErrBadKey   = errors.New("invalid blob key")
	ErrNotFound = errors.New("blob not found")
)

type BlobStore interface {
	// Put stores r under key and returns the canonical key. size may be -1
	// when unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// cleanKey normalises key to a slash-separated relative path that stays
// inside the store.
func cleanKey(key string) (string, error) {
	k := path.Clean("/" + strings.TrimSpace(key))[1:]
	if k == "" || strings.Contains(key, "..") {
		return "", ErrBadKey
	}
	return k, nil
}
