package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	key, err := s.Put(ctx, "/images//a.png", strings.NewReader("data"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "images/a.png", key)

	rc, err := s.Get(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))

	_, err = s.Get(ctx, "images/none.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFSStore_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	for _, k := range []string{"", "  ", "../etc/passwd", "images/../../x"} {
		_, err := s.Put(ctx, k, strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, ErrBadKey, k)
	}
	_, err = s.Get(ctx, "../secret")
	assert.ErrorIs(t, err, ErrBadKey)
}
