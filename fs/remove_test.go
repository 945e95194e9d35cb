package fs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/miniofs/fs"
	"github.com/TFMV/miniofs/pkg/errors"
)

func TestRmdir(t *testing.T) {
	client := mockFS(t, tree{
		"foo1": tree{"bar": tree{}},
		"foo2": tree{"bar": tree{"baz1": tree{}, "baz2": nil}},
	})
	ctx := context.Background()

	t.Run("file path rejected", func(t *testing.T) {
		err := client.Rmdir(ctx, "/foo2/bar/baz2", false)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, fs.ErrInvalidDirectoryPath))
	})

	t.Run("empty directory", func(t *testing.T) {
		require.NoError(t, client.Rmdir(ctx, "/foo1/bar/", false))
		mustNotExist(t, client, "/foo1/bar/")
		mustExist(t, client, "/foo1/")
	})

	t.Run("non-empty without recursive", func(t *testing.T) {
		err := client.Rmdir(ctx, "/foo2/bar/", false)
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrDirectoryNotEmpty)
		assert.True(t, errors.HasCode(err, fs.ErrDirNotEmpty))
		mustExist(t, client, "/foo2/bar/")
	})

	t.Run("non-empty recursive", func(t *testing.T) {
		require.NoError(t, client.Rmdir(ctx, "/foo2/bar/", true))
		mustNotExist(t, client, "/foo2/bar/")
		mustNotExist(t, client, "/foo2/bar/baz1/")
		mustNotExist(t, client, "/foo2/bar/baz2")
		mustExist(t, client, "/foo2/")
	})

	t.Run("empty bucket", func(t *testing.T) {
		require.NoError(t, client.Rmdir(ctx, "/foo1/", false))
		mustNotExist(t, client, "/foo1/")
	})

	t.Run("missing bucket", func(t *testing.T) {
		err := client.Rmdir(ctx, "/foo1/", false)
		require.Error(t, err)
	})
}

func TestRmdirRootGuard(t *testing.T) {
	client := mockFS(t, tree{"foo": tree{"bar": nil}})

	err := client.Rmdir(context.Background(), "/", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrDirectoryNotEmpty)
}

func TestRm(t *testing.T) {
	client := mockFS(t, tree{
		"foo": tree{
			"bar":  nil,
			"dir1": tree{"nested": nil},
		},
	})
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		require.NoError(t, client.Rm(ctx, "/foo/bar", false))
		mustNotExist(t, client, "/foo/bar")
	})

	t.Run("directory delegates to rmdir", func(t *testing.T) {
		err := client.Rm(ctx, "/foo/dir1/", false)
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrDirectoryNotEmpty)

		require.NoError(t, client.Rm(ctx, "/foo/dir1/", true))
		mustNotExist(t, client, "/foo/dir1/")
	})
}

func TestTruncate(t *testing.T) {
	client := mockFS(t, tree{
		"foo1": tree{"bar": tree{"baz": nil}},
		"foo2": tree{"bar": nil},
	})
	ctx := context.Background()

	require.NoError(t, client.Truncate(ctx))

	names, err := client.ListDir(ctx, "/")
	require.NoError(t, err)
	assert.Empty(t, names)

	// Root itself survives.
	mustExist(t, client, "/")
}

func TestRmRootRecursive(t *testing.T) {
	client := mockFS(t, tree{
		"foo": tree{"bar": nil},
	})
	ctx := context.Background()

	require.NoError(t, client.Rm(ctx, "/", true))

	names, err := client.ListDir(ctx, "/")
	require.NoError(t, err)
	assert.Empty(t, names)
}
