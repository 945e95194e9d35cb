package fs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/miniofs/fs"
	"github.com/TFMV/miniofs/pkg/errors"
)

func TestExists(t *testing.T) {
	client := mockFS(t, tree{
		"foo": tree{
			"bar1": tree{"baz": nil},
			"bar2": tree{},
		},
	})

	mustExist(t, client, "/")
	mustExist(t, client, "/foo/")
	mustExist(t, client, "/foo//")
	mustExist(t, client, "/foo/bar1/")
	mustExist(t, client, "/foo/bar2/")
	mustExist(t, client, "/foo/bar1/baz")

	// "/foo" without a trailing slash is not a valid bucket reference.
	mustNotExist(t, client, "/foo")
	mustNotExist(t, client, "/foo/bar2")
	mustNotExist(t, client, "/foo/bar2/baz")
	mustNotExist(t, client, "/foo/bar1/baz/")
	mustNotExist(t, client, "/nosuchbucket/")
}

func TestListDir(t *testing.T) {
	client := mockFS(t, tree{
		"foo1": tree{"bar": tree{}},
		"foo2": tree{"bar": tree{"baz": nil}},
		"foo3": tree{"bar": tree{"baz1": tree{}, "baz2": tree{}}},
	})
	ctx := context.Background()

	t.Run("root lists buckets", func(t *testing.T) {
		names, err := client.ListDir(ctx, "/")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"foo1/", "foo2/", "foo3/"}, names)
	})

	t.Run("bucket", func(t *testing.T) {
		names, err := client.ListDir(ctx, "/foo1/")
		require.NoError(t, err)
		assert.Equal(t, []string{"bar/"}, names)
	})

	t.Run("file entries", func(t *testing.T) {
		names, err := client.ListDir(ctx, "/foo2/bar/")
		require.NoError(t, err)
		assert.Equal(t, []string{"baz"}, names)
	})

	t.Run("nested directories", func(t *testing.T) {
		names, err := client.ListDir(ctx, "/foo3/bar/")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"baz1/", "baz2/"}, names)
	})

	t.Run("missing prefix lists empty", func(t *testing.T) {
		names, err := client.ListDir(ctx, "/foo1/nothing/")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("file path rejected", func(t *testing.T) {
		_, err := client.ListDir(ctx, "/foo2/bar/baz")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, fs.ErrInvalidDirectoryPath))
	})
}

func TestListDirFilters(t *testing.T) {
	client := mockFS(t, tree{
		"foo": tree{
			"dir1":  tree{},
			"dir2":  tree{"nested": nil},
			"file1": nil,
			"file2": nil,
		},
	})
	ctx := context.Background()

	t.Run("files only", func(t *testing.T) {
		names, err := client.ListDir(ctx, "/foo/", fs.FilesOnly())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"file1", "file2"}, names)
	})

	t.Run("dirs only", func(t *testing.T) {
		names, err := client.ListDir(ctx, "/foo/", fs.DirsOnly())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"dir1/", "dir2/"}, names)
	})

	t.Run("files only at root", func(t *testing.T) {
		names, err := client.ListDir(ctx, "/", fs.FilesOnly())
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("dirs only at root", func(t *testing.T) {
		names, err := client.ListDir(ctx, "/", fs.DirsOnly())
		require.NoError(t, err)
		assert.Equal(t, []string{"foo/"}, names)
	})
}

func TestIsDir(t *testing.T) {
	client := mockFS(t, tree{
		"foo": tree{"bar": tree{"baz": nil}},
	})
	ctx := context.Background()

	cases := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/foo/", true},
		{"/foo/bar/", true},
		{"/foo/bar/baz", false},
		{"/foo/bar/baz/", false},
		{"/foo/nothing/", false},
		{"/foo", false},
	}

	for _, tc := range cases {
		got, err := client.IsDir(ctx, tc.path)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "IsDir(%q)", tc.path)
	}
}

func TestGetFile(t *testing.T) {
	client := newTestFS(t)
	ctx := context.Background()

	require.NoError(t, client.Mkdirs(ctx, "/foo/"))
	require.NoError(t, client.PutData(ctx, "/foo/bar", []byte("payload"),
		map[string]string{"owner": "finance"}))

	file, err := client.GetFile(ctx, "/foo/bar")
	require.NoError(t, err)

	assert.Equal(t, "bar", file.Name)
	assert.Equal(t, "/foo/bar", file.Path)
	assert.Equal(t, []byte("payload"), file.Data)
	assert.False(t, file.Metadata.IsDir)
	assert.EqualValues(t, len("payload"), file.Metadata.Size)
	assert.Equal(t, "finance", file.Metadata.User["owner"])
	assert.WithinDuration(t, time.Now(), file.Metadata.LastModified, time.Minute)
}

func TestGetFolder(t *testing.T) {
	client := mockFS(t, tree{
		"foo": tree{"bar": tree{"baz": nil}},
	})
	ctx := context.Background()

	obj, err := client.Get(ctx, "/foo/bar/")
	require.NoError(t, err)

	folder, ok := obj.(*fs.Folder)
	require.True(t, ok, "expected a folder descriptor, got %T", obj)
	assert.Equal(t, "bar/", folder.Name)
	assert.Equal(t, "/foo/bar/", folder.Path)
	assert.True(t, folder.Metadata.IsDir)
}

func TestGetErrors(t *testing.T) {
	client := mockFS(t, tree{
		"foo": tree{"bar": tree{"baz": nil}},
	})
	ctx := context.Background()

	t.Run("root has no object", func(t *testing.T) {
		_, err := client.Get(ctx, "/")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, fs.ErrBucketNoObject))
	})

	t.Run("bucket has no object", func(t *testing.T) {
		_, err := client.Get(ctx, "/foo/")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, fs.ErrBucketNoObject))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := client.Get(ctx, "/foo/bar/nothing")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, fs.ErrNotFound))
		assert.ErrorIs(t, err, fs.ErrNoSuchPath)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := client.Get(ctx, "/foo/bar/nothing/")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, fs.ErrNotFound))
	})

	t.Run("directory is not a file", func(t *testing.T) {
		_, err := client.GetFile(ctx, "/foo/bar/")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, fs.ErrInvalidFilePath))
	})
}

func TestGetLastObject(t *testing.T) {
	client := newTestFS(t)
	ctx := context.Background()

	require.NoError(t, client.Mkdirs(ctx, "/foo/bar/"))

	t.Run("empty directory yields nil", func(t *testing.T) {
		file, err := client.GetLastObject(ctx, "/foo/bar/")
		require.NoError(t, err)
		assert.Nil(t, file)
	})

	t.Run("newest file wins", func(t *testing.T) {
		require.NoError(t, client.PutData(ctx, "/foo/bar/old", []byte("old"), nil))
		// Object mtimes can be second-granular, make the ordering
		// unambiguous.
		time.Sleep(1200 * time.Millisecond)
		require.NoError(t, client.PutData(ctx, "/foo/bar/new", []byte("new"), nil))

		file, err := client.GetLastObject(ctx, "/foo/bar/")
		require.NoError(t, err)
		require.NotNil(t, file)
		assert.Equal(t, "new", file.Name)
		assert.Equal(t, []byte("new"), file.Data)
	})

	t.Run("file path rejected", func(t *testing.T) {
		_, err := client.GetLastObject(ctx, "/foo/bar/old")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, fs.ErrInvalidDirectoryPath))
	})
}
