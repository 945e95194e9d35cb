package fs

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/TFMV/miniofs/paths"
	"github.com/TFMV/miniofs/pkg/errors"
)

type listOptions struct {
	filesOnly bool
	dirsOnly  bool
}

// ListOption narrows what ListDir returns.
type ListOption func(*listOptions)

// FilesOnly restricts a listing to files.
func FilesOnly() ListOption {
	return func(o *listOptions) { o.filesOnly = true }
}

// DirsOnly restricts a listing to directories.
func DirsOnly() ListOption {
	return func(o *listOptions) { o.dirsOnly = true }
}

// ListDir returns the names of all files and directories directly
// under a directory path, most recently modified first. Directory
// names carry a trailing "/". At root the buckets are listed, newest
// first.
func (f *FS) ListDir(ctx context.Context, path string, opts ...ListOption) ([]string, error) {
	m, err := requireDir(path)
	if err != nil {
		return nil, err
	}

	var lo listOptions
	for _, opt := range opts {
		opt(&lo)
	}

	f.opLogger("listdir").Debug("listing directory", zap.String("path", m.Path()))

	if m.IsRoot() {
		if lo.filesOnly {
			return nil, nil
		}
		infos, err := f.buckets(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(infos))
		for _, b := range infos {
			names = append(names, b.Name+"/")
		}
		return names, nil
	}

	objects, err := f.objectsAt(ctx, m)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(objects))
	for _, obj := range objects {
		if lo.filesOnly && isDirInfo(obj) {
			continue
		}
		if lo.dirsOnly && !isDirInfo(obj) {
			continue
		}
		names = append(names, strings.TrimPrefix(obj.Key, m.Prefix()))
	}

	return names, nil
}

// Exists reports whether a path points at something in the store.
// Malformed paths exist nowhere and report false rather than erroring.
func (f *FS) Exists(ctx context.Context, path string) (bool, error) {
	m, err := paths.Parse(path)
	if err != nil {
		return false, nil
	}

	if m.IsRoot() {
		return true, nil
	}

	ok, err := f.client.BucketExists(ctx, m.Bucket())
	if err != nil {
		return false, errors.Wrap(ErrStorageFailure, err, "bucket existence check failed").
			AddContext("bucket", m.Bucket())
	}
	if !ok {
		return false, nil
	}

	if m.IsBucket() {
		return true, nil
	}

	if _, err := f.Get(ctx, path); err != nil {
		if errors.HasCode(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// IsDir reports whether a path exists and is directory-shaped.
func (f *FS) IsDir(ctx context.Context, path string) (bool, error) {
	m, err := paths.Parse(path)
	if err != nil {
		return false, nil
	}

	ok, err := f.Exists(ctx, path)
	if err != nil {
		return false, err
	}

	return ok && m.IsDir(), nil
}

// Get fetches the descriptor for a file or directory path. File
// descriptors include the payload bytes. Bucket and root paths have no
// representable object.
func (f *FS) Get(ctx context.Context, path string) (Object, error) {
	m, err := paths.Parse(path)
	if err != nil {
		return nil, err
	}

	if m.IsRoot() || m.IsBucket() {
		return nil, errors.Newf(ErrBucketNoObject, "%q has no representable object", path)
	}

	f.opLogger("get").Debug("fetching object", zap.String("path", m.Path()))

	if m.IsFile() {
		return f.getFile(ctx, m)
	}
	return f.getFolder(ctx, m)
}

// GetFile is Get restricted to file paths.
func (f *FS) GetFile(ctx context.Context, path string) (*File, error) {
	obj, err := f.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	file, ok := obj.(*File)
	if !ok {
		return nil, errors.Newf(ErrInvalidFilePath, "%q is not a file path", path)
	}
	return file, nil
}

func (f *FS) getFile(ctx context.Context, m paths.Match) (*File, error) {
	obj, err := f.client.GetObject(ctx, m.Bucket(), m.RelativePath(), minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(ErrStorageFailure, err, "get object failed").
			AddContext("path", m.Path())
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, notFound(m.Path())
		}
		return nil, errors.Wrap(ErrStorageFailure, err, "reading object failed").
			AddContext("path", m.Path())
	}

	stat, err := f.client.StatObject(ctx, m.Bucket(), m.RelativePath(), minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, notFound(m.Path())
		}
		return nil, errors.Wrap(ErrStorageFailure, err, "stat object failed").
			AddContext("path", m.Path())
	}

	return &File{
		ObjectData: ObjectData{
			Name:     m.Filename(),
			Path:     m.Path(),
			Metadata: metadataFromInfo(stat),
		},
		Data: data,
	}, nil
}

// getFolder locates a directory by listing its parent and matching the
// directory entry (common prefix or marker object).
func (f *FS) getFolder(ctx context.Context, m paths.Match) (*Folder, error) {
	parent, err := m.Parent()
	if err != nil {
		return nil, err
	}

	objects, err := f.objectsAt(ctx, parent)
	if err != nil {
		return nil, err
	}

	for _, obj := range objects {
		if obj.Key != m.RelativePath() {
			continue
		}
		return &Folder{
			ObjectData: ObjectData{
				Name:     m.Basename(),
				Path:     m.Path(),
				Metadata: metadataFromInfo(obj),
			},
		}, nil
	}

	return nil, notFound(m.Path())
}

// GetLastObject returns the most recently modified file in a
// directory, or nil when the directory holds no files.
func (f *FS) GetLastObject(ctx context.Context, path string) (*File, error) {
	m, err := requireDir(path)
	if err != nil {
		return nil, err
	}

	names, err := f.ListDir(ctx, path, FilesOnly())
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	return f.GetFile(ctx, paths.Join("/"+m.Bucket()+"/", m.Prefix()+names[0]))
}
