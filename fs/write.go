package fs

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/TFMV/miniofs/paths"
	"github.com/TFMV/miniofs/pkg/errors"
)

// Mkdirs creates a directory path, parents included, like mkdir -p.
// The bucket is created when missing; deeper paths get a zero-byte
// directory-marker object at the prefix.
func (f *FS) Mkdirs(ctx context.Context, path string) error {
	m, err := requireDir(path)
	if err != nil {
		return err
	}

	if m.IsRoot() {
		return errors.New(ErrRootImmutable, "cannot create the root directory")
	}

	f.opLogger("mkdirs").Debug("creating directory", zap.String("path", m.Path()))

	ok, err := f.client.BucketExists(ctx, m.Bucket())
	if err != nil {
		return errors.Wrap(ErrStorageFailure, err, "bucket existence check failed").
			AddContext("bucket", m.Bucket())
	}
	if !ok {
		if err := f.client.MakeBucket(ctx, m.Bucket(), minio.MakeBucketOptions{Region: f.region}); err != nil {
			return errors.Wrap(ErrStorageFailure, err, "bucket creation failed").
				AddContext("bucket", m.Bucket())
		}
	}

	if m.IsBucket() {
		return nil
	}

	// A single marker at the deepest prefix is enough; listings infer
	// the intermediate directories from it.
	_, err = f.client.PutObject(ctx, m.Bucket(), m.Prefix(), bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	if err != nil {
		return errors.Wrap(ErrStorageFailure, err, "directory marker creation failed").
			AddContext("path", m.Path())
	}

	return nil
}

// PutData stores bytes at a file path, with optional user metadata.
func (f *FS) PutData(ctx context.Context, path string, data []byte, metadata map[string]string) error {
	m, err := paths.Parse(path)
	if err != nil {
		return err
	}
	if !m.IsFile() {
		return errors.Newf(ErrInvalidFilePath, "%q is not a valid file path", path)
	}

	f.opLogger("put_data").Debug("storing object",
		zap.String("path", m.Path()), zap.Int("size", len(data)))

	_, err = f.client.PutObject(ctx, m.Bucket(), m.RelativePath(),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{UserMetadata: metadata})
	if err != nil {
		return errors.Wrap(ErrStorageFailure, err, "put object failed").
			AddContext("path", m.Path())
	}

	return nil
}

// PutFile uploads a local file. When toPath is directory-shaped the
// local basename is appended.
func (f *FS) PutFile(ctx context.Context, localPath, toPath string, metadata map[string]string) error {
	m, err := paths.Parse(toPath)
	if err != nil {
		return err
	}

	if m.IsDir() {
		m, err = paths.Parse(paths.Join(m.Path(), filepath.Base(localPath)))
		if err != nil {
			return err
		}
	}

	f.opLogger("put_file").Debug("uploading file",
		zap.String("local", localPath), zap.String("path", m.Path()))

	_, err = f.client.FPutObject(ctx, m.Bucket(), m.RelativePath(), localPath,
		minio.PutObjectOptions{UserMetadata: metadata})
	if err != nil {
		return errors.Wrap(ErrStorageFailure, err, "file upload failed").
			AddContext("local", localPath).
			AddContext("path", m.Path())
	}

	return nil
}
