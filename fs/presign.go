package fs

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/TFMV/miniofs/paths"
	"github.com/TFMV/miniofs/pkg/errors"
)

// DefaultPresignExpiry is used by callers that don't pick their own.
const DefaultPresignExpiry = 7 * 24 * time.Hour

// PresignedGetURL returns a time-limited URL that downloads the file
// at path without credentials. The object must exist.
func (f *FS) PresignedGetURL(ctx context.Context, path string, expiry time.Duration) (*url.URL, error) {
	m, err := f.statFile(ctx, path)
	if err != nil {
		return nil, err
	}

	f.opLogger("presign_get").Debug("presigning GET", zap.String("path", m.Path()))

	u, err := f.client.PresignedGetObject(ctx, m.Bucket(), m.RelativePath(), expiry, url.Values{})
	if err != nil {
		return nil, errors.Wrap(ErrStorageFailure, err, "presigning GET failed").
			AddContext("path", m.Path())
	}
	return u, nil
}

// PresignedPutURL returns a time-limited URL that uploads filename
// into the directory at dirPath without credentials.
func (f *FS) PresignedPutURL(ctx context.Context, dirPath, filename string, expiry time.Duration) (*url.URL, error) {
	m, err := requireDir(dirPath)
	if err != nil {
		return nil, err
	}
	if m.IsRoot() {
		return nil, errors.New(ErrInvalidDirectoryPath, "cannot presign an upload to the root directory")
	}

	f.opLogger("presign_put").Debug("presigning PUT",
		zap.String("path", m.Path()), zap.String("filename", filename))

	u, err := f.client.PresignedPutObject(ctx, m.Bucket(), m.Prefix()+filename, expiry)
	if err != nil {
		return nil, errors.Wrap(ErrStorageFailure, err, "presigning PUT failed").
			AddContext("path", m.Path()).
			AddContext("filename", filename)
	}
	return u, nil
}

// PresignedDeleteURL returns a time-limited URL that deletes the file
// at path without credentials. The object must exist.
func (f *FS) PresignedDeleteURL(ctx context.Context, path string, expiry time.Duration) (*url.URL, error) {
	m, err := f.statFile(ctx, path)
	if err != nil {
		return nil, err
	}

	f.opLogger("presign_delete").Debug("presigning DELETE", zap.String("path", m.Path()))

	u, err := f.client.PresignHeader(ctx, http.MethodDelete, m.Bucket(), m.RelativePath(), expiry, url.Values{}, nil)
	if err != nil {
		return nil, errors.Wrap(ErrStorageFailure, err, "presigning DELETE failed").
			AddContext("path", m.Path())
	}
	return u, nil
}

// statFile parses a file path and confirms the object exists.
func (f *FS) statFile(ctx context.Context, path string) (paths.Match, error) {
	m, err := paths.Parse(path)
	if err != nil {
		return paths.Match{}, err
	}
	if !m.IsFile() {
		return paths.Match{}, errors.Newf(ErrInvalidFilePath, "%q is not a valid file path", path)
	}

	if _, err := f.client.StatObject(ctx, m.Bucket(), m.RelativePath(), minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return paths.Match{}, notFound(m.Path())
		}
		return paths.Match{}, errors.Wrap(ErrStorageFailure, err, "stat object failed").
			AddContext("path", m.Path())
	}

	return m, nil
}
