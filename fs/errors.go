package fs

import (
	fastererrors "github.com/go-faster/errors"
	"github.com/minio/minio-go/v7"

	"github.com/TFMV/miniofs/pkg/errors"
)

// FS-specific error codes
var (
	ErrInvalidDirectoryPath = errors.MustNewCode("fs.invalid_directory_path")
	ErrInvalidFilePath      = errors.MustNewCode("fs.invalid_file_path")
	ErrRootImmutable        = errors.MustNewCode("fs.root_immutable")
	ErrNotFound             = errors.MustNewCode("fs.not_found")
	ErrDirNotEmpty          = errors.MustNewCode("fs.directory_not_empty")
	ErrBucketNoObject       = errors.MustNewCode("fs.bucket_has_no_object")
	ErrCopyShape            = errors.MustNewCode("fs.invalid_copy_shape")
	ErrStorageFailure       = errors.MustNewCode("fs.storage_failure")
)

// Sentinels for errors.Is checks by callers that don't care about codes.
var (
	// ErrDirectoryNotEmpty is returned when a non-recursive removal hits
	// a directory that still has content.
	ErrDirectoryNotEmpty = fastererrors.New("miniofs: directory not empty")

	// ErrNoSuchPath is returned when a path resolves to nothing.
	ErrNoSuchPath = fastererrors.New("miniofs: no such file or directory")
)

func notFound(path string) *errors.Error {
	return errors.Wrapf(ErrNotFound, ErrNoSuchPath, "cannot access %q", path).
		AddContext("path", path)
}

func dirNotEmpty(path string) *errors.Error {
	return errors.Wrap(ErrDirNotEmpty, ErrDirectoryNotEmpty, "cannot delete non-empty directory without recursive").
		AddContext("path", path)
}

// s3Code extracts the S3 error code from a minio-go error, empty for
// anything else.
func s3Code(err error) string {
	if err == nil {
		return ""
	}
	return minio.ToErrorResponse(err).Code
}

func isNoSuchKey(err error) bool {
	switch s3Code(err) {
	case "NoSuchKey", "NoSuchBucket", "NoSuchObject":
		return true
	}
	return false
}

func isBucketNotEmpty(err error) bool {
	return s3Code(err) == "BucketNotEmpty"
}
