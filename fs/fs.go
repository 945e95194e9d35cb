// Package fs presents a MinIO/S3 namespace as a filesystem-like
// hierarchy. Paths use "/" separators; the first segment is the
// bucket, deeper segments map to object keys. Directories are buckets,
// zero-byte marker objects with a trailing-slash key, or prefixes
// inferred from listings; files are regular object keys.
//
// All storage semantics are delegated to minio-go. This package only
// translates paths to key operations and storage responses back into
// path-shaped results.
package fs

import (
	"context"
	"sort"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/TFMV/miniofs/paths"
	"github.com/TFMV/miniofs/pkg/errors"
	"github.com/TFMV/miniofs/utils"
)

// Options configures an FS.
type Options struct {
	// Endpoint is host:port of the object-storage service. Used by
	// Connect only.
	Endpoint  string
	AccessKey string
	SecretKey string
	Secure    bool
	Region    string

	// Logger receives debug traces of every operation. Defaults to a
	// nop logger.
	Logger *zap.Logger
}

// SetDefaults fills in zero values and returns the options.
func (o *Options) SetDefaults() *Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// FS is a filesystem-style view over a MinIO/S3 client. All methods
// are thin translations onto the wrapped client; FS holds no state of
// its own and is safe for concurrent use.
type FS struct {
	client *minio.Client
	region string
	log    *zap.Logger
}

// New wraps an existing minio client.
func New(client *minio.Client, opts *Options) *FS {
	if opts == nil {
		opts = &Options{}
	}
	o := opts.SetDefaults()

	return &FS{
		client: client,
		region: o.Region,
		log:    o.Logger,
	}
}

// Connect builds a minio client from credentials and wraps it.
func Connect(opts *Options) (*FS, error) {
	if opts == nil {
		opts = &Options{}
	}
	o := opts.SetDefaults()

	client, err := minio.New(o.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.AccessKey, o.SecretKey, ""),
		Secure: o.Secure,
		Region: o.Region,
	})
	if err != nil {
		return nil, errors.Wrap(ErrStorageFailure, err, "failed to build storage client").
			AddContext("endpoint", o.Endpoint)
	}

	return New(client, o), nil
}

// Client exposes the wrapped minio client for operations this package
// does not cover.
func (f *FS) Client() *minio.Client {
	return f.client
}

// opLogger tags a debug logger with the operation name and a unique
// operation id.
func (f *FS) opLogger(op string) *zap.Logger {
	return f.log.With(zap.String("op", op), zap.String("op_id", utils.GenerateULIDString()))
}

// objectsAt lists the direct children of a directory, most recently
// modified first. The directory's own marker object is filtered out so
// an explicitly created directory does not list itself.
func (f *FS) objectsAt(ctx context.Context, m paths.Match) ([]minio.ObjectInfo, error) {
	var objects []minio.ObjectInfo

	for obj := range f.client.ListObjects(ctx, m.Bucket(), minio.ListObjectsOptions{
		Prefix:    m.Prefix(),
		Recursive: false,
	}) {
		if obj.Err != nil {
			return nil, errors.Wrap(ErrStorageFailure, obj.Err, "listing failed").
				AddContext("path", m.Path())
		}
		if obj.Key == m.Prefix() {
			continue
		}
		objects = append(objects, obj)
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return lastModified(objects[i].LastModified).After(lastModified(objects[j].LastModified))
	})

	return objects, nil
}

// buckets lists all buckets, most recently created first.
func (f *FS) buckets(ctx context.Context) ([]minio.BucketInfo, error) {
	infos, err := f.client.ListBuckets(ctx)
	if err != nil {
		return nil, errors.Wrap(ErrStorageFailure, err, "listing buckets failed")
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return lastModified(infos[i].CreationDate).After(lastModified(infos[j].CreationDate))
	})

	return infos, nil
}

// childMatch converts a listing entry back into an absolute path match.
func childMatch(bucket string, obj minio.ObjectInfo) (paths.Match, error) {
	return paths.Parse("/" + bucket + "/" + obj.Key)
}

// requireDir rejects file-shaped paths for directory-only operations.
func requireDir(p string) (paths.Match, error) {
	m, err := paths.Parse(p)
	if err != nil {
		return paths.Match{}, err
	}
	if m.IsFile() {
		return paths.Match{}, errors.Newf(ErrInvalidDirectoryPath,
			"%q is not a valid directory path: must be absolute and end with /", p)
	}
	return m, nil
}
