package fs

import (
	"context"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/TFMV/miniofs/paths"
	"github.com/TFMV/miniofs/pkg/errors"
)

// Rmdir removes a directory. Without recursive it fails on any
// non-empty directory; with recursive it walks the tree breadth-first,
// batch-deleting files and dropping directory markers, and finally
// removes the bucket itself for bucket paths. Rmdir("/", true) wipes
// every bucket.
func (f *FS) Rmdir(ctx context.Context, path string, recursive bool) error {
	m, err := requireDir(path)
	if err != nil {
		return err
	}

	if m.IsRoot() {
		if recursive {
			return f.Truncate(ctx)
		}
		return dirNotEmpty(path)
	}

	f.opLogger("rmdir").Debug("removing directory",
		zap.String("path", m.Path()), zap.Bool("recursive", recursive))

	queue := []paths.Match{m}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		objects, err := f.objectsAt(ctx, cur)
		if err != nil {
			return err
		}
		if len(objects) > 0 && !recursive {
			return dirNotEmpty(path)
		}

		var keys []string
		for _, obj := range objects {
			if isDirInfo(obj) {
				child, err := childMatch(cur.Bucket(), obj)
				if err != nil {
					return err
				}
				queue = append(queue, child)
			} else {
				keys = append(keys, obj.Key)
			}
		}

		if err := f.removeKeys(ctx, cur.Bucket(), keys); err != nil {
			return err
		}

		// Drop the directory's own marker; removing a key that was
		// never written is a no-op.
		if !cur.IsBucket() {
			if err := f.client.RemoveObject(ctx, cur.Bucket(), cur.Prefix(), minio.RemoveObjectOptions{}); err != nil {
				return errors.Wrap(ErrStorageFailure, err, "marker removal failed").
					AddContext("path", cur.Path())
			}
		}
	}

	if m.IsBucket() {
		if err := f.client.RemoveBucket(ctx, m.Bucket()); err != nil {
			if isBucketNotEmpty(err) {
				return dirNotEmpty(path)
			}
			return errors.Wrap(ErrStorageFailure, err, "bucket removal failed").
				AddContext("bucket", m.Bucket())
		}
	}

	return nil
}

// Rm removes a file or directory, like rm (-r).
func (f *FS) Rm(ctx context.Context, path string, recursive bool) error {
	isDir, err := f.IsDir(ctx, path)
	if err != nil {
		return err
	}
	if isDir {
		return f.Rmdir(ctx, path, recursive)
	}

	m, err := paths.Parse(path)
	if err != nil {
		return err
	}

	f.opLogger("rm").Debug("removing file", zap.String("path", m.Path()))

	if err := f.client.RemoveObject(ctx, m.Bucket(), m.RelativePath(), minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(ErrStorageFailure, err, "object removal failed").
			AddContext("path", m.Path())
	}

	return nil
}

// Truncate removes every bucket recursively.
func (f *FS) Truncate(ctx context.Context) error {
	names, err := f.ListDir(ctx, paths.Root)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := f.Rmdir(ctx, paths.Root+name, true); err != nil {
			return err
		}
	}

	return nil
}

// removeKeys batch-deletes object keys within one bucket.
func (f *FS) removeKeys(ctx context.Context, bucket string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	for rerr := range f.client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			return errors.Wrap(ErrStorageFailure, rerr.Err, "batch removal failed").
				AddContext("bucket", bucket).
				AddContext("key", rerr.ObjectName)
		}
	}

	return nil
}
