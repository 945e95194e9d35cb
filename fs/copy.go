package fs

import (
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/TFMV/miniofs/paths"
	"github.com/TFMV/miniofs/pkg/errors"
)

// destination resolves where Cp/Mv should land. Files follow the usual
// inference. A directory copied into an existing directory is nested
// under it by name; into a missing one it becomes that directory. A
// directory can never land on a file path.
func (f *FS) destination(ctx context.Context, from, to paths.Match) (paths.Match, error) {
	if from.IsFile() {
		return paths.InferDestination(from, to)
	}

	if !to.IsDir() {
		return paths.Match{}, errors.Newf(ErrCopyShape,
			"cannot copy directory %q onto file path %q", from.Path(), to.Path())
	}

	ok, err := f.Exists(ctx, to.Path())
	if err != nil {
		return paths.Match{}, err
	}
	if ok {
		name := strings.TrimSuffix(from.Basename(), "/")
		return paths.Parse(paths.AsDir(paths.Join(to.Path(), name)))
	}

	return to, nil
}

// Cp copies a file or, recursively, a directory, like cp (-r). File
// copies are server-side copy-object calls; no payload moves through
// the client.
func (f *FS) Cp(ctx context.Context, fromPath, toPath string, recursive bool) error {
	from, err := paths.Parse(fromPath)
	if err != nil {
		return err
	}
	to, err := paths.Parse(toPath)
	if err != nil {
		return err
	}

	dst, err := f.destination(ctx, from, to)
	if err != nil {
		return err
	}

	if from.IsDir() {
		if !recursive {
			return errors.Newf(ErrCopyShape, "copying directory %q requires recursive", fromPath)
		}
		return f.copyRecursively(ctx, from.Path(), dst.Path())
	}

	f.opLogger("cp").Debug("copying object",
		zap.String("from", from.Path()), zap.String("to", dst.Path()))

	_, err = f.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: dst.Bucket(), Object: dst.RelativePath()},
		minio.CopySrcOptions{Bucket: from.Bucket(), Object: from.RelativePath()})
	if err != nil {
		if isNoSuchKey(err) {
			return notFound(from.Path())
		}
		return errors.Wrap(ErrStorageFailure, err, "copy object failed").
			AddContext("from", from.Path()).
			AddContext("to", dst.Path())
	}

	return nil
}

type pendingCopy struct {
	from string
	to   string
}

// copyRecursively replicates the tree under fromPath below toPath:
// breadth-first walk collecting file copies, directory markers for the
// leaves, then one server-side copy per file.
func (f *FS) copyRecursively(ctx context.Context, fromPath, toPath string) error {
	var files []pendingCopy

	queue := []string{fromPath}
	for len(queue) > 0 {
		cur, err := requireDir(queue[0])
		if err != nil {
			return err
		}
		queue = queue[1:]

		objects, err := f.objectsAt(ctx, cur)
		if err != nil {
			return err
		}

		var dirs []string
		for _, obj := range objects {
			objPath := "/" + cur.Bucket() + "/" + obj.Key
			if isDirInfo(obj) {
				dirs = append(dirs, objPath)
				continue
			}
			files = append(files, pendingCopy{
				from: objPath,
				to:   paths.Join(toPath, strings.TrimPrefix(objPath, fromPath)),
			})
		}

		// Only the leaves need explicit markers; listings infer the
		// rest from their children.
		if len(dirs) == 0 {
			dest := paths.AsDir(paths.Join(toPath, strings.TrimPrefix(cur.Path(), fromPath)))
			if err := f.Mkdirs(ctx, dest); err != nil {
				return err
			}
		}

		queue = append(queue, dirs...)
	}

	for _, pc := range files {
		if err := f.Cp(ctx, pc.from, pc.to, false); err != nil {
			return err
		}
	}

	return nil
}

// Mv moves a file or directory, like mv. The source is removed only
// once the destination is confirmed to exist, so a failed copy never
// loses data.
func (f *FS) Mv(ctx context.Context, fromPath, toPath string, recursive bool) error {
	from, err := paths.Parse(fromPath)
	if err != nil {
		return err
	}
	to, err := paths.Parse(toPath)
	if err != nil {
		return err
	}

	dst, err := f.destination(ctx, from, to)
	if err != nil {
		return err
	}

	f.opLogger("mv").Debug("moving",
		zap.String("from", from.Path()), zap.String("to", dst.Path()))

	cpErr := f.Cp(ctx, fromPath, toPath, recursive)

	srcExists, err := f.Exists(ctx, fromPath)
	if err != nil {
		return err
	}
	dstExists, err := f.Exists(ctx, dst.Path())
	if err != nil {
		return err
	}
	if srcExists && dstExists {
		if err := f.Rm(ctx, fromPath, recursive); err != nil && cpErr == nil {
			return err
		}
	}

	return cpErr
}
