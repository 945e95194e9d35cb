// Package paths translates filesystem-style absolute paths into
// bucket/prefix/filename coordinates on an object store.
//
// A valid path is absolute, uses "/" separators and decomposes as
// /{bucket}/{prefix...}{filename}. Paths ending in "/" denote
// directories, everything else denotes a file. "/bucket" without a
// trailing slash is not a valid path.
package paths

import (
	"path"
	"regexp"
	"strings"

	"github.com/TFMV/miniofs/pkg/errors"
)

// Root is the top of the hierarchy; its children are buckets.
const Root = "/"

var slashes = regexp.MustCompile(`/+`)

// Match is the parsed form of a filesystem-style path.
type Match struct {
	path     string
	bucket   string
	prefix   string
	filename string
}

// Parse decomposes an absolute path into its bucket, prefix and
// filename parts. Repeated slashes collapse before parsing.
func Parse(p string) (Match, error) {
	if p == "" || !strings.HasPrefix(p, "/") {
		return Match{}, errors.Newf(ErrInvalidPath, "%q is not a valid path: must be absolute", p)
	}

	clean := slashes.ReplaceAllString(p, "/")
	if clean == Root {
		return Match{path: Root}, nil
	}

	rest := clean[1:]
	i := strings.Index(rest, "/")
	if i < 0 {
		return Match{}, errors.Newf(ErrInvalidPath, "%q is not a valid path", p)
	}

	m := Match{path: clean, bucket: rest[:i]}

	key := rest[i+1:]
	if j := strings.LastIndex(key, "/"); j >= 0 {
		m.prefix = key[:j+1]
		m.filename = key[j+1:]
	} else {
		m.filename = key
	}

	return m, nil
}

// MustParse parses a path and panics on malformed input. Reserved for
// tests and compile-time-constant paths.
func MustParse(p string) Match {
	m, err := Parse(p)
	if err != nil {
		panic(err)
	}
	return m
}

// Path returns the normalized path.
func (m Match) Path() string { return m.path }

// Bucket returns the bucket segment, empty at root.
func (m Match) Bucket() string { return m.bucket }

// Prefix returns the "/"-terminated key prefix within the bucket.
// Empty for bucket paths and direct children of a bucket.
func (m Match) Prefix() string { return m.prefix }

// Filename returns the final segment for file paths, empty for
// directory paths.
func (m Match) Filename() string { return m.filename }

// RelativePath returns the object key within the bucket.
func (m Match) RelativePath() string { return m.prefix + m.filename }

func (m Match) IsRoot() bool { return m.path == Root }

// IsBucket reports whether the path addresses a bucket itself.
func (m Match) IsBucket() bool { return m.bucket != "" && m.RelativePath() == "" }

// IsDir reports whether the path is directory-shaped. Root and bucket
// paths are directories.
func (m Match) IsDir() bool { return m.filename == "" }

func (m Match) IsFile() bool { return !m.IsDir() }

// Parent returns the directory containing this path. The parent of a
// bucket (and of root) is root.
func (m Match) Parent() (Match, error) {
	if m.IsRoot() || m.IsBucket() {
		return Parse(Root)
	}
	if m.IsFile() {
		return Parse("/" + m.bucket + "/" + m.prefix)
	}
	return Parse(AsDir(path.Dir(strings.TrimSuffix(m.path, "/"))))
}

// Basename returns the last path segment. Directory paths keep their
// trailing slash.
func (m Match) Basename() string {
	if m.IsFile() {
		return m.filename
	}
	return path.Base(strings.TrimSuffix(m.path, "/")) + "/"
}

func (m Match) String() string { return m.path }

// InferDestination resolves where a file operation on src should land.
// A file-shaped dst wins as-is; a directory-shaped dst gets src's
// filename appended.
func InferDestination(src, dst Match) (Match, error) {
	if !src.IsFile() {
		return Match{}, errors.Newf(ErrInvalidPath, "source %q must be a file path", src.Path())
	}
	if dst.IsFile() {
		return dst, nil
	}
	return Parse(Join(dst.Path(), src.Filename()))
}

// Join joins path elements with "/" without touching any trailing
// slash on the final element.
func Join(elem ...string) string {
	if len(elem) == 0 {
		return ""
	}
	joined := path.Join(elem...)
	if strings.HasSuffix(elem[len(elem)-1], "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}

// AsDir ensures p is directory-shaped.
func AsDir(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}
