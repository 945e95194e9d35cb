package fs

import (
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// userMetaPrefix is what S3 prepends to user-supplied metadata keys on
// the wire.
const userMetaPrefix = "X-Amz-Meta-"

// Metadata describes an object or directory as reported by the store.
type Metadata struct {
	IsDir        bool
	LastModified time.Time
	Size         int64
	ContentType  string
	// User holds user-supplied metadata, wire prefix stripped and keys
	// lowercased.
	User map[string]string
}

// Object is the tagged union of descriptor kinds returned by Get:
// *File or *Folder.
type Object interface {
	Info() ObjectData
}

// ObjectData is the common part of every descriptor. Descriptors are
// built fresh from a single storage response and carry no live state.
type ObjectData struct {
	Name     string
	Path     string
	Metadata Metadata
}

// File is a file descriptor including its payload.
type File struct {
	ObjectData
	Data []byte
}

// Folder is a directory descriptor.
type Folder struct {
	ObjectData
}

func (f *File) Info() ObjectData   { return f.ObjectData }
func (f *Folder) Info() ObjectData { return f.ObjectData }

// epochUTC stands in for timestamps the store did not report.
var epochUTC = time.Unix(0, 0).UTC()

func lastModified(t time.Time) time.Time {
	if t.IsZero() {
		return epochUTC
	}
	return t
}

// isDirInfo reports whether a listing entry denotes a directory
// (common prefix or directory-marker key).
func isDirInfo(obj minio.ObjectInfo) bool {
	return strings.HasSuffix(obj.Key, "/")
}

func metadataFromInfo(obj minio.ObjectInfo) Metadata {
	return Metadata{
		IsDir:        isDirInfo(obj),
		LastModified: lastModified(obj.LastModified),
		Size:         obj.Size,
		ContentType:  obj.ContentType,
		User:         extractUserMetadata(obj),
	}
}

// extractUserMetadata collects user metadata from both the parsed map
// and the raw response headers, stripping the wire prefix and
// lowercasing keys.
func extractUserMetadata(obj minio.ObjectInfo) map[string]string {
	out := make(map[string]string)
	for key, value := range obj.UserMetadata {
		out[strings.ToLower(strings.TrimPrefix(key, userMetaPrefix))] = value
	}
	for key, values := range obj.Metadata {
		if !strings.HasPrefix(http.CanonicalHeaderKey(key), userMetaPrefix) || len(values) == 0 {
			continue
		}
		out[strings.ToLower(strings.TrimPrefix(http.CanonicalHeaderKey(key), userMetaPrefix))] = values[0]
	}
	return out
}
