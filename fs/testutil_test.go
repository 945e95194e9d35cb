package fs_test

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/miniofs/fs"
	"github.com/TFMV/miniofs/paths"
)

var fileContent = []byte("test")

// newTestFS spins up an in-process fake S3 server and returns a client
// wired to it. Every test gets its own empty store.
func newTestFS(t *testing.T) *fs.FS {
	t.Helper()

	backend := s3mem.New()
	server := httptest.NewServer(gofakes3.New(backend).Server())
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	client, err := fs.Connect(&fs.Options{
		Endpoint:  u.Host,
		AccessKey: "test-access",
		SecretKey: "test-secret",
		Region:    "us-east-1",
	})
	require.NoError(t, err)

	return client
}

// tree describes a fixture hierarchy: nil values are files holding
// fileContent, nested trees are directories (empty tree, empty dir).
type tree map[string]any

// buildTree materializes a fixture under base through the public API,
// the same way a caller would.
func buildTree(t *testing.T, client *fs.FS, base string, fixture tree) {
	t.Helper()
	ctx := context.Background()

	for name, value := range fixture {
		abs := paths.Join(base, name)
		switch v := value.(type) {
		case nil:
			require.NoError(t, client.Mkdirs(ctx, paths.AsDir(base)))
			require.NoError(t, client.PutData(ctx, abs, fileContent, nil))
		case tree:
			if len(v) == 0 {
				require.NoError(t, client.Mkdirs(ctx, paths.AsDir(abs)))
			} else {
				buildTree(t, client, abs, v)
			}
		default:
			t.Fatalf("invalid fixture value for %q: %T", name, value)
		}
	}
}

// mockFS builds a client with a fixture hierarchy already in place.
func mockFS(t *testing.T, fixture tree) *fs.FS {
	t.Helper()

	client := newTestFS(t)
	buildTree(t, client, paths.Root, fixture)
	return client
}

func mustExist(t *testing.T, client *fs.FS, path string) {
	t.Helper()

	ok, err := client.Exists(context.Background(), path)
	require.NoError(t, err)
	require.True(t, ok, "expected %q to exist", path)
}

func mustNotExist(t *testing.T, client *fs.FS, path string) {
	t.Helper()

	ok, err := client.Exists(context.Background(), path)
	require.NoError(t, err)
	require.False(t, ok, "expected %q to not exist", path)
}
