package bucket

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidPath = errors.New("bucket: invalid object path")

// Local is a public bucket kept in a directory on disk.
type Local struct {
	name    string
	root    string
	baseURL string
}

// NewLocal creates the bucket directory root/name. Objects are served under baseURL/name/.
func NewLocal(root, name, baseURL string) (*Local, error) {
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Local{
		name:    name,
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (b *Local) Name() string {
	return b.name
}

// Put stores data at objectPath and returns its public URL.
func (b *Local) Put(ctx context.Context, objectPath string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := path.Clean("/" + objectPath)
	if clean == "/" || strings.Contains(objectPath, "..") {
		return "", ErrInvalidPath
	}
	target := filepath.Join(b.root, filepath.FromSlash(clean))

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	return b.PublicURL(strings.TrimPrefix(clean, "/")), nil
}

func (b *Local) PublicURL(objectPath string) string {
	segments := strings.Split(objectPath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return b.baseURL + "/" + b.name + "/" + strings.Join(segments, "/")
}

// Handler serves the bucket read-only. Mount it with the bucket prefix stripped.
func (b *Local) Handler() http.Handler {
	return http.FileServer(noListing{http.Dir(b.root)})
}

type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
