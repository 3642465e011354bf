package tiled

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// Provider fetches the raw bytes of a document or image. rel is a slash
// separated path relative to base, or an absolute path.
type Provider interface {
	Read(base, rel string) ([]byte, error)
}

// FileProvider reads from the operating system's filesystem.
type FileProvider struct{}

func (FileProvider) Read(base, rel string) ([]byte, error) {
	p := filepath.FromSlash(rel)
	if !filepath.IsAbs(p) {
		p = filepath.Join(filepath.FromSlash(base), p)
	}
	return os.ReadFile(p)
}

// FSProvider reads from an fs.FS such as an embed.FS.
type FSProvider struct {
	FS fs.FS
}

func (p FSProvider) Read(base, rel string) ([]byte, error) {
	return fs.ReadFile(p.FS, path.Join(base, rel))
}

// ImageLoader turns the resolved path of an image into a handle of type I.
// The handle type is up to the caller: a decoded image.Image, a GPU texture,
// or just the path itself (see LazyLoader).
type ImageLoader[I any] interface {
	Load(path string) (I, error)
}

// Template is a parsed object template (.tx document).
type Template struct {
	// Path is the resolved path of the .tx document.
	Path   string
	Object *Object
	// TileSetSource and FirstGID describe the tileset the template's GID
	// refers to. TileSetSource is empty when the template has none.
	TileSetSource string
	FirstGID      GID
}

// Option configures a ResourceManager.
type Option func(*managerOptions)

type managerOptions struct {
	provider Provider
	base     string
}

// WithProvider sets how documents and images are read. The default is
// FileProvider.
func WithProvider(p Provider) Option {
	return func(o *managerOptions) {
		o.provider = p
	}
}

// WithBasePath sets the directory every relative path is resolved against.
func WithBasePath(base string) Option {
	return func(o *managerOptions) {
		o.base = filepath.ToSlash(base)
	}
}

// ResourceManager mediates every byte and image fetch made while loading
// maps and memoizes images and templates by resolved path. One manager can
// be reused across several loads so that shared tileset images are loaded
// once.
//
// The caches are guarded by a mutex; a loader is called at most once per
// path even when the manager is shared between goroutines.
type ResourceManager[I any] struct {
	provider Provider
	loader   ImageLoader[I]
	base     string

	mu        sync.Mutex
	images    map[string]I
	templates map[string]*Template
}

// NewResourceManager returns a manager that loads images with loader.
func NewResourceManager[I any](loader ImageLoader[I], opts ...Option) *ResourceManager[I] {
	o := managerOptions{provider: FileProvider{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &ResourceManager[I]{
		provider:  o.provider,
		loader:    loader,
		base:      o.base,
		images:    make(map[string]I),
		templates: make(map[string]*Template),
	}
}

// NewLazyManager returns a manager whose image handles are the resolved
// image paths; nothing is decoded.
func NewLazyManager(opts ...Option) *ResourceManager[string] {
	return NewResourceManager[string](LazyLoader{}, opts...)
}

// BasePath returns the directory relative paths are resolved against.
func (rm *ResourceManager[I]) BasePath() string { return rm.base }

// resolve returns the cache key of rel: the slash separated path including
// the base directory.
func (rm *ResourceManager[I]) resolve(rel string) string {
	if path.IsAbs(rel) || filepath.IsAbs(rel) || rm.base == "" {
		return path.Clean(rel)
	}
	return path.Join(rm.base, rel)
}

// ReadFile returns the bytes of the document at rel.
func (rm *ResourceManager[I]) ReadFile(rel string) ([]byte, error) {
	data, err := rm.provider.Read(rm.base, rel)
	if err != nil {
		return nil, &IOError{Path: rm.resolve(rel), Err: err}
	}
	return data, nil
}

// Image returns the image at rel, loading it on first use.
func (rm *ResourceManager[I]) Image(rel string) (I, error) {
	key := rm.resolve(rel)

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if img, ok := rm.images[key]; ok {
		Logger().Debug("tiled: image cache hit", "path", key)
		return img, nil
	}

	Logger().Debug("tiled: loading image", "path", key)
	img, err := rm.loader.Load(key)
	if err != nil {
		var zero I
		return zero, err
	}
	rm.images[key] = img
	return img, nil
}

// Template returns the object template at rel, parsing it on first use.
func (rm *ResourceManager[I]) Template(rel string) (*Template, error) {
	key := rm.resolve(rel)

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if t, ok := rm.templates[key]; ok {
		Logger().Debug("tiled: template cache hit", "path", key)
		return t, nil
	}

	Logger().Debug("tiled: loading template", "path", key)
	data, err := rm.ReadFile(rel)
	if err != nil {
		return nil, err
	}
	b := &builder[I]{rm: rm, dir: path.Dir(rel)}
	t, err := b.parseTemplate(data)
	if err != nil {
		return nil, err
	}
	t.Path = key
	rm.templates[key] = t
	return t, nil
}

// Forget drops the cached image and template stored under the resolved path
// key, so the next request loads it again.
func (rm *ResourceManager[I]) Forget(key string) bool {
	key = path.Clean(filepath.ToSlash(key))

	rm.mu.Lock()
	defer rm.mu.Unlock()

	_, hadImage := rm.images[key]
	_, hadTemplate := rm.templates[key]
	delete(rm.images, key)
	delete(rm.templates, key)
	return hadImage || hadTemplate
}

// Reset empties both caches.
func (rm *ResourceManager[I]) Reset() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.images = make(map[string]I)
	rm.templates = make(map[string]*Template)
}
