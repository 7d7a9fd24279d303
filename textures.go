package skyisle

import (
	"context"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"sort"
	"sync"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/imagex"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultTexturePaths maps the island texture names to their asset files.
var DefaultTexturePaths = map[string]string{
	TextureEarth:    "textures/earth.png",
	TextureGrass:    "textures/grass.png",
	TextureBush:     "textures/bush.png",
	TextureMountain: "textures/mountain.png",
	TextureWater:    "textures/water.png",
	TextureNebula:   "textures/nebula.png",
}

// TextureLibrary maps texture names to decoded images. Loads may run in
// the background; the render thread only ever reads under the lock, so a
// texture appears on the first frame after its load finished. GPU copies
// are created lazily on first use.
type TextureLibrary struct {
	mu     sync.RWMutex
	images map[string]image.Image
	cache  map[string]*ebiten.Image
	log    *slog.Logger
}

// NewTextureLibrary creates an empty library.
func NewTextureLibrary(log *slog.Logger) *TextureLibrary {
	if log == nil {
		log = slog.Default()
	}
	return &TextureLibrary{
		images: make(map[string]image.Image),
		cache:  make(map[string]*ebiten.Image),
		log:    log,
	}
}

// Put registers img under name, replacing any previous image.
func (l *TextureLibrary) Put(name string, img image.Image) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.images[name] = img
	if old, ok := l.cache[name]; ok {
		old.Deallocate()
		delete(l.cache, name)
	}
}

// Get returns the image registered under name.
func (l *TextureLibrary) Get(name string) (image.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.images[name]
	return img, ok
}

// Len returns the number of registered images.
func (l *TextureLibrary) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.images)
}

// Names returns the registered names in sorted order.
func (l *TextureLibrary) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.images))
	for name := range l.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ebiten returns the GPU image for name, uploading it on first use.
// Must be called from the render thread.
func (l *TextureLibrary) Ebiten(name string) *ebiten.Image {
	if name == "" {
		return nil
	}
	l.mu.RLock()
	img, ok := l.cache[name]
	src := l.images[name]
	l.mu.RUnlock()
	if ok {
		return img
	}
	if src == nil {
		return nil
	}
	img = ebiten.NewImageFromImage(src)
	if cached, ok := l.cacheUpload(name, src, img); ok {
		return cached
	}
	// Replaced by Put during the upload.
	img.Deallocate()
	return l.Ebiten(name)
}

// cacheUpload stores img as the GPU copy of src unless name has been
// re-registered since src was read. It returns the cached image, which is
// an earlier upload of the same src when one raced ahead.
func (l *TextureLibrary) cacheUpload(name string, src image.Image, img *ebiten.Image) (*ebiten.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.images[name] != src {
		return nil, false
	}
	if cached, ok := l.cache[name]; ok {
		if cached != img {
			img.Deallocate()
		}
		return cached, true
	}
	l.cache[name] = img
	return img, true
}

// Load decodes every path in paths from fsys concurrently and registers
// the results under their names. A failed texture is logged and skipped;
// the returned error joins all failures and is nil when every load
// succeeded. Cancelling ctx abandons loads that have not started.
func (l *TextureLibrary) Load(ctx context.Context, fsys fs.FS, paths map[string]string) error {
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	var (
		mu   sync.Mutex
		errs []error
	)
	for name, path := range paths {
		eg.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			img, _, err := imagex.OpenFS(fsys, path)
			if err != nil {
				err = fmt.Errorf("texture %q: %w", name, err)
				l.log.Warn("texture load failed", "name", name, "path", path, "err", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}
			l.Put(name, img)
			l.log.Debug("texture loaded", "name", name, "size", img.Bounds().Size())
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// LoadAsync runs Load in the background. The returned channel receives the
// result once and is then closed. Failures are also logged.
func (l *TextureLibrary) LoadAsync(ctx context.Context, fsys fs.FS, paths map[string]string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- errors.Log(l.Load(ctx, fsys, paths))
	}()
	return done
}
