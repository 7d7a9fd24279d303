package skyisle

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestTextureLibraryPutGet(t *testing.T) {
	l := NewTextureLibrary(nil)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	l.Put("b", img)
	l.Put("a", img)

	if got, ok := l.Get("a"); !ok || got != img {
		t.Error("Get should return the registered image")
	}
	if _, ok := l.Get("missing"); ok {
		t.Error("Get should fail for a missing name")
	}
	if names := l.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names = %v, want [a b]", names)
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
	if l.Ebiten("") != nil || l.Ebiten("missing") != nil {
		t.Error("Ebiten should be nil for unknown names")
	}
}

func TestTextureLibraryStaleUploadNotCached(t *testing.T) {
	l := NewTextureLibrary(nil)
	old := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fresh := image.NewRGBA(image.Rect(0, 0, 8, 8))
	l.Put("earth", old)
	l.Put("earth", fresh)

	if _, ok := l.cacheUpload("earth", old, ebiten.NewImage(4, 4)); ok {
		t.Fatal("upload of a replaced image should be rejected")
	}
	got := l.Ebiten("earth")
	if got == nil || got.Bounds().Dx() != 8 {
		t.Fatalf("Ebiten should upload the current image, got %v", got)
	}
	if l.Ebiten("earth") != got {
		t.Error("second Ebiten call should hit the cache")
	}
}

func TestTextureLibraryLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"textures/grass.png": {Data: pngBytes(t, 8, 4)},
		"textures/water.png": {Data: pngBytes(t, 2, 2)},
	}
	l := NewTextureLibrary(nil)
	err := l.Load(context.Background(), fsys, map[string]string{
		TextureGrass: "textures/grass.png",
		TextureWater: "textures/water.png",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	img, ok := l.Get(TextureGrass)
	if !ok || img.Bounds().Dx() != 8 {
		t.Errorf("grass = %v, %v", img, ok)
	}
}

func TestTextureLibraryLoadPartialFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"textures/grass.png": {Data: pngBytes(t, 2, 2)},
		"textures/bad.png":   {Data: []byte("not a png")},
	}
	l := NewTextureLibrary(nil)
	err := l.Load(context.Background(), fsys, map[string]string{
		TextureGrass: "textures/grass.png",
		TextureEarth: "textures/earth.png",
		TextureBush:  "textures/bad.png",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, name := range []string{`"earth"`, `"bush"`} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q should mention %s", err, name)
		}
	}
	if _, ok := l.Get(TextureGrass); !ok {
		t.Error("good textures should load despite failures")
	}
}

func TestTextureLibraryLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewTextureLibrary(nil)
	err := l.Load(ctx, fstest.MapFS{}, DefaultTexturePaths)
	if err != context.Canceled {
		t.Errorf("Load = %v, want context.Canceled", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d, want 0", l.Len())
	}
}

func TestTextureLibraryLoadAsync(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: pngBytes(t, 1, 1)}}
	l := NewTextureLibrary(nil)
	done := l.LoadAsync(context.Background(), fsys, map[string]string{"a": "a.png"})
	if err := <-done; err != nil {
		t.Fatalf("LoadAsync: %v", err)
	}
	if _, ok := <-done; ok {
		t.Error("channel should be closed after the result")
	}
	if _, ok := l.Get("a"); !ok {
		t.Error("texture should be registered")
	}
}
