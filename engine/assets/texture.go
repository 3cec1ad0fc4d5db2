package assets

import (
	"image"
	"os"

	// register decoders for the formats the texture folder may hold
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/swift2d/engine/engine/core"
)

// TextureInfo is the engine-side record of a texture on disk. Pixel data is
// never held; only the header is decoded, which is all the headless core
// needs for sprite sizing.
type TextureInfo struct {
	Name   string
	Path   string
	Width  uint32
	Height uint32
	Format string
}

type textureLoader struct{}

func (textureLoader) Load(path string) (interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.ResourceLoadError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, &core.ResourceLoadError{Path: path, Err: err}
	}

	return &TextureInfo{
		Path:   path,
		Width:  uint32(cfg.Width),
		Height: uint32(cfg.Height),
		Format: format,
	}, nil
}
