package graphics

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"testing"

	"crosscraft/internal/block"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, img image.Image) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestDecodeAtlasKeepsSquareAtlas(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	src.Set(3, 5, color.NRGBA{R: 255, A: 255})

	rgba, err := DecodeAtlas(encode(t, src))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), rgba.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(3, 5))
}

func TestDecodeAtlasRescalesToWholeTiles(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	rgba, err := DecodeAtlas(encode(t, src))
	require.NoError(t, err)
	assert.Equal(t, 32, rgba.Bounds().Dx())
	assert.Equal(t, 32, rgba.Bounds().Dy())
}

func TestDecodeAtlasRejectsGarbage(t *testing.T) {
	_, err := DecodeAtlas(bytes.NewReader([]byte("not a png")))
	assert.Error(t, err)
}

func TestFallbackAtlas(t *testing.T) {
	img := FallbackAtlas()
	assert.Equal(t, block.AtlasTiles*TilePixels, img.Bounds().Dx())

	tileOrigin := func(tile int) (int, int) {
		return (tile % block.AtlasTiles) * TilePixels, (tile / block.AtlasTiles) * TilePixels
	}
	x, y := tileOrigin(block.Stone.Tile(block.FaceSide))
	assert.Equal(t, uint8(255), img.RGBAAt(x+1, y+2).A, "solid tiles are opaque")

	x, y = tileOrigin(block.Rose.Tile(block.FaceSide))
	assert.Zero(t, img.RGBAAt(x, y).A, "flora background is cut out")
	assert.Equal(t, uint8(255), img.RGBAAt(x+7, y).A)

	x, y = tileOrigin(block.Glass.Tile(block.FaceSide))
	assert.Zero(t, img.RGBAAt(x+5, y+5).A)
	assert.Equal(t, uint8(255), img.RGBAAt(x, y+5).A)
}

func TestLoadAtlasFallsBack(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	img := LoadAtlas(filepath.Join(t.TempDir(), "missing.png"), log)
	assert.Equal(t, FallbackAtlas().Pix, img.Pix)
}

func TestCameraViewport(t *testing.T) {
	c := NewCamera(900, 600)
	assert.InDelta(t, 1.5, c.AspectRatio, 1e-6)
	c.SetViewport(800, 0)
	assert.InDelta(t, 1.5, c.AspectRatio, 1e-6, "minimized window keeps the last aspect")
}
