package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"os"

	"crosscraft/internal/block"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

// TilePixels is the edge of one atlas tile in the generated fallback atlas.
const TilePixels = 16

// DecodeAtlas decodes an atlas image and converts it to RGBA. Atlases whose
// edge is not a multiple of the tile count are rescaled with nearest neighbour
// so every tile keeps whole pixels.
func DecodeAtlas(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode atlas: %w", err)
	}
	b := img.Bounds()
	side := max(b.Dx(), b.Dy())
	if rem := side % block.AtlasTiles; rem != 0 {
		side += block.AtlasTiles - rem
	}
	rgba := image.NewRGBA(image.Rect(0, 0, side, side))
	if b.Dx() == side && b.Dy() == side {
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.NearestNeighbor.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
	}
	return rgba, nil
}

// LoadAtlas reads the atlas at path, falling back to a generated atlas when
// the file is missing or unreadable.
func LoadAtlas(path string, log logrus.FieldLogger) *image.RGBA {
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		var rgba *image.RGBA
		if rgba, err = DecodeAtlas(f); err == nil {
			return rgba
		}
	}
	log.WithError(err).WithField("path", path).Warn("using generated terrain atlas")
	return FallbackAtlas()
}

// FallbackAtlas paints a flat colour per tile used by the block catalogue.
// Flora tiles are a stem on a transparent background, glass is a frame.
func FallbackAtlas() *image.RGBA {
	const side = block.AtlasTiles * TilePixels
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for i := range block.Count {
		id := block.ID(i)
		if id == block.Air || !id.Known() {
			continue
		}
		for _, f := range []block.Face{block.FaceSide, block.FaceTop, block.FaceBottom} {
			paintTile(img, id, id.Tile(f))
		}
	}
	return img
}

func paintTile(img *image.RGBA, id block.ID, tile int) {
	ox := (tile % block.AtlasTiles) * TilePixels
	oy := (tile / block.AtlasTiles) * TilePixels
	c := tileColor(tile)
	for y := range TilePixels {
		for x := range TilePixels {
			px := c
			switch {
			case id.Flora():
				if x < 7 || x > 8 {
					px = color.RGBA{}
				}
			case id == block.Glass:
				if x > 0 && x < TilePixels-1 && y > 0 && y < TilePixels-1 {
					px = color.RGBA{}
				}
			case id.Transparent():
				px.A = 160
			case (x+y)%4 == 0:
				px.R, px.G, px.B = px.R/8*7, px.G/8*7, px.B/8*7
			}
			img.SetRGBA(ox+x, oy+y, px)
		}
	}
}

func tileColor(tile int) color.RGBA {
	switch tile {
	case 0:
		return color.RGBA{95, 159, 53, 255}
	case 2, 3:
		return color.RGBA{134, 96, 67, 255}
	case 14:
		return color.RGBA{47, 67, 244, 255}
	case 18:
		return color.RGBA{219, 207, 163, 255}
	case 22:
		return color.RGBA{48, 120, 36, 255}
	case 12, 28:
		return color.RGBA{200, 40, 40, 255}
	case 13:
		return color.RGBA{230, 210, 40, 255}
	}
	v := uint8(96 + (tile*37)%96)
	return color.RGBA{v, v, v, 255}
}

// UploadTexture creates a nearest-filtered 2D texture from img.
func UploadTexture(img *image.RGBA) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	size := img.Rect.Size()
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}
