package block

// AtlasTiles is the number of tiles along each edge of the terrain atlas.
const AtlasTiles = 16

// TileUV returns the normalized atlas rectangle of tile.
func TileUV(tile int) (u0, v0, u1, v1 float32) {
	const step = 1.0 / AtlasTiles
	col := tile % AtlasTiles
	row := tile / AtlasTiles
	u0 = float32(col) * step
	v0 = float32(row) * step
	return u0, v0, u0 + step, v0 + step
}
