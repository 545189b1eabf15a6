package terrain

import (
	"math"

	"crosscraft/internal/block"
	"crosscraft/internal/world"
)

// salts keep the per-feature rolls independent of the height noise.
const (
	saltOre   = 0x6f7265
	saltFlora = 0x666c6f7261
)

// Generator produces heightmap terrain: bedrock floor, stone with ores, a dirt
// band, grass on land and sand with water below the sea level. Flowers and
// trees are scattered on grass. Output depends only on the seed and the block
// coordinates, so a chunk regenerates identically after eviction.
type Generator struct {
	seed        int64
	seaLevel    int
	scale       float64
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewGenerator creates a generator for the given seed and sea level.
func NewGenerator(seed int64, seaLevel int) *Generator {
	return &Generator{
		seed:        seed,
		seaLevel:    seaLevel,
		scale:       1.0 / 64.0,
		amp:         20,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

// HeightAt computes the surface height (block Y) at column (x, z), clamped to [1, height-8].
func (g *Generator) HeightAt(x, z, height int) int {
	n := octaveNoise2D(float64(x)*g.scale, float64(z)*g.scale, g.seed, g.octaves, g.persistence, g.lacunarity)
	h := int(math.Floor(float64(g.seaLevel) - g.amp/2 + n*g.amp))
	return max(1, min(h, height-8))
}

// Generate fills every in-bounds column of c, replacing whatever the storage
// held. Terrain is laid down for all columns before decoration so canopies
// are not overwritten. Lighting is recomputed by the caller.
func (g *Generator) Generate(c *world.Chunk, w *world.World) {
	dims := w.Dims()
	ox, oz := c.Origin()
	var tops [world.ChunkSize][world.ChunkSize]int
	for lx := range world.ChunkSize {
		for lz := range world.ChunkSize {
			x, z := ox+lx, oz+lz
			if !dims.ContainsColumn(x, z) {
				continue
			}
			tops[lx][lz] = g.HeightAt(x, z, dims.Height)
			g.column(w, x, z, tops[lx][lz], dims.Height)
		}
	}
	for lx := range world.ChunkSize {
		for lz := range world.ChunkSize {
			x, z := ox+lx, oz+lz
			if !dims.ContainsColumn(x, z) || w.Block(x, tops[lx][lz], z) != block.Grass {
				continue
			}
			inner := lx >= 2 && lx < world.ChunkSize-2 && lz >= 2 && lz < world.ChunkSize-2
			g.decorate(w, x, z, tops[lx][lz], inner)
		}
	}
}

func (g *Generator) column(w *world.World, x, z, top, height int) {
	w.FillColumn(x, z, top+1, height, block.Air)
	beach := top <= g.seaLevel+1
	w.FillColumn(x, z, 0, 1, block.Bedrock)
	w.FillColumn(x, z, 1, max(top-3, 1), block.Stone)
	for y := 1; y < top-3; y++ {
		if ore := g.ore(x, y, z); ore != block.Air {
			w.FillColumn(x, z, y, y+1, ore)
		}
	}
	if beach {
		w.FillColumn(x, z, max(top-3, 1), top+1, block.Sand)
	} else {
		w.FillColumn(x, z, max(top-3, 1), top, block.Dirt)
		w.FillColumn(x, z, top, top+1, block.Grass)
	}
	if top < g.seaLevel {
		w.FillColumn(x, z, top+1, g.seaLevel+1, block.Water)
	}
}

func (g *Generator) ore(x, y, z int) block.ID {
	r := hash3(int64(x), int64(y), int64(z), g.seed^saltOre) % 400
	switch {
	case r < 4:
		return block.CoalOre
	case r < 6 && y < 40:
		return block.IronOre
	case r < 7 && y < 20:
		return block.GoldOre
	default:
		return block.Air
	}
}

// decorate places a tree or a flower on a grass column. Trees only grow on
// inner columns so the canopy stays inside the chunk.
func (g *Generator) decorate(w *world.World, x, z, top int, inner bool) {
	r := hash3(int64(x), 0, int64(z), g.seed^saltFlora) % 200
	if inner && r < 2 && top+7 < w.Dims().Height {
		g.tree(w, x, z, top+1)
		return
	}
	g.flower(w, x, z, top)
}

func (g *Generator) flower(w *world.World, x, z, top int) {
	switch hash3(int64(x), 0, int64(z), g.seed^saltFlora) % 200 {
	case 2, 3, 4:
		w.FillColumn(x, z, top+1, top+2, block.Dandelion)
	case 5, 6:
		w.FillColumn(x, z, top+1, top+2, block.Rose)
	}
}

// tree grows a four block trunk from base with a leaf canopy around its top.
func (g *Generator) tree(w *world.World, x, z, base int) {
	const trunk = 4
	w.FillColumn(x, z, base-1, base, block.Dirt)
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			y1 := base + trunk
			if abs(dx)+abs(dz) < 2 {
				y1 += 2
			}
			for y := base + trunk - 2; y < y1; y++ {
				if w.Block(x+dx, y, z+dz) == block.Air {
					w.FillColumn(x+dx, z+dz, y, y+1, block.Leaves)
				}
			}
		}
	}
	w.FillColumn(x, z, base, base+trunk+1, block.Log)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
