package block

// ID identifies a block type. Zero is air.
type ID uint8

const (
	Air ID = iota
	Stone
	Grass
	Dirt
	Cobblestone
	Planks
	Sapling
	Bedrock
	FlowingWater
	Water
	FlowingLava
	Lava
	Sand
	Gravel
	GoldOre
	IronOre
	CoalOre
	Log
	Leaves
	Sponge
	Glass
)

const (
	Dandelion ID = iota + 37
	Rose
	BrownMushroom
	RedMushroom
	GoldBlock
	IronBlock
	DoubleSlab
	Slab
	Brick
	TNT
	Bookshelf
	MossyCobblestone
	Obsidian
)

// Count is one past the largest known block id.
const Count = int(Obsidian) + 1

// Face selects which texture of a block is wanted.
type Face int

const (
	FaceSide Face = iota
	FaceTop
	FaceBottom
)

type properties struct {
	name      string
	transmits bool // sky light passes through
	flora     bool // drawn as crossed quads
	clear     bool // drawn in the transparent pass
	falls     bool
	fluid     bool
	side      int // atlas tile index
	top       int
	bottom    int
}

var table [256]properties

func define(id ID, p properties) {
	if p.top == 0 && p.bottom == 0 {
		p.top, p.bottom = p.side, p.side
	}
	table[id] = p
}

func init() {
	define(Air, properties{name: "air", transmits: true})
	define(Stone, properties{name: "stone", side: 1})
	define(Grass, properties{name: "grass", side: 3, top: 0, bottom: 2})
	define(Dirt, properties{name: "dirt", side: 2})
	define(Cobblestone, properties{name: "cobblestone", side: 16})
	define(Planks, properties{name: "planks", side: 4})
	define(Sapling, properties{name: "sapling", transmits: true, flora: true, side: 15})
	define(Bedrock, properties{name: "bedrock", side: 17})
	define(FlowingWater, properties{name: "flowing_water", transmits: true, clear: true, fluid: true, side: 14})
	define(Water, properties{name: "water", transmits: true, clear: true, fluid: true, side: 14})
	define(FlowingLava, properties{name: "flowing_lava", fluid: true, side: 30})
	define(Lava, properties{name: "lava", fluid: true, side: 30})
	define(Sand, properties{name: "sand", falls: true, side: 18})
	define(Gravel, properties{name: "gravel", falls: true, side: 19})
	define(GoldOre, properties{name: "gold_ore", side: 32})
	define(IronOre, properties{name: "iron_ore", side: 33})
	define(CoalOre, properties{name: "coal_ore", side: 34})
	define(Log, properties{name: "log", side: 20, top: 21, bottom: 21})
	define(Leaves, properties{name: "leaves", transmits: true, clear: true, side: 22})
	define(Sponge, properties{name: "sponge", side: 48})
	define(Glass, properties{name: "glass", transmits: true, clear: true, side: 49})
	define(Dandelion, properties{name: "dandelion", transmits: true, flora: true, side: 13})
	define(Rose, properties{name: "rose", transmits: true, flora: true, side: 12})
	define(BrownMushroom, properties{name: "brown_mushroom", transmits: true, flora: true, side: 29})
	define(RedMushroom, properties{name: "red_mushroom", transmits: true, flora: true, side: 28})
	define(GoldBlock, properties{name: "gold_block", side: 24})
	define(IronBlock, properties{name: "iron_block", side: 23})
	define(DoubleSlab, properties{name: "double_slab", side: 5, top: 6, bottom: 6})
	define(Slab, properties{name: "slab", side: 5, top: 6, bottom: 6})
	define(Brick, properties{name: "brick", side: 7})
	define(TNT, properties{name: "tnt", side: 8, top: 9, bottom: 10})
	define(Bookshelf, properties{name: "bookshelf", side: 35, top: 4, bottom: 4})
	define(MossyCobblestone, properties{name: "mossy_cobblestone", side: 36})
	define(Obsidian, properties{name: "obsidian", side: 37})
}

// Known reports whether id is part of the catalogue.
func (id ID) Known() bool {
	return id == Air || table[id].name != ""
}

// Name returns the catalogue name, or "unknown".
func (id ID) Name() string {
	if n := table[id].name; n != "" {
		return n
	}
	return "unknown"
}

// TransmitsLight reports whether sky light passes through the block.
// Unknown ids are treated as opaque.
func (id ID) TransmitsLight() bool {
	return table[id].transmits
}

// Opaque is the negation of TransmitsLight.
func (id ID) Opaque() bool {
	return !table[id].transmits
}

// Flora blocks are drawn as two crossed quads in the flora pass.
func (id ID) Flora() bool {
	return table[id].flora
}

// Transparent blocks are drawn in the last, blended pass.
func (id ID) Transparent() bool {
	return table[id].clear
}

// Falls reports whether the block drops when the block under it is air.
func (id ID) Falls() bool {
	return table[id].falls
}

func (id ID) Fluid() bool {
	return table[id].fluid
}

// IsWater matches both still and flowing water.
func (id ID) IsWater() bool {
	return id == Water || id == FlowingWater
}

// Tile returns the terrain atlas tile used for the given face.
func (id ID) Tile(f Face) int {
	p := table[id]
	switch f {
	case FaceTop:
		return p.top
	case FaceBottom:
		return p.bottom
	default:
		return p.side
	}
}
