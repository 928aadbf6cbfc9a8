package shake

// materialNames lists surface materials in game order; the index is the
// material id reported for tyre contact.
var materialNames = []string{
	"DEFAULT",
	"CONCRETE",
	"CONCRETE_POTHOLE",
	"CONCRETE_DUSTY",
	"TARMAC",
	"TARMAC_PAINTED",
	"TARMAC_POTHOLE",
	"RUMBLE_STRIPS",
	"BREEZE_BLOCK",
	"ROCK",
	"ROCK_MOSSY",
	"STONE",
	"COBBLESTONE",
	"BRICK",
	"MARBLE",
	"PAVING_SLAB",
	"SANDSTONE_SOLID",
	"SANDSTONE_BRITTLE",
	"SAND_LOOSE",
	"SAND_COMPACT",
	"SAND_WET",
	"SAND_TRACK",
	"SAND_UNDERWATER",
	"SAND_DRY_DEEP",
	"SAND_WET_DEEP",
	"ICE",
	"ICE_TARMAC",
	"SNOW_LOOSE",
	"SNOW_COMPACT",
	"SNOW_DEEP",
	"SNOW_TARMAC",
	"GRAVEL_SMALL",
	"GRAVEL_LARGE",
	"GRAVEL_DEEP",
	"GRAVEL_TRAIN_TRACK",
	"DIRT_TRACK",
	"MUD_HARD",
	"MUD_POTHOLE",
	"MUD_SOFT",
	"MUD_UNDERWATER",
	"MUD_DEEP",
	"MARSH",
	"MARSH_DEEP",
	"SOIL",
	"CLAY_HARD",
	"CLAY_SOFT",
	"GRASS_LONG",
	"GRASS",
	"GRASS_SHORT",
	"HAY",
	"BUSHES",
	"TWIGS",
	"LEAVES",
	"WOODCHIPS",
	"TREE_BARK",
	"METAL_SOLID_SMALL",
	"METAL_SOLID_MEDIUM",
	"METAL_SOLID_LARGE",
	"METAL_HOLLOW_SMALL",
	"METAL_HOLLOW_MEDIUM",
	"METAL_HOLLOW_LARGE",
	"METAL_CHAINLINK_SMALL",
	"METAL_CHAINLINK_LARGE",
	"METAL_CORRUGATED_IRON",
	"METAL_GRILLE",
	"METAL_RAILING",
	"METAL_DUCT",
	"METAL_GARAGE_DOOR",
	"METAL_MANHOLE",
	"WOOD_SOLID_SMALL",
	"WOOD_SOLID_MEDIUM",
	"WOOD_SOLID_LARGE",
	"WOOD_SOLID_POLISHED",
	"WOOD_FLOOR_DUSTY",
	"WOOD_HOLLOW_SMALL",
	"WOOD_HOLLOW_MEDIUM",
	"WOOD_HOLLOW_LARGE",
	"WOOD_CHIPBOARD",
	"WOOD_OLD_CREAKY",
	"WOOD_HIGH_DENSITY",
	"WOOD_LATTICE",
	"CERAMIC",
	"ROOF_TILE",
	"ROOF_FELT",
	"FIBREGLASS",
	"TARPAULIN",
	"PLASTIC",
	"PLASTIC_HOLLOW",
	"PLASTIC_HIGH_DENSITY",
	"PLASTIC_CLEAR",
	"PLASTIC_HOLLOW_CLEAR",
	"PLASTIC_HIGH_DENSITY_CLEAR",
	"FIBREGLASS_HOLLOW",
	"RUBBER",
	"RUBBER_HOLLOW",
	"LINOLEUM",
	"LAMINATE",
	"CARPET_SOLID",
	"CARPET_SOLID_DUSTY",
	"CARPET_FLOORBOARD",
	"CLOTH",
	"PLASTER_SOLID",
	"PLASTER_BRITTLE",
	"CARDBOARD_SHEET",
	"CARDBOARD_BOX",
	"PAPER",
	"FOAM",
	"FEATHER_PILLOW",
	"POLYSTYRENE",
	"LEATHER",
	"TVSCREEN",
	"SLATTED_BLINDS",
	"GLASS_SHOOT_THROUGH",
	"GLASS_BULLETPROOF",
	"GLASS_OPAQUE",
	"PERSPEX",
	"CAR_METAL",
	"CAR_PLASTIC",
	"CAR_SOFTTOP",
	"CAR_SOFTTOP_CLEAR",
	"CAR_GLASS_WEAK",
	"CAR_GLASS_MEDIUM",
	"CAR_GLASS_STRONG",
	"CAR_GLASS_BULLETPROOF",
	"CAR_GLASS_OPAQUE",
	"WATER",
	"BLOOD",
	"OIL",
	"PETROL",
	"FRESH_MEAT",
	"DRIED_MEAT",
	"EMISSIVE_GLASS",
	"EMISSIVE_PLASTIC",
	"VFX_METAL_ELECTRIFIED",
	"VFX_METAL_WATER_TOWER",
	"VFX_METAL_STEAM",
	"VFX_METAL_FLAME",
	"PHYS_NO_FRICTION",
	"PHYS_GOLF_BALL",
	"PHYS_TENNIS_BALL",
	"PHYS_CASTER",
	"PHYS_CASTER_RUSTY",
	"PHYS_CAR_VOID",
	"PHYS_PED_CAPSULE",
	"PHYS_ELECTRIC_FENCE",
	"PHYS_ELECTRIC_METAL",
	"PHYS_BARBED_WIRE",
	"PHYS_POOLTABLE_SURFACE",
	"PHYS_POOLTABLE_CUSHION",
	"PHYS_POOLTABLE_BALL",
	"BUTTOCKS",
	"THIGH_LEFT",
	"SHIN_LEFT",
	"FOOT_LEFT",
	"THIGH_RIGHT",
	"SHIN_RIGHT",
	"FOOT_RIGHT",
	"SPINE0",
	"SPINE1",
	"SPINE2",
	"SPINE3",
	"CLAVICLE_LEFT",
	"UPPER_ARM_LEFT",
	"LOWER_ARM_LEFT",
	"HAND_LEFT",
	"CLAVICLE_RIGHT",
	"UPPER_ARM_RIGHT",
	"LOWER_ARM_RIGHT",
	"HAND_RIGHT",
	"NECK",
	"HEAD",
	"ANIMAL_DEFAULT",
	"CAR_ENGINE",
	"PUDDLE",
	"CONCRETE_PAVEMENT",
	"BRICK_PAVEMENT",
	"PHYS_DYNAMIC_COVER_BOUND",
	"VFX_WOOD_BEER_BARREL",
	"WOOD_HIGH_FRICTION",
	"ROCK_NOINST",
	"BUSHES_NOINST",
	"METAL_SOLID_ROAD_SURFACE",
	"STUNT_RAMP_SURFACE",
}

var materialIDs = func() map[string]uint16 {
	m := make(map[string]uint16, len(materialNames))
	for i, n := range materialNames {
		m[n] = uint16(i)
	}
	return m
}()

// MaterialID returns the id of a material name.
func MaterialID(name string) (uint16, bool) {
	id, ok := materialIDs[name]
	return id, ok
}

// MaterialName returns the name of a material id, or "" when out of range.
func MaterialName(id uint16) string {
	if int(id) >= len(materialNames) {
		return ""
	}
	return materialNames[id]
}
