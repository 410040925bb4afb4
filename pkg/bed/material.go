package bed

// DefaultMaterialID is the catalog entry used when an ID is unknown.
const DefaultMaterialID = "kvh_spruce"

// Material is a wood type from the catalog.
type Material struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Density  float64 `json:"density"`  // kg/m³, informational
	EModulus float64 `json:"eModulus"` // N/mm²
}

var catalog = []Material{
	{ID: "kvh_spruce", Name: "KVH Spruce/Fir", Density: 460, EModulus: 11000},
	{ID: "bsh_spruce", Name: "BSH Spruce (glulam)", Density: 480, EModulus: 11500},
	{ID: "oak", Name: "Oak", Density: 700, EModulus: 13000},
}

// Materials returns a copy of the material catalog.
func Materials() []Material {
	out := make([]Material, len(catalog))
	copy(out, catalog)
	return out
}

// LookupMaterial returns the material with the given ID. Unknown IDs fall
// back to the default material and report ok = false.
func LookupMaterial(id string) (Material, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return catalog[0], false
}
