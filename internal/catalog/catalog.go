// Package catalog holds the immutable table of purchasable plant species.
package catalog

import (
	"errors"
	"strings"
)

var ErrSpeciesNotFound = errors.New("species not found")

// Rarity is a species tier. Tiers are listed in shop order.
type Rarity string

const (
	RarityCommon    Rarity = "Thường"
	RarityRare      Rarity = "Hiếm"
	RarityLegendary Rarity = "Huyền Thoại"
)

// Species is one catalog entry. Entries are read-only at runtime; a planted
// instance snapshots the species by value, so the JSON keys here double as the
// keys of the persisted garden document.
type Species struct {
	Name        string `json:"name" yaml:"name"`
	Emoji       string `json:"emoji" yaml:"emoji"`
	WaterNeed   int    `json:"waterNeed" yaml:"water_need"`
	SunNeed     int    `json:"sunNeed" yaml:"sun_need"`
	GrowthTime  int    `json:"growthTime" yaml:"growth_time"`
	Rarity      Rarity `json:"rarity" yaml:"rarity"`
	Exp         int    `json:"exp" yaml:"exp"`
	Cost        int    `json:"cost" yaml:"cost"`
	Description string `json:"description" yaml:"description"`
}

// Catalog is an ordered species table: basic tier first, then rare, then
// legendary. Lookup resolves ambiguous queries to the earliest entry.
type Catalog struct {
	species []Species
}

func New(species ...Species) *Catalog {
	c := &Catalog{species: make([]Species, len(species))}
	copy(c.species, species)
	return c
}

// Default returns the built-in species table.
func Default() *Catalog {
	return New(
		Species{Name: "Cây Xương Rồng", Emoji: "🌵", WaterNeed: 2, SunNeed: 8, GrowthTime: 3, Rarity: RarityCommon, Exp: 10, Cost: 50, Description: "Cây dễ chăm, chịu hạn tốt"},
		Species{Name: "Cây Lưỡi Hổ", Emoji: "🪴", WaterNeed: 3, SunNeed: 6, GrowthTime: 4, Rarity: RarityCommon, Exp: 12, Cost: 60, Description: "Cây thanh lọc không khí tuyệt vời"},
		Species{Name: "Cây Đồng Tiền", Emoji: "🌿", WaterNeed: 4, SunNeed: 5, GrowthTime: 5, Rarity: RarityCommon, Exp: 15, Cost: 70, Description: "Cây phong thủy mang lại may mắn"},
		Species{Name: "Cây Bonsai Tùng", Emoji: "🌲", WaterNeed: 6, SunNeed: 7, GrowthTime: 10, Rarity: RarityRare, Exp: 50, Cost: 200, Description: "Cây nghệ thuật cần chăm sóc tỉ mỉ"},
		Species{Name: "Monstera Deliciosa", Emoji: "🌱", WaterNeed: 7, SunNeed: 6, GrowthTime: 8, Rarity: RarityRare, Exp: 45, Cost: 180, Description: "Cây Instagram nổi tiếng với lá lỗ"},
		Species{Name: "Cây Sâm Ngọc Linh", Emoji: "🌟", WaterNeed: 10, SunNeed: 5, GrowthTime: 30, Rarity: RarityLegendary, Exp: 200, Cost: 500, Description: "Cây quý hiếm của núi rừng Việt Nam"},
	)
}

// All returns every species in declaration order. The result is a copy.
func (c *Catalog) All() []Species {
	out := make([]Species, len(c.species))
	copy(out, c.species)
	return out
}

// Lookup finds a species by case-insensitive substring match on its name.
// Ambiguous queries resolve to the first match in declaration order.
func (c *Catalog) Lookup(query string) (Species, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, sp := range c.species {
		if strings.Contains(strings.ToLower(sp.Name), q) {
			return sp, nil
		}
	}
	return Species{}, ErrSpeciesNotFound
}
