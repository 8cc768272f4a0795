// Package garden implements the garden simulation engine: per-user plant
// state with durable JSON persistence, timed care actions, the growth and
// economy cascade, and the periodic decay sweep.
package garden

import (
	"gardenkeeper/internal/catalog"
)

// Stage is a plant's lifecycle phase. It advances only when growth reaches
// 100 and is terminal at mature.
type Stage string

const (
	StageSeed   Stage = "Hạt giống"
	StageSprout Stage = "Cây non"
	StageMature Stage = "Cây trưởng thành"
)

const (
	maxHealth = 100
	maxGrowth = 100
)

// Plant is one planted instance. Species fields are snapshotted at purchase
// (the catalog is immutable, so by-value is safe) and embedded so the
// persisted document keeps the flat field layout. Timestamps are unix
// milliseconds.
type Plant struct {
	ID string `json:"id"`
	catalog.Species

	PlantedAt int64 `json:"plantedAt"`
	WateredAt int64 `json:"wateredAt"`
	SunAt     int64 `json:"sunAt"`

	Health int   `json:"health"`
	Growth int   `json:"growth"`
	Stage  Stage `json:"stage"`
}

// UserGarden is the per-user state. Exp stays below Level*100 after every
// mutation; leveling is applied eagerly by the growth cascade. LastDaily of
// zero means the daily reward was never claimed.
type UserGarden struct {
	Plants    map[string]*Plant `json:"plants"`
	Level     int               `json:"level"`
	Exp       int               `json:"exp"`
	Coins     int               `json:"coins"`
	LastDaily int64             `json:"lastDaily"`
}

func newUserGarden() *UserGarden {
	return &UserGarden{
		Plants: map[string]*Plant{},
		Level:  1,
		Coins:  100,
	}
}

// normalizeGarden repairs a garden loaded from disk: missing maps, stray
// nil plants, out-of-range meters.
func normalizeGarden(g *UserGarden) {
	if g.Plants == nil {
		g.Plants = map[string]*Plant{}
	}
	if g.Level < 1 {
		g.Level = 1
	}
	if g.Exp < 0 {
		g.Exp = 0
	}
	if g.Coins < 0 {
		g.Coins = 0
	}
	for id, p := range g.Plants {
		if p == nil {
			delete(g.Plants, id)
			continue
		}
		if p.ID == "" {
			p.ID = id
		}
		if p.Stage == "" {
			p.Stage = StageSeed
		}
		p.Health = clamp(p.Health, 0, maxHealth)
		p.Growth = clamp(p.Growth, 0, maxGrowth)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clonePlant(p *Plant) *Plant {
	cp := *p
	return &cp
}

func cloneGarden(g *UserGarden) *UserGarden {
	out := *g
	out.Plants = make(map[string]*Plant, len(g.Plants))
	for id, p := range g.Plants {
		out.Plants[id] = clonePlant(p)
	}
	return &out
}
