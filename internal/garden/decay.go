package garden

import (
	"time"

	"gardenkeeper/internal/telemetry"
)

// Neglect penalties. Both windows are checked independently in the same
// pass, so a fully neglected plant loses 18 health per sweep.
const (
	neglectWindow = 12 * time.Hour
	waterDecay    = 10
	sunDecay      = 8
)

// decayPlant applies neglect penalties for the given instant and reports
// whether the plant died.
func decayPlant(now time.Time, p *Plant) (died bool) {
	if now.Sub(time.UnixMilli(p.WateredAt)) > neglectWindow {
		p.Health = clamp(p.Health-waterDecay, 0, maxHealth)
	}
	if now.Sub(time.UnixMilli(p.SunAt)) > neglectWindow {
		p.Health = clamp(p.Health-sunDecay, 0, maxHealth)
	}
	return p.Health <= 0
}

// SweepReport summarizes one decay pass.
type SweepReport struct {
	Gardens       int `json:"gardens"`
	PlantsChecked int `json:"plantsChecked"`
	PlantsDecayed int `json:"plantsDecayed"`
	PlantsRemoved int `json:"plantsRemoved"`
}

// RunDecaySweep ages every plant in every garden and prunes the dead ones.
// It takes no input and is meant to be driven by an external scheduler,
// nominally once a day. All mutations are durable before it returns.
func (e *Engine) RunDecaySweep() SweepReport {
	now := e.now()
	var report SweepReport

	e.store.sweep(func(userID string, g *UserGarden) {
		report.Gardens++
		for id, p := range g.Plants {
			report.PlantsChecked++
			before := p.Health
			died := decayPlant(now, p)
			if p.Health != before {
				report.PlantsDecayed++
			}
			if !died {
				continue
			}
			delete(g.Plants, id)
			report.PlantsRemoved++
			e.record(telemetry.EventPlantDied, telemetry.EventMetadata{
				"user": userID, "species": p.Name,
			})
		}
	})

	e.record(telemetry.EventDecaySweep, telemetry.EventMetadata{
		"gardens": report.Gardens, "decayed": report.PlantsDecayed, "removed": report.PlantsRemoved,
	})
	e.log.Info().
		Int("gardens", report.Gardens).
		Int("plants", report.PlantsChecked).
		Int("decayed", report.PlantsDecayed).
		Int("removed", report.PlantsRemoved).
		Msg("decay sweep complete")
	return report
}
