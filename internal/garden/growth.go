package garden

import "gardenkeeper/internal/telemetry"

// advanceStage applies the stage transition when a plant's growth meter
// fills. The meter always resets; only the sprout-to-mature edge pays out.
// Mature has no outgoing edge. Caller holds the store lock.
func (e *Engine) advanceStage(userID string, g *UserGarden, p *Plant) {
	if p.Growth < maxGrowth {
		return
	}

	switch p.Stage {
	case StageSeed:
		p.Stage = StageSprout
		e.record(telemetry.EventPlantSprouted, telemetry.EventMetadata{
			"user": userID, "species": p.Name,
		})
	case StageSprout:
		p.Stage = StageMature
		reward := p.Cost * 2
		g.Exp += p.Exp
		g.Coins += reward
		e.record(telemetry.EventPlantMatured, telemetry.EventMetadata{
			"user": userID, "species": p.Name, "exp": p.Exp, "coins": reward,
		})
		e.log.Info().Str("user", userID).Str("species", p.Name).
			Int("exp", p.Exp).Int("coins", reward).Msg("plant matured")
		e.levelCheck(userID, g)
	case StageMature:
		// terminal stage: the meter resets with no further reward
	}
	p.Growth = 0
}

// levelCheck applies at most one level-up per growth event. A surplus large
// enough to cross several thresholds at once carries over to the next event.
func (e *Engine) levelCheck(userID string, g *UserGarden) {
	threshold := g.Level * 100
	if g.Exp < threshold {
		return
	}
	g.Level++
	g.Exp -= threshold

	e.record(telemetry.EventLevelUp, telemetry.EventMetadata{
		"user": userID, "level": g.Level,
	})
	e.log.Info().Str("user", userID).Int("level", g.Level).Msg("gardener leveled up")
}
