package garden

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gardenkeeper/internal/catalog"
	"gardenkeeper/internal/telemetry"
)

// Care action tuning. Cooldowns are evaluated by timestamp comparison at call
// time; the boundary is inclusive, so an action at exactly the cooldown mark
// succeeds.
const (
	waterCooldown = 2 * time.Hour
	sunCooldown   = 3 * time.Hour
	dailyCooldown = 24 * time.Hour

	waterHealthGain = 15
	waterGrowthGain = 5
	sunHealthGain   = 10
	sunGrowthGain   = 8

	dailyReward = 100
)

// Engine applies the game rules on top of the Store. Operations are
// synchronous: a bounded in-memory mutation plus one write-through flush.
type Engine struct {
	store  *Store
	cat    *catalog.Catalog
	events telemetry.Repository
	log    zerolog.Logger

	now func() time.Time
}

func NewEngine(store *Store, cat *catalog.Catalog, events telemetry.Repository, log zerolog.Logger) *Engine {
	return &Engine{
		store:  store,
		cat:    cat,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// EnsureUser creates the default garden for a first-time user.
func (e *Engine) EnsureUser(userID string) {
	e.store.EnsureUser(userID)
}

// Garden returns a copy of the user's garden, creating it if absent.
func (e *Engine) Garden(userID string) *UserGarden {
	return e.store.Garden(userID)
}

// Catalog lists every purchasable species in shop order.
func (e *Engine) Catalog() []catalog.Species {
	return e.cat.All()
}

// LookupSpecies resolves a species query without purchasing.
func (e *Engine) LookupSpecies(query string) (catalog.Species, error) {
	return e.cat.Lookup(query)
}

// PlantSeed purchases the species matching query and plants it. The new
// plant starts as a seed at full health with all care timestamps set to now.
func (e *Engine) PlantSeed(userID, query string) (*Plant, error) {
	sp, err := e.cat.Lookup(query)
	if err != nil {
		return nil, err
	}

	now := e.now().UnixMilli()
	var planted *Plant
	err = e.store.mutate(userID, func(g *UserGarden) error {
		if g.Coins < sp.Cost {
			return ErrInsufficientCoins
		}
		p := &Plant{
			ID:        uuid.NewString(),
			Species:   sp,
			PlantedAt: now,
			WateredAt: now,
			SunAt:     now,
			Health:    maxHealth,
			Stage:     StageSeed,
		}
		g.Coins -= sp.Cost
		g.Plants[p.ID] = p
		planted = clonePlant(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.record(telemetry.EventPlantPurchased, telemetry.EventMetadata{
		"user": userID, "species": sp.Name, "cost": sp.Cost,
	})
	e.log.Info().Str("user", userID).Str("species", sp.Name).Int("cost", sp.Cost).Msg("plant purchased")
	return planted, nil
}

// Water raises the matched plant's health by 15 and growth by 5, subject to
// the 2 hour cooldown since it was last watered.
func (e *Engine) Water(userID, query string) (*Plant, error) {
	now := e.now()
	var watered *Plant
	err := e.store.mutate(userID, func(g *UserGarden) error {
		p := findPlant(g, query)
		if p == nil {
			return ErrPlantNotFound
		}
		if err := checkCooldown("watering", now, p.WateredAt, waterCooldown); err != nil {
			return err
		}
		p.WateredAt = now.UnixMilli()
		e.applyCare(userID, g, p, waterHealthGain, waterGrowthGain)
		watered = clonePlant(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.record(telemetry.EventPlantWatered, telemetry.EventMetadata{
		"user": userID, "species": watered.Name,
	})
	e.log.Debug().Str("user", userID).Str("species", watered.Name).Msg("plant watered")
	return watered, nil
}

// Sun raises the matched plant's health by 10 and growth by 8, subject to
// the 3 hour cooldown since it last got sunlight.
func (e *Engine) Sun(userID, query string) (*Plant, error) {
	now := e.now()
	var sunned *Plant
	err := e.store.mutate(userID, func(g *UserGarden) error {
		p := findPlant(g, query)
		if p == nil {
			return ErrPlantNotFound
		}
		if err := checkCooldown("sunlight", now, p.SunAt, sunCooldown); err != nil {
			return err
		}
		p.SunAt = now.UnixMilli()
		e.applyCare(userID, g, p, sunHealthGain, sunGrowthGain)
		sunned = clonePlant(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.record(telemetry.EventPlantSunned, telemetry.EventMetadata{
		"user": userID, "species": sunned.Name,
	})
	e.log.Debug().Str("user", userID).Str("species", sunned.Name).Msg("plant sunned")
	return sunned, nil
}

// ClaimDaily credits the once-per-24h coin reward and returns the new
// balance.
func (e *Engine) ClaimDaily(userID string) (int, error) {
	now := e.now()
	var balance int
	err := e.store.mutate(userID, func(g *UserGarden) error {
		if err := checkCooldown("daily reward", now, g.LastDaily, dailyCooldown); err != nil {
			return err
		}
		g.LastDaily = now.UnixMilli()
		g.Coins += dailyReward
		balance = g.Coins
		return nil
	})
	if err != nil {
		return 0, err
	}

	e.record(telemetry.EventDailyClaimed, telemetry.EventMetadata{
		"user": userID, "reward": dailyReward,
	})
	e.log.Info().Str("user", userID).Int("coins", balance).Msg("daily reward claimed")
	return balance, nil
}

// applyCare mutates the meters and runs the stage cascade if the growth
// meter fills. Caller holds the store lock.
func (e *Engine) applyCare(userID string, g *UserGarden, p *Plant, healthGain, growthGain int) {
	p.Health = clamp(p.Health+healthGain, 0, maxHealth)
	p.Growth = clamp(p.Growth+growthGain, 0, maxGrowth)
	if p.Growth >= maxGrowth {
		e.advanceStage(userID, g, p)
	}
}

// findPlant scans a garden for a case-insensitive substring match on the
// species name. Ambiguous queries resolve to the oldest planting, with the
// plant id as the final tiebreak, so repeated calls pick the same plant.
func findPlant(g *UserGarden, query string) *Plant {
	q := strings.ToLower(strings.TrimSpace(query))
	var best *Plant
	for _, p := range g.Plants {
		if !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if best == nil || p.PlantedAt < best.PlantedAt ||
			(p.PlantedAt == best.PlantedAt && p.ID < best.ID) {
			best = p
		}
	}
	return best
}

func checkCooldown(action string, now time.Time, lastMillis int64, cooldown time.Duration) error {
	elapsed := now.Sub(time.UnixMilli(lastMillis))
	if elapsed < cooldown {
		return &CooldownError{Action: action, Remaining: cooldown - elapsed}
	}
	return nil
}

func (e *Engine) record(eventType telemetry.EventType, metadata telemetry.EventMetadata) {
	if e.events == nil {
		return
	}
	if err := e.events.RecordEvent(eventType, metadata); err != nil {
		e.log.Warn().Err(err).Str("event", string(eventType)).Msg("failed to record event")
	}
}
