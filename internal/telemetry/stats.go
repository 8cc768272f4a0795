package telemetry

import (
	"encoding/json"
	"time"
)

// Stats is a balance rollup over a window of gameplay events.
type Stats struct {
	Period       string            `json:"period"`
	EventCounts  map[EventType]int `json:"event_counts"`
	Purchases    int               `json:"purchases"`
	Waterings    int               `json:"waterings"`
	Sunnings     int               `json:"sunnings"`
	Maturations  int               `json:"maturations"`
	LevelUps     int               `json:"level_ups"`
	PlantsLost   int               `json:"plants_lost"`
	DailyClaims  int               `json:"daily_claims"`
	DecaySweeps  int               `json:"decay_sweeps"`
	CoinsAwarded int               `json:"coins_awarded"`
	CoinsSpent   int               `json:"coins_spent"`

	// PlantsLostPerSweep is the neglect casualty rate, for tuning decay.
	PlantsLostPerSweep float64 `json:"plants_lost_per_sweep"`
}

// CalculateStats rolls events from since onward into a Stats summary.
func CalculateStats(events []Event, since time.Time) Stats {
	stats := Stats{
		Period:      since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
	}

	for _, event := range events {
		if event.Timestamp.Before(since) {
			continue
		}
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventPlantPurchased:
			stats.Purchases++
			stats.CoinsSpent += metaInt(metadata, "cost")
		case EventPlantWatered:
			stats.Waterings++
		case EventPlantSunned:
			stats.Sunnings++
		case EventPlantMatured:
			stats.Maturations++
			stats.CoinsAwarded += metaInt(metadata, "coins")
		case EventLevelUp:
			stats.LevelUps++
		case EventPlantDied:
			stats.PlantsLost++
		case EventDailyClaimed:
			stats.DailyClaims++
			stats.CoinsAwarded += metaInt(metadata, "reward")
		case EventDecaySweep:
			stats.DecaySweeps++
		}
	}

	if stats.DecaySweeps > 0 {
		stats.PlantsLostPerSweep = float64(stats.PlantsLost) / float64(stats.DecaySweeps)
	}
	return stats
}

// metaInt reads a numeric metadata field; JSON numbers decode as float64.
func metaInt(metadata EventMetadata, key string) int {
	if v, ok := metadata[key].(float64); ok {
		return int(v)
	}
	return 0
}
