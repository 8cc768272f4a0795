package telemetry

import "time"

type EventType string

const (
	EventPlantPurchased EventType = "plant_purchased"
	EventPlantWatered   EventType = "plant_watered"
	EventPlantSunned    EventType = "plant_sunned"
	EventPlantSprouted  EventType = "plant_sprouted"
	EventPlantMatured   EventType = "plant_matured"
	EventPlantDied      EventType = "plant_died"
	EventLevelUp        EventType = "level_up"
	EventDailyClaimed   EventType = "daily_claimed"
	EventDecaySweep     EventType = "decay_sweep"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
