package garden

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gardenkeeper/internal/catalog"
	"gardenkeeper/internal/telemetry"
)

func TestDecayPlant_BothWindowsStack(t *testing.T) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	p := &Plant{
		Species:   catalog.Species{Name: "Cây Xương Rồng"},
		WateredAt: now.Add(-13 * time.Hour).UnixMilli(),
		SunAt:     now.Add(-13 * time.Hour).UnixMilli(),
		Health:    100,
	}

	died := decayPlant(now, p)

	assert.False(t, died)
	assert.Equal(t, 82, p.Health)
}

func TestDecayPlant_OnlyWaterNeglected(t *testing.T) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	p := &Plant{
		WateredAt: now.Add(-13 * time.Hour).UnixMilli(),
		SunAt:     now.Add(-1 * time.Hour).UnixMilli(),
		Health:    50,
	}

	died := decayPlant(now, p)

	assert.False(t, died)
	assert.Equal(t, 40, p.Health)
}

func TestDecayPlant_FreshPlantUntouched(t *testing.T) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	p := &Plant{
		WateredAt: now.Add(-12 * time.Hour).UnixMilli(), // exactly the window, not past it
		SunAt:     now.UnixMilli(),
		Health:    60,
	}

	died := decayPlant(now, p)

	assert.False(t, died)
	assert.Equal(t, 60, p.Health)
}

func TestDecayPlant_ReportsDeath(t *testing.T) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	p := &Plant{
		WateredAt: now.Add(-24 * time.Hour).UnixMilli(),
		SunAt:     now.Add(-24 * time.Hour).UnixMilli(),
		Health:    15,
	}

	died := decayPlant(now, p)

	assert.True(t, died)
	assert.Equal(t, 0, p.Health)
}

func TestRunDecaySweep_PrunesAndPersists(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	events := telemetry.NewMemoryRepository()
	e := NewEngine(store, catalog.Default(), events, zerolog.Nop())

	t0 := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	stale := t0.Add(-13 * time.Hour).UnixMilli()
	fresh := t0.Add(-time.Hour).UnixMilli()

	seedPlant(t, e, "user-1", &Plant{
		ID: "dying", Species: catalog.Species{Name: "Cây Lưỡi Hổ"},
		PlantedAt: stale, WateredAt: stale, SunAt: stale,
		Health: 10, Stage: StageSprout,
	})
	seedPlant(t, e, "user-1", &Plant{
		ID: "healthy", Species: catalog.Species{Name: "Cây Xương Rồng"},
		PlantedAt: fresh, WateredAt: fresh, SunAt: fresh,
		Health: 100, Stage: StageSeed,
	})
	seedPlant(t, e, "user-2", &Plant{
		ID: "wilting", Species: catalog.Species{Name: "Cây Đồng Tiền"},
		PlantedAt: stale, WateredAt: stale, SunAt: fresh,
		Health: 50, Stage: StageMature,
	})

	atTime(e, t0)
	report := e.RunDecaySweep()

	assert.Equal(t, 2, report.Gardens)
	assert.Equal(t, 3, report.PlantsChecked)
	assert.Equal(t, 2, report.PlantsDecayed)
	assert.Equal(t, 1, report.PlantsRemoved)

	g1 := e.Garden("user-1")
	require.Len(t, g1.Plants, 1)
	assert.Equal(t, 100, g1.Plants["healthy"].Health)

	g2 := e.Garden("user-2")
	assert.Equal(t, 40, g2.Plants["wilting"].Health)

	// The pruned state must survive a reopen.
	reopened, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, reopened.Garden("user-1").Plants["dying"])
	assert.Equal(t, 40, reopened.Garden("user-2").Plants["wilting"].Health)

	recorded, err := events.EventsSince(time.Time{})
	require.NoError(t, err)
	var deaths, sweeps int
	for _, ev := range recorded {
		switch ev.Type {
		case telemetry.EventPlantDied:
			deaths++
		case telemetry.EventDecaySweep:
			sweeps++
		}
	}
	assert.Equal(t, 1, deaths)
	assert.Equal(t, 1, sweeps)
}

func TestRunDecaySweep_EmptyStore(t *testing.T) {
	e := newTestEngine(t)

	report := e.RunDecaySweep()

	assert.Zero(t, report.Gardens)
	assert.Zero(t, report.PlantsChecked)
	assert.Zero(t, report.PlantsRemoved)
}
