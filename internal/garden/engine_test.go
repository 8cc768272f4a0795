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

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store, err := Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return NewEngine(store, catalog.Default(), telemetry.NewMemoryRepository(), zerolog.Nop())
}

func atTime(e *Engine, ts time.Time) {
	e.now = func() time.Time { return ts }
}

func TestPlantSeed_NewUserScenario(t *testing.T) {
	e := newTestEngine(t)
	t0 := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	atTime(e, t0)

	p, err := e.PlantSeed("user-1", "Xương Rồng")
	require.NoError(t, err)

	assert.Equal(t, "Cây Xương Rồng", p.Name)
	assert.Equal(t, StageSeed, p.Stage)
	assert.Equal(t, 100, p.Health)
	assert.Equal(t, 0, p.Growth)
	assert.Equal(t, t0.UnixMilli(), p.PlantedAt)
	assert.Equal(t, t0.UnixMilli(), p.WateredAt)
	assert.Equal(t, t0.UnixMilli(), p.SunAt)

	g := e.Garden("user-1")
	assert.Equal(t, 50, g.Coins)
	require.Len(t, g.Plants, 1)
	assert.Equal(t, p.ID, g.Plants[p.ID].ID)
}

func TestPlantSeed_InsufficientCoins(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.PlantSeed("user-1", "Sâm Ngọc Linh")
	assert.ErrorIs(t, err, ErrInsufficientCoins)

	g := e.Garden("user-1")
	assert.Equal(t, 100, g.Coins)
	assert.Empty(t, g.Plants)
}

func TestPlantSeed_UnknownSpecies(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.PlantSeed("user-1", "no such plant")
	assert.ErrorIs(t, err, ErrSpeciesNotFound)
}

func TestWater_AppliesGains(t *testing.T) {
	e := newTestEngine(t)
	t0 := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	atTime(e, t0)
	_, err := e.PlantSeed("user-1", "Lưỡi Hổ")
	require.NoError(t, err)

	atTime(e, t0.Add(2*time.Hour))
	p, err := e.Water("user-1", "lưỡi hổ")
	require.NoError(t, err)

	assert.Equal(t, 100, p.Health) // already full, capped
	assert.Equal(t, 5, p.Growth)
	assert.Equal(t, t0.Add(2*time.Hour).UnixMilli(), p.WateredAt)
}

func TestWater_CooldownBoundaryIsExact(t *testing.T) {
	e := newTestEngine(t)
	t0 := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	atTime(e, t0)
	_, err := e.PlantSeed("user-1", "Xương Rồng")
	require.NoError(t, err)

	// One millisecond short of the 2h window fails with the remaining wait.
	atTime(e, t0.Add(2*time.Hour-time.Millisecond))
	_, err = e.Water("user-1", "Xương Rồng")
	require.ErrorIs(t, err, ErrCooldownActive)
	var ce *CooldownError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, time.Millisecond, ce.Remaining)

	g := e.Garden("user-1")
	for _, p := range g.Plants {
		assert.Equal(t, 0, p.Growth)
		assert.Equal(t, t0.UnixMilli(), p.WateredAt)
	}

	// Exactly at the boundary succeeds.
	atTime(e, t0.Add(2*time.Hour))
	_, err = e.Water("user-1", "Xương Rồng")
	assert.NoError(t, err)
}

func TestWater_TwiceWithinCooldown(t *testing.T) {
	e := newTestEngine(t)
	t0 := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	atTime(e, t0)
	_, err := e.PlantSeed("user-1", "Xương Rồng")
	require.NoError(t, err)

	atTime(e, t0.Add(2*time.Hour))
	first, err := e.Water("user-1", "Xương Rồng")
	require.NoError(t, err)
	assert.Equal(t, 5, first.Growth)

	atTime(e, t0.Add(3*time.Hour))
	_, err = e.Water("user-1", "Xương Rồng")
	assert.ErrorIs(t, err, ErrCooldownActive)

	g := e.Garden("user-1")
	for _, p := range g.Plants {
		assert.Equal(t, 5, p.Growth)
		assert.Equal(t, 100, p.Health)
	}
}

func TestWater_NoOwnedPlantMatches(t *testing.T) {
	e := newTestEngine(t)
	e.EnsureUser("user-1")

	_, err := e.Water("user-1", "Xương Rồng")
	assert.ErrorIs(t, err, ErrPlantNotFound)
}

func TestSun_AppliesGainsAndCooldown(t *testing.T) {
	e := newTestEngine(t)
	t0 := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	atTime(e, t0)
	_, err := e.PlantSeed("user-1", "Đồng Tiền")
	require.NoError(t, err)

	// Still inside the 3h sunlight window at +2h.
	atTime(e, t0.Add(2*time.Hour))
	_, err = e.Sun("user-1", "Đồng Tiền")
	assert.ErrorIs(t, err, ErrCooldownActive)

	atTime(e, t0.Add(3*time.Hour))
	p, err := e.Sun("user-1", "Đồng Tiền")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Health)
	assert.Equal(t, 8, p.Growth)
}

func TestClaimDaily_CooldownAndBalance(t *testing.T) {
	e := newTestEngine(t)
	t0 := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

	atTime(e, t0)
	balance, err := e.ClaimDaily("user-1")
	require.NoError(t, err)
	assert.Equal(t, 200, balance)

	atTime(e, t0.Add(23*time.Hour))
	_, err = e.ClaimDaily("user-1")
	assert.ErrorIs(t, err, ErrCooldownActive)
	assert.Equal(t, 200, e.Garden("user-1").Coins)

	atTime(e, t0.Add(24*time.Hour))
	balance, err = e.ClaimDaily("user-1")
	require.NoError(t, err)
	assert.Equal(t, 300, balance)
}

func TestFindPlant_PrefersOldestPlanting(t *testing.T) {
	g := newUserGarden()
	g.Plants["b"] = &Plant{ID: "b", Species: catalog.Species{Name: "Cây Xương Rồng"}, PlantedAt: 2000}
	g.Plants["a"] = &Plant{ID: "a", Species: catalog.Species{Name: "Cây Xương Rồng"}, PlantedAt: 1000}

	p := findPlant(g, "xương")
	require.NotNil(t, p)
	assert.Equal(t, "a", p.ID)
}

func TestFindPlant_TieBreaksOnID(t *testing.T) {
	g := newUserGarden()
	g.Plants["z"] = &Plant{ID: "z", Species: catalog.Species{Name: "Monstera Deliciosa"}, PlantedAt: 1000}
	g.Plants["a"] = &Plant{ID: "a", Species: catalog.Species{Name: "Monstera Deliciosa"}, PlantedAt: 1000}

	p := findPlant(g, "monstera")
	require.NotNil(t, p)
	assert.Equal(t, "a", p.ID)
}
