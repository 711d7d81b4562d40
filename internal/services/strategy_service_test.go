package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/models"
)

func TestDescribeStrategy(t *testing.T) {
	strategy, err := DescribeStrategy(models.StrategyStandard)
	require.NoError(t, err)
	assert.Equal(t, "Standard", strategy.Label)
	assert.Equal(t, []string{
		"Sell 50% @ 2x (Breakeven)",
		"Sell 25% @ 5x",
		"Hold 25% (Moonbag)",
	}, strategy.Timeline)

	strategy, err = DescribeStrategy(models.StrategyMoonshot)
	require.NoError(t, err)
	assert.Equal(t, "Moonshot", strategy.Label)
	assert.Equal(t, "Hold 50% for Valhalla", strategy.Timeline[2])

	_, err = DescribeStrategy("paper_hands")
	assert.ErrorIs(t, err, ErrEstrategiaDesconocida)
}

func TestValidStrategy(t *testing.T) {
	assert.True(t, ValidStrategy(models.StrategyConservative))
	assert.True(t, ValidStrategy(models.StrategyStandard))
	assert.True(t, ValidStrategy(models.StrategyMoonshot))
	assert.False(t, ValidStrategy(""))
	assert.False(t, ValidStrategy("Standard")) // sensible a mayúsculas
}

func TestListStrategiesOrder(t *testing.T) {
	strategies := ListStrategies()
	require.Len(t, strategies, 3)
	assert.Equal(t, models.StrategyConservative, strategies[0].ID)
	assert.Equal(t, models.StrategyStandard, strategies[1].ID)
	assert.Equal(t, models.StrategyMoonshot, strategies[2].ID)

	for _, s := range strategies {
		assert.Len(t, s.Timeline, 3)
		assert.NotEmpty(t, s.Description)
	}
}
