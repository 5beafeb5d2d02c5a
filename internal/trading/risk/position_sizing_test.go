package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/Breakout/models"
)

func TestCalculatePositionSize(t *testing.T) {
	res, err := CalculatePositionSize(0.5, 0.48, 0.56, 10000, 0.01)
	require.NoError(t, err)

	// 100 at risk over a 0.02 stop
	assert.InDelta(t, 5000, res.PositionSize, 1e-9)
	assert.InDelta(t, 2500, res.PositionValue, 1e-9)
	assert.InDelta(t, 3, res.RiskRewardRatio, 1e-9)
	assert.Equal(t, 0.01, res.AccountRisk)
	assert.Equal(t, 0.48, res.StopLoss)
	assert.Equal(t, 0.56, res.TakeProfit)
}

func TestCalculatePositionSize_CappedByAccount(t *testing.T) {
	// A 0.1% stop would need a position worth ten times the account
	res, err := CalculatePositionSize(1, 0.999, 1.003, 1000, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 1000, res.PositionSize, 1e-9)
	assert.InDelta(t, 1000, res.PositionValue, 1e-9)
}

func TestCalculatePositionSize_Invalid(t *testing.T) {
	tests := []struct {
		name                                 string
		entry, stop, target, account, perTrd float64
	}{
		{name: "stop above entry", entry: 1, stop: 1.1, target: 1.3, account: 1000, perTrd: 0.01},
		{name: "zero entry", entry: 0, stop: -1, target: 1, account: 1000, perTrd: 0.01},
		{name: "no account", entry: 1, stop: 0.9, target: 1.3, account: 0, perTrd: 0.01},
		{name: "risk above 100%", entry: 1, stop: 0.9, target: 1.3, account: 1000, perTrd: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CalculatePositionSize(tt.entry, tt.stop, tt.target, tt.account, tt.perTrd)
			assert.Error(t, err)
			assert.Nil(t, res)
		})
	}

	_, err := CalculatePositionSize(1, 1, 2, 1000, 0.01)
	assert.ErrorIs(t, err, ErrInvalidLevels)
}

func TestStopLossPercentAndRatio(t *testing.T) {
	assert.InDelta(t, 4, StopLossPercent(0.5, 0.48), 1e-9)
	assert.Equal(t, 0.0, StopLossPercent(0, 1))
	assert.InDelta(t, 3, RiskRewardRatio(0.5, 0.48, 0.56), 1e-9)
	assert.Equal(t, 0.0, RiskRewardRatio(0.5, 0.5, 0.56))
}

func TestForSignal(t *testing.T) {
	sig := models.Signal{Symbol: "ABC/USDT", EntryPrice: 0.5, StopLoss: 0.48, TakeProfit: 0.56, RiskLevel: models.TierLow}

	res, err := ForSignal(sig, 10000, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 5000, res.PositionSize, 1e-9)

	sig.RiskLevel = models.TierVeryHigh
	res, err = ForSignal(sig, 10000, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 2500, res.PositionSize, 1e-9)
	assert.InDelta(t, 1250, res.PositionValue, 1e-9)
	assert.InDelta(t, 0.005, res.AccountRisk, 1e-12)

	sig.StopLoss = 0.6
	_, err = ForSignal(sig, 10000, 0.01)
	assert.ErrorIs(t, err, ErrInvalidLevels)
}

func TestAdjustForRiskLevel(t *testing.T) {
	assert.Equal(t, 100.0, AdjustForRiskLevel(100, models.TierMedium))
	assert.Equal(t, 75.0, AdjustForRiskLevel(100, models.TierHigh))
	assert.Equal(t, 50.0, AdjustForRiskLevel(100, models.TierVeryHigh))
}
