package losses

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/physloss/InputParameters"
	"github.com/notargets/physloss/utils"
)

func TestWarmupFactor(t *testing.T) {
	// Warmup disabled
	{
		pl := NewPhysicsInformedLoss(0.1, 0, 10)
		assert.Equal(t, 1., pl.WarmupFactor())
		pl.SetEpoch(5)
		assert.Equal(t, 1., pl.WarmupFactor())
	}
	// Linear ramp, non-decreasing, capped at 1
	{
		pl := NewPhysicsInformedLoss(0.1, 10, 10)
		last := -1.
		for epoch := 0; epoch <= 20; epoch++ {
			pl.SetEpoch(epoch)
			wf := pl.WarmupFactor()
			assert.GreaterOrEqual(t, wf, last)
			assert.GreaterOrEqual(t, wf, 0.)
			assert.LessOrEqual(t, wf, 1.)
			last = wf
		}
		pl.SetEpoch(0)
		assert.Equal(t, 0., pl.WarmupFactor())
		pl.SetEpoch(5)
		assert.Equal(t, 0.5, pl.WarmupFactor())
		pl.SetEpoch(10)
		assert.Equal(t, 1., pl.WarmupFactor())
		pl.SetEpoch(15)
		assert.Equal(t, 1., pl.WarmupFactor())
	}
}

func TestComputePhysicsLosses(t *testing.T) {
	// Two samples of three particles: totals (1,0,0) and (0,2,0)
	velInit := utils.NewMatrix(6, 3, []float64{
		0.5, 0, 0,
		0.25, 0, 0,
		0.25, 0, 0,
		0, 1, 0,
		0, 0.5, 0,
		0, 0.5, 0,
	})
	// Conserved prediction: zero total, consistent breakdown
	{
		pl := NewPhysicsInformedLoss(0.1, 0, 10)
		total, breakdown := pl.ComputePhysicsLosses(velInit, velInit.Copy(), 3, 2)
		assert.Equal(t, 0., total)
		assert.Equal(t, 0., breakdown["momentum"])
		assert.Equal(t, 0., breakdown["momentum_clamped"])
		assert.Equal(t, 0., breakdown["total_physics"])
		assert.Equal(t, 1., breakdown["warmup_factor"])
	}
	// Weighted total = lambda * clamped * warmup
	{
		pl := NewPhysicsInformedLoss(0.25, 4, 10)
		pl.SetEpoch(1)
		velPred := velInit.Copy().Set(0, 0, velInit.At(0, 0)+1)
		total, breakdown := pl.ComputePhysicsLosses(velInit, velPred, 3, 2)
		require.Contains(t, breakdown, "momentum")
		assert.InDelta(t, 0.5, breakdown["momentum"], 1.e-12)
		assert.InDelta(t, 0.5, breakdown["momentum_clamped"], 1.e-12)
		assert.InDelta(t, 0.25*0.5*0.25, total, 1.e-12)
		assert.Equal(t, total, breakdown["total_physics"])
		assert.Equal(t, 0.25, breakdown["warmup_factor"])
	}
	// Disabled momentum term: exact zero, no momentum keys
	{
		pl := NewPhysicsInformedLoss(0, 0, 10)
		velPred := velInit.Copy().Set(0, 0, 1.e6)
		total, breakdown := pl.ComputePhysicsLosses(velInit, velPred, 3, 2)
		assert.Equal(t, 0., total)
		assert.NotContains(t, breakdown, "momentum")
		assert.NotContains(t, breakdown, "momentum_clamped")
		assert.Equal(t, 0., breakdown["total_physics"])
		assert.Equal(t, 1., breakdown["warmup_factor"])
	}
	// Clamp bound: the weighted term never exceeds MaxPhysicsLoss however
	// large the raw loss gets
	{
		pl := NewPhysicsInformedLoss(2.0, 0, 10)
		velPred := velInit.Copy().Set(0, 0, 1.e6)
		total, breakdown := pl.ComputePhysicsLosses(velInit, velPred, 3, 2)
		assert.Greater(t, breakdown["momentum"], breakdown["momentum_clamped"])
		assert.LessOrEqual(t, pl.LambdaMomentum*breakdown["momentum_clamped"], pl.MaxPhysicsLoss+1.e-12)
		assert.InDelta(t, 10., total, 1.e-12)
	}
	// Masses pass through to the momentum computation
	{
		pl := NewPhysicsInformedLoss(0.1, 0, 10)
		masses := utils.NewVector(3, []float64{1, 2, 3})
		total, _ := pl.ComputePhysicsLosses(velInit, velInit.Copy(), 3, 2, masses)
		assert.Equal(t, 0., total)
	}
}

func TestNewFromParameters(t *testing.T) {
	pp := InputParameters.NewPhysicsParameters()
	require.NoError(t, pp.Parse([]byte("LambdaMomentum: 0.5\nWarmupEpochs: 2\n")))
	pl := NewFromParameters(pp)
	assert.Equal(t, 0.5, pl.LambdaMomentum)
	assert.Equal(t, 2, pl.WarmupEpochs)
	assert.Equal(t, 10., pl.MaxPhysicsLoss)
	pl.SetEpoch(1)
	assert.Equal(t, 0.5, pl.WarmupFactor())
}
