package losses

import (
	"math"

	"github.com/notargets/physloss/InputParameters"
	"github.com/notargets/physloss/conservation"
	"github.com/notargets/physloss/utils"
)

// PhysicsInformedLoss weights, warms up and clamps the momentum
// conservation penalty for use alongside a data loss in a training loop.
//
// Instances are not safe for concurrent use. SetEpoch and
// ComputePhysicsLosses must be called from the single training-step driver.
type PhysicsInformedLoss struct {
	// Input parameters
	LambdaMomentum float64
	WarmupEpochs   int
	MaxPhysicsLoss float64
	currentEpoch   int
}

func NewPhysicsInformedLoss(lambdaMomentum float64, warmupEpochs int, maxPhysicsLoss float64) *PhysicsInformedLoss {
	return &PhysicsInformedLoss{
		LambdaMomentum: lambdaMomentum,
		WarmupEpochs:   warmupEpochs,
		MaxPhysicsLoss: maxPhysicsLoss,
	}
}

func NewFromParameters(pp *InputParameters.PhysicsParameters) *PhysicsInformedLoss {
	return NewPhysicsInformedLoss(pp.LambdaMomentum, pp.WarmupEpochs, pp.MaxPhysicsLoss)
}

// SetEpoch records the training epoch driving the warmup schedule. No
// monotonicity or sign validation, caller contract.
func (pl *PhysicsInformedLoss) SetEpoch(epoch int) {
	pl.currentEpoch = epoch
}

// WarmupFactor returns the linear ramp in [0,1]: 0 at epoch 0 rising to 1
// at WarmupEpochs and beyond. Non-positive WarmupEpochs disables warmup.
func (pl *PhysicsInformedLoss) WarmupFactor() float64 {
	if pl.WarmupEpochs <= 0 {
		return 1.
	}
	return math.Min(1., float64(pl.currentEpoch)/float64(pl.WarmupEpochs))
}

// ComputePhysicsLosses computes the weighted physics loss for one training
// step. velInit and velPred are flat (batchSize*nNodes, 3).
//
// The returned total is the value to feed the optimizer. The breakdown map
// is a detached report for logging only and must not flow back into
// optimization; when the momentum term is active it holds the unclamped
// "momentum" and the "momentum_clamped" values, and always "total_physics"
// and "warmup_factor".
//
// The raw loss is clamped to MaxPhysicsLoss / max(LambdaMomentum, 1e-6) so
// that the weighted term LambdaMomentum*clamped never exceeds
// MaxPhysicsLoss regardless of the weight.
func (pl *PhysicsInformedLoss) ComputePhysicsLosses(velInit, velPred utils.Matrix, nNodes, batchSize int, masses ...utils.Vector) (total float64, breakdown map[string]float64) {
	var (
		warmupFactor = pl.WarmupFactor()
	)
	breakdown = make(map[string]float64)
	if pl.LambdaMomentum > 0 {
		momentumLoss := conservation.MomentumConservationLoss(velInit, velPred, nNodes, batchSize, masses...)
		momentumLossClamped := math.Min(momentumLoss, pl.MaxPhysicsLoss/math.Max(pl.LambdaMomentum, 1.e-6))
		breakdown["momentum"] = momentumLoss
		breakdown["momentum_clamped"] = momentumLossClamped
		total += pl.LambdaMomentum * momentumLossClamped * warmupFactor
	}
	breakdown["total_physics"] = total
	breakdown["warmup_factor"] = warmupFactor
	return
}
