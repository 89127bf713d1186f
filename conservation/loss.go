package conservation

import (
	"math"

	"github.com/notargets/physloss/utils"
)

// NormFloor keeps the normalization away from zero when the initial
// momentum of a sample vanishes.
const NormFloor = 1.e-6

// MomentumConservationLoss penalizes deviation of the predicted total
// momentum from the initial total momentum, per sample:
//
//	loss_b = sum((P_pred - P_init)^2) / max(sum(P_init^2), NormFloor)
//
// averaged over the batch. velInit and velPred are flat
// (batchSize*nNodes, 3). Normalizing by the initial momentum magnitude
// keeps samples with large momentum from dominating. NaN or Inf velocities
// propagate into the result unsanitized.
func MomentumConservationLoss(velInit, velPred utils.Matrix, nNodes, batchSize int, masses ...utils.Vector) (loss float64) {
	var (
		PInit = LinearMomentumBatched(velInit, nNodes, batchSize, masses...)
		PPred = LinearMomentumBatched(velPred, nNodes, batchSize, masses...)
	)
	for i := 0; i < batchSize; i++ {
		var (
			pI = PInit.Row(i)
			d  = PPred.Row(i).Sub(pI)
		)
		loss += d.Dot(d) / math.Max(pI.Dot(pI), NormFloor)
	}
	loss /= float64(batchSize)
	return
}
