package conservation

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/physloss/utils"
)

/*
Total linear momentum P = sum(m_i * v_i) of a charged particle system. For
an isolated system P is conserved, which makes deviation from the initial
momentum a usable training penalty for learned dynamics.
*/

// LinearMomentum computes the total momentum of a single sample. vel is
// (nNodes, 3), one row per particle. Without masses every particle has unit
// mass. A masses length inconsistent with the particle count panics with
// mat.ErrShape out of the mat-vec product.
func LinearMomentum(vel utils.Matrix, masses ...utils.Vector) (P utils.Vector) {
	var (
		nr, nc = vel.Dims()
		m      utils.Vector
	)
	if len(masses) != 0 {
		m = masses[0]
	} else {
		m = utils.NewVector(nr, utils.ConstArray(nr, 1))
	}
	// P_k = sum_i m_i * v_ik = (vel^T * m)_k
	P = utils.NewVector(nc)
	P.V.MulVec(vel.T(), m.V)
	return
}

// LinearMomentumGrouped computes per-sample momentum for pre-grouped data,
// one (nNodes, 3) matrix per sample. Row i of the result is the momentum of
// sample i. The same masses apply to every sample.
func LinearMomentumGrouped(vel []utils.Matrix, masses ...utils.Vector) (P utils.Matrix) {
	P = utils.NewMatrix(len(vel), 3)
	for i, v := range vel {
		P.M.SetRow(i, LinearMomentum(v, masses...).RawVector().Data)
	}
	return
}

// LinearMomentumBatched reinterprets flat (batchSize*nNodes, 3) storage as
// batchSize groups of nNodes particles and computes per-sample momentum
// (batchSize, 3). Panics with mat.ErrShape when the row count does not
// equal batchSize*nNodes.
func LinearMomentumBatched(vel utils.Matrix, nNodes, batchSize int, masses ...utils.Vector) (P utils.Matrix) {
	var (
		nr, _  = vel.Dims()
		groups = make([]utils.Matrix, batchSize)
	)
	if nr != nNodes*batchSize {
		panic(mat.ErrShape)
	}
	for i := 0; i < batchSize; i++ {
		groups[i] = vel.SliceRows(i*nNodes, (i+1)*nNodes)
	}
	P = LinearMomentumGrouped(groups, masses...)
	return
}
