package model

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solver fits a linear decision function to standardized rows. The
// hand-rolled Newton-Raphson fitter is the mandatory default; an external
// logistic-regression implementation may be injected behind the same
// contract via FitterConfig.Solver.
type Solver interface {
	Fit(X [][]float64, y []int) (weights []float64, bias float64, err error)
}

// scoreClamp bounds the linear score before exponentiation so the logistic
// function cannot overflow.
const scoreClamp = 50.0

func sigmoid(z float64) float64 {
	if z > scoreClamp {
		z = scoreClamp
	} else if z < -scoreClamp {
		z = -scoreClamp
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

// NewtonConfig holds the Newton-Raphson (IRLS) fitting parameters.
type NewtonConfig struct {
	// L2 is the ridge penalty on the weight vector. The bias is not
	// regularized.
	L2 float64

	MaxIter int
	Tol     float64
}

// DefaultNewtonConfig returns the canonical fitting parameters.
func DefaultNewtonConfig() NewtonConfig {
	return NewtonConfig{L2: 1.0, MaxIter: 50, Tol: 1e-6}
}

// NewtonSolver fits an L2-penalized logistic model by iteratively
// reweighted least squares. The fit is deterministic: weights start at
// zero and no randomness is involved, so identical input produces
// bit-identical output.
type NewtonSolver struct {
	cfg NewtonConfig
}

// NewNewtonSolver builds a NewtonSolver with the given configuration.
func NewNewtonSolver(cfg NewtonConfig) *NewtonSolver {
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = DefaultNewtonConfig().MaxIter
	}
	if cfg.Tol <= 0 {
		cfg.Tol = DefaultNewtonConfig().Tol
	}
	return &NewtonSolver{cfg: cfg}
}

// Fit runs up to MaxIter Newton steps.
//
// Each iteration forms the gradient Xᵀ(p−y) + λw (bias gradient Σ(p−y)),
// the weighted Hessian Xᵀ·diag(p(1−p))·X + λI, solves for the weight step,
// and updates the bias by its gradient over Σp(1−p)+ε. Iteration stops when
// both the step norm and the bias gradient fall below Tol, or early with
// the best estimate so far if the Hessian is singular. A singular Hessian
// is not an error.
func (s *NewtonSolver) Fit(X [][]float64, y []int) ([]float64, float64, error) {
	n := len(X)
	if n == 0 {
		return nil, 0, errors.New("empty design matrix")
	}
	d := len(X[0])

	w := make([]float64, d)
	b := 0.0

	p := make([]float64, n)
	wt := make([]float64, n)
	gradW := mat.NewVecDense(d, nil)
	hess := mat.NewDense(d, d, nil)
	step := mat.NewVecDense(d, nil)

	for iter := 0; iter < s.cfg.MaxIter; iter++ {
		sumWt := 0.0
		gradB := 0.0
		for i, row := range X {
			z := b
			for j, v := range row {
				z += v * w[j]
			}
			p[i] = sigmoid(z)
			wt[i] = p[i] * (1.0 - p[i])
			sumWt += wt[i]
			gradB += p[i] - float64(y[i])
		}

		for j := 0; j < d; j++ {
			g := s.cfg.L2 * w[j]
			for i, row := range X {
				g += row[j] * (p[i] - float64(y[i]))
			}
			gradW.SetVec(j, g)
		}

		for j := 0; j < d; j++ {
			for k := j; k < d; k++ {
				h := 0.0
				for i, row := range X {
					h += row[j] * wt[i] * row[k]
				}
				if j == k {
					h += s.cfg.L2
				}
				hess.Set(j, k, h)
				hess.Set(k, j, h)
			}
		}

		var lu mat.LU
		lu.Factorize(hess)
		if err := lu.SolveVecTo(step, false, gradW); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) {
				// Singular Hessian: keep the best estimate so far.
				break
			}
		}

		stepNorm := 0.0
		for j := 0; j < d; j++ {
			v := step.AtVec(j)
			w[j] -= v
			stepNorm += v * v
		}
		b -= gradB / (sumWt + Epsilon)

		if math.Sqrt(stepNorm) < s.cfg.Tol && math.Abs(gradB) < s.cfg.Tol {
			break
		}
	}
	return w, b, nil
}
