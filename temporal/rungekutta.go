package temporal

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/floats"
)

// System is a semi discrete problem du/dt = L(u, t)
type System interface {
	ComputeResidual(state []float64, t float64, residual []float64) error
}

// PostStepper is implemented by systems that adjust the state once per complete step, like a limiter
type PostStepper interface {
	PostStep(state []float64) error
}

/*
RungeKutta is an explicit strong stability preserving scheme in Shu-Osher form. Stage i builds

	u(i+1) = sum_j Alpha[i][j] u(j) + Beta[i] dt L(u(i), t + C[i] dt)

from the step's initial state u(0) and the earlier stages. Every row of Alpha sums to one, so a
stage is a convex blend of states plus one residual update and cell averages are conserved.
*/
type RungeKutta struct {
	Order  int
	Alpha  [][]float64
	Beta   []float64
	C      []float64
	stages [][]float64
	res    []float64
}

func NewRungeKutta(order int) (rk *RungeKutta, err error) {
	rk = &RungeKutta{Order: order}
	switch order {
	case 1:
		rk.Alpha = [][]float64{{1}}
		rk.Beta = []float64{1}
		rk.C = []float64{0}
	case 2:
		rk.Alpha = [][]float64{{1}, {0.5, 0.5}}
		rk.Beta = []float64{1, 0.5}
		rk.C = []float64{0, 1}
	case 3:
		rk.Alpha = [][]float64{{1}, {0.75, 0.25}, {1. / 3., 0, 2. / 3.}}
		rk.Beta = []float64{1, 0.25, 2. / 3.}
		rk.C = []float64{0, 1, 0.5}
	default:
		err = types.NewConfigurationError("temporal", "Runge-Kutta of order %d is not available, use 1, 2 or 3", order)
		return nil, err
	}
	return
}

// Tableau returns copies of the stage blend weights, residual weights and stage times
func (rk *RungeKutta) Tableau() (alpha [][]float64, beta, c []float64) {
	for _, row := range rk.Alpha {
		alpha = append(alpha, append([]float64{}, row...))
	}
	beta = append(beta, rk.Beta...)
	c = append(c, rk.C...)
	return
}

func (rk *RungeKutta) Stages() int { return len(rk.Beta) }

func (rk *RungeKutta) allocate(n int) {
	if len(rk.res) == n {
		return
	}
	rk.res = make([]float64, n)
	rk.stages = make([][]float64, rk.Stages()+1)
	for i := range rk.stages {
		rk.stages[i] = make([]float64, n)
	}
}

/*
Step advances state from t to t+dt. Each stage calls ComputeResidual exactly once. On any error
state is left as it was, a non finite residual is reported as a PhysicalInfeasibilityError. After
the last stage, systems that are PostSteppers adjust the new state.
*/
func (rk *RungeKutta) Step(sys System, state []float64, t, dt float64) (err error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		err = types.NewConfigurationError("temporal", "time step must be positive and finite, have %g", dt)
		return
	}
	rk.allocate(len(state))
	copy(rk.stages[0], state)
	for i, beta := range rk.Beta {
		if err = sys.ComputeResidual(rk.stages[i], t+rk.C[i]*dt, rk.res); err != nil {
			return
		}
		if !utils.AllFinite(rk.res) {
			err = types.NewPhysicalInfeasibilityError("temporal", nil,
				"non finite residual in stage %d at t = %g", i+1, t)
			return
		}
		next := rk.stages[i+1]
		for j := range next {
			next[j] = 0
		}
		for j, a := range rk.Alpha[i] {
			if a != 0 {
				floats.AddScaled(next, a, rk.stages[j])
			}
		}
		floats.AddScaled(next, beta*dt, rk.res)
	}
	final := rk.stages[rk.Stages()]
	if ps, ok := sys.(PostStepper); ok {
		if err = ps.PostStep(final); err != nil {
			return
		}
	}
	copy(state, final)
	return
}

// Observer is called after every completed step, returning an error stops the time loop
type Observer func(t, dt float64, steps int, state []float64) error

/*
Solve steps from t0 to t1 with the step size returned by dtFn, clipping the last step to land on
t1. It returns the number of steps taken.
*/
func (rk *RungeKutta) Solve(sys System, state []float64, t0, t1 float64,
	dtFn func(state []float64, t float64) float64, observer Observer, verbose bool) (steps int, err error) {
	var (
		Time    = t0
		elapsed time.Duration
	)
	if verbose {
		fmt.Printf("Runge-Kutta SSP order %d, from t = %8.5f to t = %8.5f\n", rk.Order, t0, t1)
	}
	for Time < t1 {
		dt := dtFn(state, Time)
		if Time+dt > t1 {
			dt = t1 - Time
		}
		start := time.Now()
		if err = rk.Step(sys, state, Time, dt); err != nil {
			return
		}
		elapsed += time.Since(start)
		steps++
		Time += dt
		if t1-Time < 1.e-12*math.Max(1, math.Abs(t1)) {
			Time = t1
		}
		if observer != nil {
			if err = observer(Time, dt, steps, state); err != nil {
				return
			}
		}
		if verbose && (steps == 1 || steps%100 == 0 || Time >= t1) {
			fmt.Printf("Step %6d, t = %8.5f, dt = %8.5e\n", steps, Time, dt)
		}
	}
	if verbose {
		rate := 0.
		if steps > 0 {
			rate = elapsed.Seconds() / float64(steps)
		}
		fmt.Printf("%d steps in %v, %8.5f seconds per step\n", steps, elapsed, rate)
	}
	return
}
