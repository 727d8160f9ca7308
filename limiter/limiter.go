package limiter

import (
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/mat"
)

type Limiter struct {
	Stencil  *Stencil
	Detector Detector
	WENO     *WENO
	Troubled []bool // Flags from the last Apply
	pm       *utils.PartitionMap
	rebuilt  []*mat.Dense
}

func New(st *Stencil, det Detector, weno *WENO, parallelDegree int) (l *Limiter, err error) {
	if st == nil || weno == nil {
		err = types.NewConfigurationError("limiter", "a limiter needs a stencil and a reconstruction")
		return
	}
	if det == nil {
		det = Off{}
	}
	K := st.Len()
	l = &Limiter{
		Stencil:  st,
		Detector: det,
		WENO:     weno,
		Troubled: make([]bool, K),
		pm:       utils.NewPartitionMap(utils.DefaultParallelDegree(parallelDegree), K),
		rebuilt:  make([]*mat.Dense, K),
	}
	return
}

/*
Apply flags and rebuilds troubled cells. All reconstructions read the incoming state and are
written back only after every cell is done, so no cell sees a half limited neighbor.
*/
func (l *Limiter) Apply(state []float64) (nTroubled int, err error) {
	var (
		st = l.Stencil
	)
	err = l.pm.Run(func(bn, kMin, kMax int) (err error) {
		for k := kMin; k < kMax; k++ {
			l.rebuilt[k] = nil
			if l.Troubled[k] = l.Detector.Troubled(st, state, k); !l.Troubled[k] {
				continue
			}
			if st.Refs[k].Basis.Degree() == 0 {
				continue
			}
			if l.rebuilt[k], err = l.WENO.Reconstruct(st, state, k); err != nil {
				return
			}
		}
		return
	})
	if err != nil {
		return
	}
	for k, c := range l.rebuilt {
		if l.Troubled[k] {
			nTroubled++
		}
		if c == nil {
			continue
		}
		copy(state[st.Offsets[k]:st.Offsets[k+1]], c.RawMatrix().Data)
		l.rebuilt[k] = nil
	}
	return
}
