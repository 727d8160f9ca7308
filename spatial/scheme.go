package spatial

import (
	"fmt"
	"math"

	"github.com/notargets/godgfr/basis"
	"github.com/notargets/godgfr/limiter"
	"github.com/notargets/godgfr/mesh"
	"github.com/notargets/godgfr/quadrature"
	"github.com/notargets/godgfr/riemann"
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/floats"
)

/*
Scheme is a configured spatial discretization. The state is one flat vector holding, cell after
cell, the Len x Ncomp coefficient matrix of every cell's projection. Interface fluxes are
computed once per face into a shared buffer before any cell reads them.
*/
type Scheme struct {
	Mesh    *mesh.Mesh
	Config  Config
	Ncomp   int
	Refs    []*basis.Reference
	Offsets []int
	Limiter *limiter.Limiter
	faces   []*faceData
	fr      []*frCell
	// [face][point][component], normal numerical flux along the face normal
	faceFlux         [][][]float64
	pmFaces, pmCells *utils.PartitionMap
}

// faceData is a face with the points where its flux is computed and the basis seen from both sides
type faceData struct {
	*mesh.Face
	Points   [][]float64 // Holder side coordinates
	Weights  []float64   // Surface weights of DG face integrals
	BC       BoundaryCondition
	Distance float64
	phi      [2][][]float64   // [side][point][function]
	grad     [2][][][]float64 // [side][point][function][dimension], only with viscosity
}

// sideOf reports which side of the face local face lf of cell k is, and the sign of its outward normal
func sideOf(f *mesh.Face, k, lf int) (side int, sign float64) {
	if f.Holder == k && f.HolderFace == lf {
		return 0, 1
	}
	return 1, -1
}

func New(m *mesh.Mesh, cfg Config) (s *Scheme, err error) {
	if err = cfg.validate(); err != nil {
		return
	}
	if m == nil || len(m.Cells) == 0 {
		err = types.NewConfigurationError("spatial", "empty mesh")
		return
	}
	if cfg.Solver.Dimension() != m.Dim {
		err = types.NewConfigurationError("spatial", "numerical flux is %d dimensional, mesh is %d dimensional",
			cfg.Solver.Dimension(), m.Dim)
		return
	}
	// Every boundary is known before anything is built
	for _, tag := range m.BoundaryTags() {
		if _, ok := cfg.Boundaries[tag]; !ok {
			err = types.NewConfigurationError("spatial", "no boundary condition for boundary %q", tag)
			return
		}
	}
	var (
		K  = len(m.Cells)
		pd = utils.DefaultParallelDegree(cfg.ParallelDegree)
	)
	s = &Scheme{
		Mesh:    m,
		Config:  cfg,
		Ncomp:   cfg.Solver.Components(),
		Refs:    make([]*basis.Reference, K),
		Offsets: make([]int, K+1),
		pmFaces: utils.NewPartitionMap(pd, len(m.Faces)),
		pmCells: utils.NewPartitionMap(pd, K),
	}
	shared := make(map[utils.ElementType]*basis.Reference)
	for k, c := range m.Cells {
		ref, ok := shared[c.Shape]
		if !ok {
			if ref, err = s.reference(c.Shape); err != nil {
				return nil, err
			}
			shared[c.Shape] = ref
		}
		s.Refs[k] = ref
		s.Offsets[k+1] = s.Offsets[k] + ref.Len()*s.Ncomp
	}
	switch cfg.Family {
	case FAMILY_DG:
		err = s.buildDGFaces()
	case FAMILY_FR:
		err = s.buildFR()
	}
	if err != nil {
		return nil, err
	}
	s.faceFlux = make([][][]float64, len(s.faces))
	for f, fd := range s.faces {
		s.faceFlux[f] = make([][]float64, len(fd.Points))
	}
	if cfg.Limiter != nil {
		var (
			st   *limiter.Stencil
			weno *limiter.WENO
		)
		if st, err = limiter.NewStencil(m, s.Refs, s.Ncomp); err != nil {
			return nil, err
		}
		maxFaces := 0
		for _, c := range m.Cells {
			maxFaces = max(maxFaces, len(c.Faces))
		}
		if cfg.Limiter.Characteristic {
			gd, ok := cfg.Solver.(riemann.GasDynamics)
			if !ok {
				return nil, types.NewConfigurationError("spatial",
					"characteristic limiting needs an Euler flux, have %T", cfg.Solver)
			}
			weno, err = limiter.NewCharacteristicWENO(cfg.Limiter.W0, cfg.Limiter.Eps, maxFaces, gd.IdealGas())
		} else {
			weno, err = limiter.NewWENO(cfg.Limiter.W0, cfg.Limiter.Eps, maxFaces)
		}
		if err != nil {
			return nil, err
		}
		if s.Limiter, err = limiter.New(st, cfg.Limiter.Detector, weno, pd); err != nil {
			return nil, err
		}
	}
	if cfg.Verbose {
		fmt.Printf("%s\n", m)
		fmt.Printf("Scheme: %s, %s layout, degree %d, %d unknowns\n",
			cfg.Family.Print(), cfg.Layout.Print(), cfg.Degree, s.Len())
		fmt.Printf("Using %d go routines in parallel\n", pd)
		if cfg.Viscous != nil {
			fmt.Printf("Viscous flux enabled, penalty beta0 = %8.5f\n", cfg.Beta0)
		}
		if s.Limiter != nil {
			fmt.Printf("Limiter enabled, detector %T\n", s.Limiter.Detector)
		}
	}
	return
}

func (s *Scheme) reference(shape utils.ElementType) (ref *basis.Reference, err error) {
	var (
		cfg  = s.Config
		kind basis.Kind
		b    basis.Basis
		rule *quadrature.Rule
	)
	if kind, err = cfg.basisKind(shape.IsTensorProduct()); err != nil {
		return
	}
	if b, err = basis.New(kind, shape, cfg.Degree); err != nil {
		return
	}
	if rule, err = s.rule(shape); err != nil {
		return
	}
	return basis.NewReference(b, rule)
}

// rule is the volume or face rule of the layout
func (s *Scheme) rule(shape utils.ElementType) (*quadrature.Rule, error) {
	if s.Config.Layout == LAYOUT_Lobatto {
		return quadrature.Lobatto(shape, s.Config.Degree+1)
	}
	return quadrature.ForDegree(shape, 2*s.Config.Degree+1)
}

// newFace fills the side data of a face once its points are known
func (s *Scheme) newFace(f *mesh.Face, pts [][]float64, wts []float64) (fd *faceData) {
	var (
		hg      = s.Mesh.Cells[f.Holder].Geometry
		viscous = s.Config.Viscous != nil
	)
	fd = &faceData{Face: f, Points: pts, Weights: wts}
	cells := []int{f.Holder, f.Sharer}
	for side, k := range cells {
		if k < 0 {
			continue
		}
		var (
			ref  = s.Refs[k]
			geom = s.Mesh.Cells[k].Geometry
		)
		fd.phi[side] = make([][]float64, len(pts))
		if viscous {
			fd.grad[side] = make([][][]float64, len(pts))
		}
		for q, x := range pts {
			if side == 1 {
				x = f.SharerPoint(x)
			}
			r := geom.Inverse(x)
			fd.phi[side][q] = ref.Basis.Values(r)
			if viscous {
				fd.grad[side][q] = ref.Basis.Gradients(r)
			}
		}
	}
	if f.IsBoundary() {
		fd.BC = s.Config.Boundaries[f.BC]
		fd.Distance = 2 * math.Abs(floats.Dot(f.Normal, sub(f.Map.Center, hg.Center)))
	} else {
		// The sharer center seen from the holder side of the face
		sc := make([]float64, len(f.Offset))
		for d := range sc {
			sc[d] = s.Mesh.Cells[f.Sharer].Geometry.Center[d] - f.Offset[d]
		}
		fd.Distance = math.Abs(floats.Dot(f.Normal, sub(sc, hg.Center)))
	}
	return
}

func sub(a, b []float64) (c []float64) {
	c = make([]float64, len(a))
	for i := range a {
		c[i] = a[i] - b[i]
	}
	return
}

// Len is the length of the state vector
func (s *Scheme) Len() int { return s.Offsets[len(s.Offsets)-1] }

// Projection is a view of cell k inside state
func (s *Scheme) Projection(state []float64, k int) *basis.Projection {
	return basis.NewProjection(s.Refs[k], s.Mesh.Cells[k].Geometry, state[s.Offsets[k]:s.Offsets[k+1]], s.Ncomp)
}

// Initialize samples an initial condition into a new state vector
func (s *Scheme) Initialize(f func(x []float64) []float64) (state []float64) {
	state = make([]float64, s.Len())
	for k := range s.Mesh.Cells {
		s.Projection(state, k).Approximate(f)
	}
	return
}

// CellAverages returns the average of every component in every cell, [cell][component]
func (s *Scheme) CellAverages(state []float64) (avg [][]float64) {
	avg = make([][]float64, len(s.Mesh.Cells))
	for k := range s.Mesh.Cells {
		avg[k] = s.Projection(state, k).Average()
	}
	return
}

// Evaluate returns the solution of cell k at the reference point r
func (s *Scheme) Evaluate(state []float64, k int, r []float64) []float64 {
	return s.Projection(state, k).Value(r)
}

// Integral of every component over the domain
func (s *Scheme) Integral(state []float64) (total []float64) {
	total = make([]float64, s.Ncomp)
	for k, c := range s.Mesh.Cells {
		avg := s.Projection(state, k).Average()
		for i := range total {
			total[i] += avg[i] * c.Geometry.Volume
		}
	}
	return
}

/*
MaxStableDt is the explicit time step limit CFL h / ((2p+1) lambda), with lambda the largest
wave speed found at the volume points of a cell along its face normals. A viscous flux further
bounds the step by CFL h^2 / ((2p+1)^2 nu).
*/
func (s *Scheme) MaxStableDt(state []float64, cfl float64) (dt float64) {
	var (
		pp1 = float64(2*s.Config.Degree + 1)
	)
	dt = math.Inf(1)
	for k, c := range s.Mesh.Cells {
		var (
			p            = s.Projection(state, k)
			h            = c.Geometry.Scale
			lambda, diff float64
		)
		for q := range p.Ref.Rule.Points {
			u := p.Combine(p.Ref.Phi[q])
			for _, fi := range c.Faces {
				lambda = math.Max(lambda, s.Config.Solver.MaxWaveSpeed(u, s.Mesh.Faces[fi].Normal))
			}
			if s.Config.Viscous != nil {
				diff = math.Max(diff, s.Config.Viscous.Diffusivity(u))
			}
		}
		if lambda > 0 {
			dt = math.Min(dt, cfl*h/(pp1*lambda))
		}
		if diff > 0 {
			dt = math.Min(dt, cfl*h*h/(pp1*pp1*diff))
		}
	}
	return
}

// PostStep applies the limiter, if one is configured, after a complete time step
func (s *Scheme) PostStep(state []float64) (err error) {
	if s.Limiter == nil {
		return
	}
	var n int
	if n, err = s.Limiter.Apply(state); err != nil {
		return
	}
	if s.Config.Verbose && n > 0 {
		fmt.Printf("Limited %d troubled cells\n", n)
	}
	return
}

/*
ComputeResidual writes the time derivative of every coefficient of state into residual. Face
fluxes are computed first, each face by exactly one go routine, then every cell assembles its
own residual from its volume terms and the shared face fluxes.
*/
func (s *Scheme) ComputeResidual(state []float64, t float64, residual []float64) (err error) {
	if len(state) != s.Len() || len(residual) != s.Len() {
		err = types.NewConfigurationError("spatial", "state and residual need length %d, have %d and %d",
			s.Len(), len(state), len(residual))
		return
	}
	err = s.pmFaces.Run(func(bn, fMin, fMax int) (err error) {
		for f := fMin; f < fMax; f++ {
			if err = s.computeFaceFlux(state, t, f); err != nil {
				return
			}
		}
		return
	})
	if err != nil {
		return
	}
	return s.pmCells.Run(func(bn, kMin, kMax int) (err error) {
		for k := kMin; k < kMax; k++ {
			switch s.Config.Family {
			case FAMILY_DG:
				s.dgResidual(state, k, residual)
			case FAMILY_FR:
				s.frResidual(state, k, residual)
			}
			if !utils.AllFinite(residual[s.Offsets[k]:s.Offsets[k+1]]) {
				return types.NewPhysicalInfeasibilityError("spatial", s.Projection(state, k).Average(),
					"non finite residual in cell %d", k)
			}
		}
		return
	})
}

func (s *Scheme) computeFaceFlux(state []float64, t float64, f int) (err error) {
	var (
		fd      = s.faces[f]
		n       = fd.Normal
		hp      = s.Projection(state, fd.Holder)
		sp      *basis.Projection
		viscous = s.Config.Viscous
	)
	if !fd.IsBoundary() {
		sp = s.Projection(state, fd.Sharer)
	}
	for q, x := range fd.Points {
		var (
			uL = hp.Combine(fd.phi[0][q])
			uR []float64
			fn []float64
		)
		if sp == nil {
			uR = fd.BC.GhostState(uL, x, t, n)
		} else {
			uR = sp.Combine(fd.phi[1][q])
		}
		if fn, err = s.Config.Solver.Flux(uL, uR, n); err != nil {
			return
		}
		if viscous != nil {
			gL := hp.CombineGradient(fd.grad[0][q])
			gR := gL
			if sp != nil {
				gR = sp.CombineGradient(fd.grad[1][q])
			}
			g := riemann.CommonGradient(n, uL, uR, gL, gR, s.Config.Beta0, fd.Distance)
			avg := make([]float64, len(uL))
			for i := range avg {
				avg[i] = 0.5 * (uL[i] + uR[i])
			}
			gn := riemann.NormalFlux(viscous.Flux(avg, g), n)
			for i := range fn {
				fn[i] -= gn[i]
			}
		}
		s.faceFlux[f][q] = fn
	}
	return
}

// totalFlux is the physical flux F(u) less the viscous flux G(u, grad u), [component][dimension]
func (s *Scheme) totalFlux(u []float64, grad [][]float64) (H [][]float64) {
	H = s.Config.Solver.PhysicalFlux(u)
	if s.Config.Viscous == nil {
		return
	}
	G := s.Config.Viscous.Flux(u, grad)
	for c := range H {
		for d := range H[c] {
			H[c][d] -= G[c][d]
		}
	}
	return
}
