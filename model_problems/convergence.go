package model_problems

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/notargets/godgfr/InputParameters"
	"github.com/notargets/godgfr/types"
)

// ConvergenceStudy collects the error of one case and degree over a sequence of grids
type ConvergenceStudy struct {
	Title    string
	Order    int
	CFL      float64
	NumCells []int
	L2       [][]float64 // [grid][component]
}

func NewConvergenceStudy(title string, order int, CFL float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		Title: title,
		Order: order,
		CFL:   CFL,
	}
}

func (cs *ConvergenceStudy) Add(numCells int, l2 []float64) {
	cs.NumCells = append(cs.NumCells, numCells)
	cs.L2 = append(cs.L2, l2)
}

// Orders returns the observed order of accuracy between each grid and the one before it
func (cs *ConvergenceStudy) Orders() (orders [][]float64) {
	for i := 1; i < len(cs.NumCells); i++ {
		ratio := math.Log(float64(cs.NumCells[i]) / float64(cs.NumCells[i-1]))
		o := make([]float64, len(cs.L2[i]))
		for c := range o {
			o[c] = math.Log(cs.L2[i-1][c]/cs.L2[i][c]) / ratio
		}
		orders = append(orders, o)
	}
	return
}

// RunConvergence solves the case of ip on grids of each of the given sizes
func RunConvergence(ip *InputParameters.InputParameters, levels []int) (cs *ConvergenceStudy, err error) {
	cs = NewConvergenceStudy(ip.Case, ip.PolynomialOrder, ip.CFL)
	for _, K := range levels {
		var (
			r     *Run
			level = *ip
		)
		level.K = K
		if r, err = NewRun(&level, false); err != nil {
			return nil, err
		}
		if err = r.Solve(nil); err != nil {
			return nil, err
		}
		l2, ok := r.L2Error()
		if !ok {
			err = types.NewConfigurationError("model problems", "%s has no exact solution at t = %g",
				r.Case.Type.Print(), r.Time)
			return nil, err
		}
		cs.Add(K, l2)
	}
	return
}

// WriteCSV writes one record per grid: title, cells, order, CFL and the error of every component
func (cs *ConvergenceStudy) WriteCSV(w io.Writer) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write([]string{"Title", "K", "Order", "CFL", "L2"}); err != nil {
		return
	}
	for i, K := range cs.NumCells {
		rec := []string{cs.Title, strconv.Itoa(K), strconv.Itoa(cs.Order), strconv.FormatFloat(cs.CFL, 'g', -1, 64)}
		for _, e := range cs.L2[i] {
			rec = append(rec, strconv.FormatFloat(e, 'g', -1, 64))
		}
		if err = cw.Write(rec); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads the records of WriteCSV back, one study per title and order
func ReadCSV(r io.Reader) (studies map[string]*ConvergenceStudy, err error) {
	var records [][]string
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	if records, err = cr.ReadAll(); err != nil {
		return
	}
	studies = make(map[string]*ConvergenceStudy)
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("record %d has %d fields, need at least 5", i, len(rec))
		}
		var (
			K, order int
			cfl      float64
			l2       = make([]float64, len(rec)-4)
		)
		if K, err = strconv.Atoi(rec[1]); err != nil {
			return
		}
		if order, err = strconv.Atoi(rec[2]); err != nil {
			return
		}
		if cfl, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return
		}
		for j := range l2 {
			if l2[j], err = strconv.ParseFloat(rec[4+j], 64); err != nil {
				return
			}
		}
		key := rec[0] + rec[2]
		cs, ok := studies[key]
		if !ok {
			cs = NewConvergenceStudy(rec[0], order, cfl)
			studies[key] = cs
		}
		cs.Add(K, l2)
	}
	return
}
