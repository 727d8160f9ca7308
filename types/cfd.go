package types

import (
	"fmt"
	"strings"
)

//go:generate stringer -type=BCFLAG

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_In
	BC_Dirichlet
	BC_Wall
	BC_Out
	BC_Periodic
)

var BCNameMap = map[string]BCFLAG{
	"inflow":    BC_In,
	"in":        BC_In,
	"out":       BC_Out,
	"outflow":   BC_Out,
	"wall":      BC_Wall,
	"slip":      BC_Wall,
	"dirichlet": BC_Dirichlet,
	"periodic":  BC_Periodic,
}

var BCPrintNames = []string{"None", "Inflow", "Dirichlet", "Wall", "Outflow", "Periodic"}

func (bc BCFLAG) String() string {
	if int(bc) < len(BCPrintNames) {
		return BCPrintNames[bc]
	}
	return fmt.Sprintf("BCFLAG(%d)", bc)
}

func NewBCFLAG(label string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(label)]; !ok {
		err = NewConfigurationError("boundary", "unknown boundary condition type %q", label)
	}
	return
}
