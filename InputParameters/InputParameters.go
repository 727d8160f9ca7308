package InputParameters

import (
	"fmt"
	"os"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/notargets/godgfr/types"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title           string  `yaml:"Title"`
	Case            string  `yaml:"Case"`
	Family          string  `yaml:"Family"`
	Layout          string  `yaml:"Layout"`
	Basis           string  `yaml:"Basis"`
	PolynomialOrder int     `yaml:"PolynomialOrder"`
	Shape           string  `yaml:"Shape"` // line, quad or tri
	K               int     `yaml:"K"`     // Cells per direction
	CFL             float64 `yaml:"CFL"`
	FinalTime       float64 `yaml:"FinalTime"`
	RKOrder         int     `yaml:"RKOrder"`
	FluxType        string  `yaml:"FluxType"`
	Gamma           float64 `yaml:"Gamma"`
	Nu              float64 `yaml:"Nu"`
	Beta0           float64 `yaml:"Beta0"`
	Limiter         string  `yaml:"Limiter"`
	Threshold       float64 `yaml:"Threshold"`
	W0              float64 `yaml:"W0"`
	Eps             float64 `yaml:"Eps"`
	Characteristic  bool    `yaml:"Characteristic"` // Limit the characteristic variables of a gas
	ParallelDegree  int     `yaml:"ParallelDegree"`
	// Boundary tag to condition type, overriding the case's own boundaries
	BCs map[string]string `yaml:"BCs"`
}

// NewInputParameters returns the defaults, an advection pulse on a line
func NewInputParameters() *InputParameters {
	return &InputParameters{
		Title:           "Advection pulse",
		Case:            "advection",
		Family:          "dg",
		Layout:          "general",
		PolynomialOrder: 2,
		Shape:           "line",
		K:               20,
		CFL:             0.5,
		FinalTime:       1,
		RKOrder:         3,
		FluxType:        "roe",
		Gamma:           1.4,
		Nu:              0.01,
		Beta0:           2,
		W0:              0.001,
		Eps:             1.e-6,
	}
}

// Parse overlays the YAML document on the current values, keys not present keep theirs
func (ip *InputParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return types.NewConfigurationError("input", "unable to parse input: %v", err)
	}
	return ip.Check()
}

func (ip *InputParameters) ReadFile(fileName string) (err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return types.NewConfigurationError("input", "unable to read input file: %v", err)
	}
	return ip.Parse(data)
}

func (ip *InputParameters) Check() (err error) {
	switch {
	case ip.K < 1:
		err = types.NewConfigurationError("input", "K must be positive, have %d", ip.K)
	case ip.PolynomialOrder < 0:
		err = types.NewConfigurationError("input", "PolynomialOrder must not be negative, have %d", ip.PolynomialOrder)
	case !(ip.CFL > 0):
		err = types.NewConfigurationError("input", "CFL must be positive, have %g", ip.CFL)
	case !(ip.FinalTime > 0):
		err = types.NewConfigurationError("input", "FinalTime must be positive, have %g", ip.FinalTime)
	}
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Case\n", ip.Case)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%s/%s]\t\t= Family/Layout\n", ip.Family, ip.Layout)
	fmt.Printf("[%d]\t\t\t= Polynomial Order\n", ip.PolynomialOrder)
	fmt.Printf("[%d %s]\t\t= Cells per direction\n", ip.K, ip.Shape)
	fmt.Printf("[%d]\t\t\t= Runge-Kutta Order\n", ip.RKOrder)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	if ip.Limiter != "" {
		fmt.Printf("[%s]\t\t\t= Limiter, threshold %g\n", ip.Limiter, ip.Threshold)
		if ip.Characteristic {
			fmt.Printf("[%v]\t\t\t= Characteristic limiting\n", ip.Characteristic)
		}
	}
	keys := make([]string, 0, len(ip.BCs))
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
