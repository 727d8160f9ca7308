/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/notargets/godgfr/InputParameters"
	"github.com/notargets/godgfr/model_problems"
	"github.com/notargets/godgfr/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve a model problem",
	Long: `
Solves one of the model problems: an advection pulse, a Burgers sine wave, Sod's shock tube or a
diffusing sine wave. Parameters come from the YAML input file, flags override them.

godgfr run -I sod.yaml --family fr -n 3`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  *InputParameters.InputParameters
		)
		if ip, err = processInput(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		prof, _ := cmd.Flags().GetString("profile")
		if err = profileRun(prof, ".", func() error { return RunModel(ip, viper.GetBool("verbose")) }); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

var exampleFile = `
########################################
Title: "Sod shock tube"
Case: sod                 # advection, burgers, sod or diffusion
Family: dg                # dg or fr
Layout: general           # general or lobatto
PolynomialOrder: 2
Shape: line               # line, quad or tri
K: 100
CFL: 0.2
FinalTime: 0.2
RKOrder: 3
FluxType: roe             # exact, roe or lax
Limiter: modal            # off, all, modal or jump
########################################
`

func init() {
	rootCmd.AddCommand(RunCmd)
	addInputFlags(RunCmd)
	RunCmd.Flags().String("profile", "", "write a profile: cpu or mem")
}

// addInputFlags adds the flags that override the input file, bound to viper when the command runs
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
	cmd.Flags().StringP("case", "c", "", "model problem: advection, burgers, sod or diffusion")
	cmd.Flags().String("family", "", "discretization family: dg or fr")
	cmd.Flags().String("layout", "", "solution point layout: general or lobatto")
	cmd.Flags().StringP("shape", "s", "", "cell shape: line, quad or tri")
	cmd.Flags().IntP("n", "n", 0, "polynomial degree")
	cmd.Flags().IntP("k", "k", 0, "number of cells per direction")
	cmd.Flags().Float64("CFL", 0, "CFL - increase for speedup, decrease for stability")
	cmd.Flags().Float64("finalTime", 0, "FinalTime - the target end time for the sim")
	cmd.Flags().String("limiter", "", "troubled cell detector: off, all, modal or jump")
	cmd.Flags().Bool("characteristic", false, "limit the characteristic variables of the Euler equations")
	cmd.Flags().IntP("parallel", "p", 0, "number of go routines, defaults to the number of CPUs")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlags(cmd.Flags())
	}
}

/*
processInput starts from the defaults, overlays the input file and then every flag that was set,
either on the command line or through the config file and environment.
*/
func processInput() (ip *InputParameters.InputParameters, err error) {
	ip = InputParameters.NewInputParameters()
	if fileName := viper.GetString("inputConditionsFile"); fileName != "" {
		if err = ip.ReadFile(fileName); err != nil {
			return nil, err
		}
	}
	set := viper.IsSet
	for name, dst := range map[string]*string{
		"case": &ip.Case, "family": &ip.Family, "layout": &ip.Layout, "shape": &ip.Shape, "limiter": &ip.Limiter,
	} {
		if set(name) {
			*dst = viper.GetString(name)
		}
	}
	for name, dst := range map[string]*int{"n": &ip.PolynomialOrder, "k": &ip.K, "parallel": &ip.ParallelDegree} {
		if set(name) {
			*dst = viper.GetInt(name)
		}
	}
	for name, dst := range map[string]*float64{"CFL": &ip.CFL, "finalTime": &ip.FinalTime} {
		if set(name) {
			*dst = viper.GetFloat64(name)
		}
	}
	if set("characteristic") {
		ip.Characteristic = viper.GetBool("characteristic")
	}
	err = ip.Check()
	return
}

// profileRun runs fn under the named profile, stopping it before returning so failed runs are profiled too
func profileRun(kind, dir string, fn func() error) error {
	if kind == "" {
		return fn()
	}
	p := startProfile(kind, dir)
	defer p.Stop()
	return fn()
}

func startProfile(kind, dir string) interface{ Stop() } {
	switch kind {
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath(dir))
	default:
		return profile.Start(profile.CPUProfile, profile.ProfilePath(dir))
	}
}

func RunModel(ip *InputParameters.InputParameters, verbose bool) (err error) {
	if verbose {
		ip.Print()
	}
	var r *model_problems.Run
	if r, err = model_problems.NewRun(ip, verbose); err != nil {
		return
	}
	mass0 := r.Mass()
	if err = r.Solve(nil); err != nil {
		return
	}
	fmt.Printf("%s: %d steps to t = %8.5f\n", r.Case.Type.Print(), r.Steps, r.Time)
	mass := r.Mass()
	for i := range mass {
		fmt.Printf("Component %d: integral %12.8f, change %10.3e\n", i, mass[i], mass[i]-mass0[i])
	}
	if e, ok := r.L2Error(); ok {
		fmt.Printf("L2 error against the exact solution = %v\n", e)
	}
	if verbose {
		fmt.Println(utils.GetMemUsage())
	}
	return
}
