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
	"github.com/spf13/cobra"
)

// ConvergenceCmd represents the convergence command
var ConvergenceCmd = &cobra.Command{
	Use:   "convergence",
	Short: "Measure the order of accuracy of a model problem",
	Long: `
Solves the model problem of the input on a sequence of grids and reports the L2 error against
the exact solution and the observed order of accuracy, optionally saved as CSV.

godgfr convergence -I burgers.yaml --levels 8,16,32 --csvFile study.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		ip, err := processInput()
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		levels, _ := cmd.Flags().GetIntSlice("levels")
		csvFile, _ := cmd.Flags().GetString("csvFile")
		if err = RunConvergence(ip, levels, csvFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ConvergenceCmd)
	addInputFlags(ConvergenceCmd)
	ConvergenceCmd.Flags().IntSlice("levels", []int{8, 16, 32}, "number of cells per direction of each grid")
	ConvergenceCmd.Flags().String("csvFile", "", "file to write the study to as CSV")
}

func RunConvergence(ip *InputParameters.InputParameters, levels []int, csvFile string) (err error) {
	var cs *model_problems.ConvergenceStudy
	if cs, err = model_problems.RunConvergence(ip, levels); err != nil {
		return
	}
	fmt.Printf("Title = %s, Order = %d, CFL = %5.2f\n", cs.Title, cs.Order, cs.CFL)
	orders := cs.Orders()
	for i, K := range cs.NumCells {
		if i == 0 {
			fmt.Printf("%6d, L2 = %v\n", K, cs.L2[i])
			continue
		}
		fmt.Printf("%6d, L2 = %v, order = %v\n", K, cs.L2[i], orders[i-1])
	}
	if csvFile == "" {
		return
	}
	var f *os.File
	if f, err = os.Create(csvFile); err != nil {
		return
	}
	defer f.Close()
	return cs.WriteCSV(f)
}
