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
	"strings"

	"github.com/notargets/godgfr/quadrature"
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"github.com/spf13/cobra"
)

// QuadratureCmd represents the quadrature command
var QuadratureCmd = &cobra.Command{
	Use:   "quadrature",
	Short: "Print the quadrature rule of a reference shape",
	Long: `
Prints the points and weights of the smallest rule exact to the requested degree, or of the
Gauss-Lobatto rule with the requested number of points per direction.

godgfr quadrature --shape triangle --degree 4`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err   error
			shape utils.ElementType
			rule  *quadrature.Rule
		)
		label, _ := cmd.Flags().GetString("shape")
		degree, _ := cmd.Flags().GetInt("degree")
		lobatto, _ := cmd.Flags().GetInt("lobatto")
		if shape, err = parseShape(label); err == nil {
			if lobatto > 0 {
				rule, err = quadrature.Lobatto(shape, lobatto)
			} else {
				rule, err = quadrature.ForDegree(shape, degree)
			}
		}
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		printRule(rule)
	},
}

func init() {
	rootCmd.AddCommand(QuadratureCmd)
	QuadratureCmd.Flags().String("shape", "line", "reference shape: line, triangle, quad, tet, hex, prism or pyramid")
	QuadratureCmd.Flags().IntP("degree", "d", 2, "polynomial degree integrated exactly")
	QuadratureCmd.Flags().Int("lobatto", 0, "number of Gauss-Lobatto points per direction, tensor shapes only")
}

func parseShape(label string) (shape utils.ElementType, err error) {
	for s := utils.Point; s <= utils.Pyramid; s++ {
		if strings.EqualFold(label, s.String()) {
			return s, nil
		}
	}
	switch strings.ToLower(label) {
	case "tri":
		return utils.Triangle, nil
	case "tetrahedron":
		return utils.Tet, nil
	case "wedge":
		return utils.Prism, nil
	}
	err = types.NewConfigurationError("quadrature", "unknown shape %q", label)
	return
}

func printRule(rule *quadrature.Rule) {
	fmt.Printf("%s rule, %d points, exact to degree %d, volume %8.5f\n",
		rule.Shape, rule.Len(), rule.Exactness, rule.Volume())
	for i, x := range rule.Points {
		fmt.Printf("%4d: w = %18.15f, r = %v\n", i, rule.Weights[i], x)
	}
}
