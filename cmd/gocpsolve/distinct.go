package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gocpsolver/examples/common"
	"github.com/gitrdm/gocpsolver/pkg/cp"
)

var distinctCmd = &cobra.Command{
	Use:   "distinct-triple",
	Short: "Enumerate every (x, y, z) over {0,1,2} with x != y",
	RunE:  runDistinct,
}

func runDistinct(cmd *cobra.Command, args []string) error {
	s := cp.NewSolver("distinct-triple", solverParams())

	x := s.MakeIntVar(0, 2, "x")
	y := s.MakeIntVar(0, 2, "y")
	z := s.MakeIntVar(0, 2, "z")

	common.AllDifferent(s, []*cp.IntVar{x, y})

	db := cp.Phase(s, []*cp.IntVar{x, y, z}, cp.ChooseFirstUnbound, cp.AssignMinValue)
	collector := cp.NewAllSolutionCollector(s, []*cp.IntVar{x, y, z})

	s.Solve(db, collector)

	fmt.Printf("%d solutions found\n", collector.SolutionCount())
	return nil
}
