package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gocpsolver/examples/common"
	"github.com/gitrdm/gocpsolver/pkg/cp"
)

var queensSize int

var nqueensCmd = &cobra.Command{
	Use:   "nqueens",
	Short: "Count every solution to the n-queens problem",
	RunE:  runNQueens,
}

func init() {
	nqueensCmd.Flags().IntVar(&queensSize, "size", 8, "board size (and number of queens)")
}

func runNQueens(cmd *cobra.Command, args []string) error {
	s := cp.NewSolver("nqueens", solverParams())

	n := queensSize
	cols := make([]*cp.IntVar, n)
	diagUp := make([]*cp.IntVar, n)
	diagDown := make([]*cp.IntVar, n)
	for i := 0; i < n; i++ {
		cols[i] = s.MakeIntVar(0, n-1, fmt.Sprintf("col%d", i))
		diagUp[i] = s.NewSum(cols[i], s.MakeIntConst(i, "")).Var()
		diagDown[i] = s.NewDiff(cols[i], s.MakeIntConst(i, "")).Var()
	}

	common.AllDifferent(s, cols)
	common.AllDifferent(s, diagUp)
	common.AllDifferent(s, diagDown)

	db := cp.Phase(s, cols, cp.ChooseFirstUnbound, cp.AssignMinValue)
	collector := cp.NewAllSolutionCollector(s, cols)

	s.Solve(db, collector)

	fmt.Printf("%d solutions found\n", collector.SolutionCount())
	return nil
}
