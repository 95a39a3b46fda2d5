package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gocpsolver/examples/common"
	"github.com/gitrdm/gocpsolver/pkg/cp"
)

var deviationCmd = &cobra.Command{
	Use:   "deviation",
	Short: "Minimize how spread out four variables summing to 40 are",
	RunE:  runDeviation,
}

func runDeviation(cmd *cobra.Command, args []string) error {
	s := cp.NewSolver("deviation", solverParams())

	vars := []*cp.IntVar{
		s.MakeIntVar(0, 40, "a"),
		s.MakeIntVar(0, 40, "b"),
		s.MakeIntVar(0, 40, "c"),
		s.MakeIntVar(0, 40, "d"),
	}
	deviationVar := s.MakeIntVar(0, 4*40, "deviation")

	s.PostConstraint(common.NewDeviation(vars, deviationVar, 40))

	db := cp.Phase(s, vars, cp.ChooseFirstUnbound, cp.AssignMinValue)
	optimize := cp.NewOptimizeVar(s, false, deviationVar, 1)
	best := cp.NewBestValueCollector(s, deviationVar, false)
	for _, v := range vars {
		best.AddVar(v)
	}

	s.Solve(db, optimize, best)

	sol := best.Solution()
	if sol == nil {
		fmt.Println("no solution found")
		return nil
	}
	fmt.Printf("minimal deviation=%d\n", sol.Value(deviationVar))
	for _, v := range vars {
		fmt.Printf("  %s=%d\n", v.Name(), sol.Value(v))
	}
	return nil
}
