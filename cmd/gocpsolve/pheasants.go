package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gocpsolver/examples/common"
	"github.com/gitrdm/gocpsolver/pkg/cp"
)

var pheasantsCmd = &cobra.Command{
	Use:   "pheasants-rabbits",
	Short: "20 heads, 56 legs: how many pheasants and how many rabbits",
	RunE:  runPheasants,
}

func runPheasants(cmd *cobra.Command, args []string) error {
	params := solverParams()
	params.NameAllVariables = true
	s := cp.NewSolver("pheasants-rabbits", params)

	p := s.MakeIntVar(0, 20, "pheasants")
	r := s.MakeIntVar(0, 20, "rabbits")

	s.PostConstraint(common.NewLinearEquality([]int{1, 1}, []*cp.IntVar{p, r}, 20))
	s.PostConstraint(common.NewLinearEquality([]int{2, 4}, []*cp.IntVar{p, r}, 56))

	db := cp.Phase(s, []*cp.IntVar{p, r}, cp.ChooseFirstUnbound, cp.AssignMinValue)
	collector := cp.NewFirstSolutionCollector(s, []*cp.IntVar{p, r})
	limit := cp.NewRegularLimit(s, 0, 0, 0, 1, false, false)

	s.Solve(db, collector, limit)

	sol := collector.Solution()
	if sol == nil {
		fmt.Println("no solution found")
		return nil
	}
	fmt.Printf("pheasants=%d rabbits=%d\n", sol.Value(p), sol.Value(r))
	return nil
}
