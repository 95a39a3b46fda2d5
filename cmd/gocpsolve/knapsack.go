package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gocpsolver/examples/common"
	"github.com/gitrdm/gocpsolver/pkg/cp"
)

var knapsackCmd = &cobra.Command{
	Use:   "knapsack",
	Short: "Solve a small 0-1 knapsack with a tabu-search monitor layered on branch and bound",
	RunE:  runKnapsack,
}

func runKnapsack(cmd *cobra.Command, args []string) error {
	weights := []int{2, 3, 4, 5, 9}
	values := []int{3, 4, 5, 8, 10}
	capacity := 10

	s := cp.NewSolver("knapsack", solverParams())

	items := make([]*cp.IntVar, len(weights))
	for i := range items {
		items[i] = s.MakeBoolVar(fmt.Sprintf("item%d", i))
	}

	s.PostConstraint(common.NewLinearLessEqual(weights, items, capacity))

	terms := make([]*cp.IntVar, len(items))
	for i, it := range items {
		terms[i] = s.NewScaled(it, values[i]).Var()
	}
	objective := terms[0]
	for _, t := range terms[1:] {
		objective = s.NewSum(objective, t).Var()
	}

	db := cp.Phase(s, items, cp.ChooseFirstUnbound, cp.AssignMaxValue)
	optimize := cp.NewOptimizeVar(s, true, objective, 1)
	tabu := cp.NewTabuSearch(s, items, objective, true, 4, 4, 1)
	best := cp.NewBestValueCollector(s, objective, true)
	for _, it := range items {
		best.AddVar(it)
	}

	s.Solve(db, optimize, tabu, best)

	sol := best.Solution()
	if sol == nil {
		fmt.Println("no feasible packing found")
		return nil
	}
	fmt.Printf("best value=%d\n", sol.Value(objective))
	for i, it := range items {
		if sol.Value(it) == 1 {
			fmt.Printf("  take item %d (weight=%d value=%d)\n", i, weights[i], values[i])
		}
	}
	return nil
}
