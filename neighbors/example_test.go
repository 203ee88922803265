package neighbors_test

import (
	"fmt"

	"github.com/katalvlaran/halo/dataset"
	"github.com/katalvlaran/halo/grid"
	"github.com/katalvlaran/halo/neighbors"
)

////////////////////////////////////////////////////////////////////////////////
// Example: CollectNeighbors
////////////////////////////////////////////////////////////////////////////////

// ExampleCollectNeighbors gathers the neighborhoods of an L-shaped set of tiles
// placed by a block partitioner, then sums each 3×3 window.
// Scenario:
//
//	col:  0  1  2
//	row 0 1  2  .
//	row 1 3  .  .
//	row 2 .  .  9
//
//   - (2,2) has no neighbor and stays alone.
//   - The output keeps the input's partitioner.
func ExampleCollectNeighbors() {
	d, _ := grid.NewDense(grid.Coord{}, [][]int{{1, 2, 0}, {3, 0, 0}, {0, 0, 9}})
	var recs []dataset.Pair[grid.Coord, int]
	d.Each(func(c grid.Coord, v int) {
		if v != 0 {
			recs = append(recs, dataset.KV(c, v))
		}
	})
	p := grid.NewBlockPartitioner[grid.Coord](2, 2)
	in, _ := dataset.PartitionBy(recs, p)

	out, _ := neighbors.CollectNeighbors(in)
	got := out.CollectMap()
	for _, kv := range recs {
		sum := 0
		for _, tile := range got[kv.Key] {
			sum += tile.Value
		}
		fmt.Printf("%v: %v sum=%d\n", kv.Key, got[kv.Key].Directions(), sum)
	}
	fmt.Println("same partitioner:", out.Partitioner() == in.Partitioner())

	// Output:
	// 0,0: [center right bottom] sum=6
	// 1,0: [center left bottom_left] sum=6
	// 0,1: [center top top_right] sum=6
	// 2,2: [center] sum=9
	// same partitioner: true
}
