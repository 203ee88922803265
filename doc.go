// Package halo collects the neighborhoods of tiles on a sparse, partitioned
// grid: the halo exchange that lets windowed operations (convolution, slope,
// resampling) run on each tile without talking to other partitions.
//
// Packages:
//
//	grid/      - coordinates, the nine directions, SpatialKey, block partitioner
//	dataset/   - in-memory partitioned collection: FlatMap, GroupByKey, Filter, MapValues
//	neighbors/ - CollectNeighbors: fan-out, group by destination, drop empty cells
//	tilestore/ - MBTiles-style SQLite tile source and sink
//	config/    - YAML job files validated by JSON Schema
//	report/    - zstd-compressed JSONL neighborhood reports
//	cmd/halo   - command line runner
//
// Quick example:
//
//	in, _ := dataset.PartitionBy(tiles, grid.NewBlockPartitioner[grid.Coord](8, 16))
//	out, _ := neighbors.CollectNeighbors(in)
//	for _, kv := range out.Collect() {
//		right, ok := kv.Value.Get(grid.Right)
//		...
//	}
package halo
