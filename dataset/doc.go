// Package dataset is an in-memory, partitioned key-value collection with the
// handful of bulk operations a halo exchange needs: element-wise fan-out,
// grouping by key under a partitioner, filtering and per-value mapping.
//
// What:
//
//   - Collection holds records split across a fixed number of partitions and,
//     when known, the Partitioner that placed them.
//   - FlatMap, Filter and MapValues run one goroutine per partition.
//   - GroupByKey is the only shuffle. Blocks crossing partitions pass through
//     the collection's Codec, so a distributed engine's serialization cost can
//     be reproduced and measured locally.
//
// Partitioner propagation:
//
//   - Parallelize and FlatMap produce collections without a partitioner.
//   - PartitionBy and GroupByKey record the partitioner they used.
//   - Filter and MapValues keep the input's partitioner and layout.
//
// Ordering:
//
//	Records keep their order inside a partition. GroupByKey emits keys in
//	first-seen order and values in arrival order (source partition index,
//	then record order), so results are deterministic for a given input layout.
//
// Errors:
//
//   - ErrPartitionRange: a partitioner returned an index outside [0, n).
//   - Codec failures during a shuffle are wrapped and returned by GroupByKey.
package dataset
