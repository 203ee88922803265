// Command halo runs the neighbor collection step over a tile set and
// reports the resulting neighborhoods.
//
//	halo -config job.yaml [-export tiles.mbtiles]
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/halo/config"
	"github.com/katalvlaran/halo/dataset"
	"github.com/katalvlaran/halo/grid"
	"github.com/katalvlaran/halo/neighbors"
	"github.com/katalvlaran/halo/report"
	"github.com/katalvlaran/halo/tilestore"
)

type tileRecord = dataset.Pair[tilestore.Key, []byte]

func main() {
	var (
		cfgPath    = flag.String("config", "", "path to job yaml (defaults are used when empty)")
		exportPath = flag.String("export", "", "also write the loaded tiles into this MBTiles file")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[halo] ", log.LstdFlags|log.Lmicroseconds)

	job := config.Default()
	if *cfgPath != "" {
		var err error
		if job, err = config.Load(*cfgPath); err != nil {
			logger.Fatalf("config: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := execute(ctx, logger, job, *exportPath); err != nil {
		logger.Printf("error: %v", err)
		stop()
		os.Exit(1)
	}
}

// summary is what one run found.
type summary struct {
	Tiles     int
	Histogram [10]int // tiles by neighborhood size, index = entries incl. Center
	Shuffle   struct {
		Records, Blocks, Bytes int64
	}
}

// execute loads the tiles of job, collects their neighborhoods and writes the report.
func execute(ctx context.Context, logger *log.Logger, job config.Job, exportPath string) (summary, error) {
	var sum summary
	started := time.Now()

	recs, err := loadTiles(ctx, job.Source)
	if err != nil {
		return sum, err
	}
	logger.Printf("loaded %d tiles from %s source", len(recs), job.Source.Kind)

	if exportPath != "" {
		if err := exportTiles(ctx, exportPath, recs); err != nil {
			return sum, err
		}
		logger.Printf("exported %d tiles to %s", len(recs), exportPath)
	}

	opts := []dataset.Option{dataset.WithStats(&dataset.ShuffleStats{})}
	if job.ShuffleCodec == config.CodecGobZstd {
		codec, err := dataset.NewGobZstd(zstd.SpeedFastest)
		if err != nil {
			return sum, err
		}
		defer codec.Close()
		opts = append(opts, dataset.WithCodec(codec))
	}

	in, err := dataset.PartitionBy(recs, partitioner(job), opts...)
	if err != nil {
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	out, err := neighbors.CollectNeighbors(in)
	if err != nil {
		return sum, err
	}

	var w *report.Writer
	if job.Report.Path != "" {
		if w, err = report.Create(job.Report.Path); err != nil {
			return sum, fmt.Errorf("report: %w", err)
		}
	}
	for _, kv := range out.Collect() {
		sum.Tiles++
		sum.Histogram[len(kv.Value)]++
		if w == nil {
			continue
		}
		k := kv.Key
		if err := w.Write(report.Entry{Key: k.String(), Col: k.Col, Row: k.Row, Neighbors: kv.Value.Directions()}); err != nil {
			_ = w.Close()
			return sum, fmt.Errorf("report: %w", err)
		}
	}
	if w != nil {
		if err := w.Close(); err != nil {
			return sum, fmt.Errorf("report: %w", err)
		}
		logger.Printf("wrote %d report entries to %s", sum.Tiles, job.Report.Path)
	}

	st := out.Stats()
	sum.Shuffle.Records, sum.Shuffle.Blocks, sum.Shuffle.Bytes = st.Records(), st.Blocks(), st.Bytes()
	logger.Printf("collected %d neighborhoods over %d partitions (%s partitioner) in %s",
		sum.Tiles, out.NumPartitions(), job.Partitioner, time.Since(started).Round(time.Millisecond))
	logger.Printf("neighborhood sizes: %v", sum.Histogram[1:])
	logger.Printf("shuffle: records=%d blocks=%d bytes=%d codec=%s",
		sum.Shuffle.Records, sum.Shuffle.Blocks, sum.Shuffle.Bytes, job.ShuffleCodec)

	return sum, nil
}

func partitioner(job config.Job) dataset.Partitioner[tilestore.Key] {
	if job.Partitioner == config.PartitionHash {
		return dataset.NewHashPartitioner[tilestore.Key](job.Partitions)
	}

	return grid.NewBlockPartitioner[tilestore.Key](job.Partitions, job.BlockSize)
}

func loadTiles(ctx context.Context, src config.Source) ([]tileRecord, error) {
	switch src.Kind {
	case config.SourceSQLite:
		st, err := tilestore.Open(ctx, src.Path)
		if err != nil {
			return nil, err
		}
		defer st.Close()

		return st.Load(ctx, src.Zoom)
	case config.SourceDense:
		return denseTiles(src)
	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}

// denseTiles fills width×height tiles; each payload is the tile's row-major index.
func denseTiles(src config.Source) ([]tileRecord, error) {
	values := make([][][]byte, src.Height)
	for r := range values {
		values[r] = make([][]byte, src.Width)
		for c := range values[r] {
			values[r][c] = binary.BigEndian.AppendUint64(nil, uint64(r*src.Width+c))
		}
	}
	d, err := grid.NewDense(grid.Coord{}, values)
	if err != nil {
		return nil, fmt.Errorf("dense source: %w", err)
	}

	out := make([]tileRecord, 0, src.Width*src.Height)
	d.Each(func(c grid.Coord, v []byte) {
		out = append(out, dataset.KV(tilestore.Key{Zoom: src.Zoom, Coord: c}, v))
	})

	return out, nil
}

func exportTiles(ctx context.Context, path string, recs []tileRecord) error {
	st, err := tilestore.Open(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Put(ctx, recs); err != nil {
		return err
	}

	return st.SetMetadata(ctx, "format", "application/octet-stream")
}
