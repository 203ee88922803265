// Package config loads the YAML job description of a halo run and validates
// it against an embedded JSON Schema before applying defaults.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates the job file does not match the schema.
var ErrInvalid = errors.New("config: invalid job")

//go:embed job.schema.json
var schemaJSON string

var jobSchema = jsonschema.MustCompileString("job.schema.json", schemaJSON)

// Source kinds.
const (
	SourceDense  = "dense"
	SourceSQLite = "sqlite"
)

// Partitioner kinds.
const (
	PartitionHash  = "hash"
	PartitionBlock = "block"
)

// Shuffle codecs.
const (
	CodecNone    = "none"
	CodecGobZstd = "gob-zstd"
)

// Job is a complete run description.
type Job struct {
	Partitions   int    `yaml:"partitions"`
	Partitioner  string `yaml:"partitioner"`
	BlockSize    int    `yaml:"block_size"`
	ShuffleCodec string `yaml:"shuffle_codec"`

	Source Source `yaml:"source"`
	Report Report `yaml:"report"`
}

// Source selects where tiles come from.
type Source struct {
	Kind string `yaml:"kind"`

	// sqlite
	Path string `yaml:"path"`
	Zoom int    `yaml:"zoom"`

	// dense
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Report configures the optional per-tile output file.
type Report struct {
	Path string `yaml:"path"`
}

// Default returns the job used for fields the file leaves out.
func Default() Job {
	return Job{
		Partitions:   4,
		Partitioner:  PartitionBlock,
		BlockSize:    8,
		ShuffleCodec: CodecNone,
		Source:       Source{Kind: SourceDense, Zoom: 4, Width: 16, Height: 16},
	}
}

// Load reads and parses the job file at path.
func Load(path string) (Job, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Job{}, err
	}
	j, err := Parse(raw)
	if err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}

	return j, nil
}

// Parse validates raw YAML against the job schema and decodes it over Default.
func Parse(raw []byte) (Job, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Job{}, fmt.Errorf("config: yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	inst, err := toJSONValue(doc)
	if err != nil {
		return Job{}, err
	}
	if err := jobSchema.Validate(inst); err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	j := Default()
	if err := yaml.Unmarshal(raw, &j); err != nil {
		return Job{}, fmt.Errorf("config: yaml: %w", err)
	}
	if j.Source.Kind == SourceSQLite && j.Source.Path == "" {
		return Job{}, fmt.Errorf("%w: source.path is required for sqlite", ErrInvalid)
	}
	if j.Source.Kind == SourceDense {
		if side := 1 << j.Source.Zoom; j.Source.Width > side || j.Source.Height > side {
			return Job{}, fmt.Errorf("%w: dense %dx%d grid exceeds the %dx%d matrix of zoom %d",
				ErrInvalid, j.Source.Width, j.Source.Height, side, side, j.Source.Zoom)
		}
	}

	return j, nil
}

// toJSONValue re-decodes a YAML document the way the schema validator
// expects JSON: objects as map[string]any and numbers as json.Number.
func toJSONValue(doc any) (any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return v, nil
}
