package config

import (
	ingestsvc "github.com/crivello-lab/crivello/pkg/service/ingest"
	"github.com/urfave/cli/v3"
)

// Ingest holds CLI flags for corpus ingestion
type Ingest struct {
	dataDir      string
	chunkSize    int
	chunkOverlap int
}

// Flags returns CLI flags for ingest configuration
func (i *Ingest) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory holding the demo corpus (.txt files)",
			Value:       "data/corpus",
			Sources:     cli.EnvVars("CRIVELLO_DATA_DIR"),
			Destination: &i.dataDir,
		},
		&cli.IntFlag{
			Name:        "chunk-size",
			Usage:       "Chunk window size in characters",
			Value:       ingestsvc.DefaultChunkSize,
			Sources:     cli.EnvVars("CRIVELLO_CHUNK_SIZE"),
			Destination: &i.chunkSize,
		},
		&cli.IntFlag{
			Name:        "chunk-overlap",
			Usage:       "Characters shared between consecutive chunks",
			Value:       ingestsvc.DefaultChunkOverlap,
			Sources:     cli.EnvVars("CRIVELLO_CHUNK_OVERLAP"),
			Destination: &i.chunkOverlap,
		},
	}
}

// DataDir returns the corpus directory
func (i *Ingest) DataDir() string {
	return i.dataDir
}

// ChunkSize returns the chunk window size
func (i *Ingest) ChunkSize() int {
	return i.chunkSize
}

// ChunkOverlap returns the chunk overlap
func (i *Ingest) ChunkOverlap() int {
	return i.chunkOverlap
}
