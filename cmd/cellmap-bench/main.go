// Command cellmap-bench generates a random particle cloud, builds a
// celllist.CellList against an orthorhombic box, and reports how many
// pairs fall within cutoff and how long the traversal took. Tuning
// defaults (lcell, workers) can be overridden by an optional YAML config
// file; its dense_threshold key is parsed but not used by this command.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/katalvlaran/cellmap/box"
	"github.com/katalvlaran/cellmap/celllist"
	"github.com/katalvlaran/cellmap/neighborlist"
	"github.com/katalvlaran/cellmap/sysclass"
	"gopkg.in/yaml.v3"
)

// config mirrors an optional cellmap.yaml tuning file.
type config struct {
	LCell          int     `yaml:"lcell"`
	Workers        int     `yaml:"workers"`
	DenseThreshold float64 `yaml:"dense_threshold"`
}

func defaultConfig() config {
	return config{LCell: 1, Workers: sysclass.DefaultWorkers(), DenseThreshold: 24}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

func main() {
	var (
		n          = flag.Int("n", 2000, "number of particles")
		side       = flag.Float64("side", 100, "cubic box side length")
		cutoff     = flag.Float64("cutoff", 3, "interaction cutoff")
		seed       = flag.Int64("seed", 1, "random seed")
		configPath = flag.String("config", "cellmap.yaml", "optional YAML tuning file (lcell, workers, dense_threshold)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("cellmap-bench: %v", err)
	}

	b, err := box.NewOrtho([]float64{*side, *side, *side}, *cutoff, box.WithLCell(cfg.LCell))
	if err != nil {
		log.Fatalf("cellmap-bench: box.NewOrtho: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	positions := make([][]float64, *n)
	for i := range positions {
		positions[i] = []float64{rng.Float64() * *side, rng.Float64() * *side, rng.Float64() * *side}
	}

	buildStart := time.Now()
	cl, err := celllist.New(positions, b)
	if err != nil {
		log.Fatalf("cellmap-bench: celllist.New: %v", err)
	}
	buildElapsed := time.Since(buildStart)

	log.Printf("built cell list: %d particles, %d occupied cells, %d entries (incl. images), in %s",
		*n, cl.NumOccupiedCells(), cl.NumParticleEntries(), buildElapsed)

	walkStart := time.Now()
	found, err := neighborlist.Build(positions, b, *cutoff, neighborlist.WithParallel(cfg.Workers))
	if err != nil {
		log.Fatalf("cellmap-bench: neighborlist.Build: %v", err)
	}
	walkElapsed := time.Since(walkStart)

	fmt.Printf("pairs within cutoff %.3g: %d (traversal: %s, workers: %d)\n",
		*cutoff, len(found), walkElapsed, cfg.Workers)
}
