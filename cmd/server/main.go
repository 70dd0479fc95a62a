package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/azybler/reachmap/pkg/api"
	"github.com/azybler/reachmap/pkg/assemble"
	"github.com/azybler/reachmap/pkg/config"
	"github.com/azybler/reachmap/pkg/logging"
	"github.com/azybler/reachmap/pkg/poi"
)

func main() {
	_ = godotenv.Load() // .env is optional

	fs := pflag.NewFlagSet("server", pflag.ExitOnError)
	config.Flags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	start := time.Now()

	catalog, source, err := loadPOIs(cfg.POI)
	if err != nil {
		slog.Error("failed to load POIs", "error", err)
		os.Exit(1)
	}
	slog.Info("ready", "places", catalog.Len(), "source", source, "elapsed", time.Since(start).Round(time.Millisecond).String())

	srvCfg := api.DefaultConfig(cfg.Server.Addr())
	srvCfg.ReadTimeout = cfg.Server.ReadTimeout
	srvCfg.WriteTimeout = cfg.Server.WriteTimeout
	srvCfg.RequestTimeout = cfg.Server.RequestTimeout
	srvCfg.MaxBodyBytes = cfg.Server.MaxBodyBytes
	srvCfg.CORSOrigin = cfg.Server.CORSOrigin
	if cfg.Server.MaxConcurrent > 0 {
		srvCfg.MaxConcurrent = cfg.Server.MaxConcurrent
	}

	assembler := assemble.Assembler{Tolerance: cfg.Assemble.Tolerance}
	defaults := poi.QueryOptions{
		Type:      cfg.POI.Type,
		MinRating: poi.Rating(cfg.POI.MinRating),
		Limit:     cfg.POI.Limit,
	}
	handlers := api.NewHandlers(assembler, catalog, defaults, api.StatsResponse{POISource: source})
	srv := api.NewServer(srvCfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// loadPOIs reads the configured POI source. With none configured an empty
// catalog is served and filter requests must carry their own points.
func loadPOIs(cfg config.POIConfig) (*poi.Catalog, string, error) {
	switch {
	case cfg.CSV != "":
		f, err := os.Open(cfg.CSV)
		if err != nil {
			return nil, "", fmt.Errorf("open POI CSV: %w", err)
		}
		defer f.Close()

		catalog, err := poi.ReadCSV(f)
		if err != nil {
			return nil, "", fmt.Errorf("load POI CSV %s: %w", cfg.CSV, err)
		}
		return catalog, cfg.CSV, nil

	case cfg.PBF != "":
		f, err := os.Open(cfg.PBF)
		if err != nil {
			return nil, "", fmt.Errorf("open PBF: %w", err)
		}
		defer f.Close()

		fc, err := poi.ExtractOSM(context.Background(), f, poi.OSMOptions{Procs: 4})
		if err != nil {
			return nil, "", fmt.Errorf("extract POIs from %s: %w", cfg.PBF, err)
		}
		return poi.NewCatalog(fc), cfg.PBF, nil
	}

	slog.Warn("no POI source configured; serving an empty collection")
	return &poi.Catalog{}, "", nil
}
