package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"kuanb/gosm-geofence/config"
	"kuanb/gosm-geofence/geom"
	"kuanb/gosm-geofence/logger"
	"kuanb/gosm-geofence/osm"
	"kuanb/gosm-geofence/server"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile      string        `short:"c" long:"config"           env:"CONFIG_FILE"      description:"Path to configuration file"              default:"config.yaml"`
	Addr            string        `short:"a" long:"addr"             env:"LISTEN_ADDRESS"   description:"Address to listen on"                    default:"0.0.0.0"`
	Port            int           `short:"p" long:"port"             env:"LISTEN_PORT"      description:"Port to listen on"                       default:"8080"`
	OSMFile         string        `short:"o" long:"osm-file"         env:"OSM_FILE"         description:"OSM PBF extract, overrides the config"`
	StatsInterval   time.Duration `long:"stats-interval"           env:"STATS_INTERVAL"    description:"Interval for logging runtime stats, 0 disables" default:"30s"`
}

// runtimeStats holds memory and goroutine statistics
type runtimeStats struct {
	Goroutines  int
	AllocMB     float64 // currently allocated heap
	SysMB       float64 // total memory from OS
	HeapObjects uint64
	NumGC       uint32
}

func readRuntimeStats() runtimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return runtimeStats{
		Goroutines:  runtime.NumGoroutine(),
		AllocMB:     float64(m.Alloc) / 1024 / 1024,
		SysMB:       float64(m.Sys) / 1024 / 1024,
		HeapObjects: m.HeapObjects,
		NumGC:       m.NumGC,
	}
}

// logRuntimeStats logs runtime stats every interval until ctx is done.
func logRuntimeStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := readRuntimeStats()
			log.Debug().
				Int("goroutines", s.Goroutines).
				Float64("alloc_mb", s.AllocMB).
				Float64("sys_mb", s.SysMB).
				Uint64("heap_objects", s.HeapObjects).
				Uint32("gc_cycles", s.NumGC).
				Msg("Runtime stats")
		}
	}
}

func main() {
	// a missing .env file is fine, the environment is used as is
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	geofences, err := cfg.LoadGeofences(filepath.Dir(opts.ConfigFile))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load geofences")
	}

	var pois []geom.Record[osm.POI]
	if src := osmSource(cfg, opts.OSMFile, filepath.Dir(opts.ConfigFile)); src != nil {
		ds, err := osm.Load(src.File, osm.Filter{POITag: src.POITag, AreaTag: src.AreaTag})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load OSM extract")
		}
		pois = ds.POIs
		mergeAreas(geofences, ds.Areas)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	srv := server.New(server.Options{
		Geofences:    geofences,
		POIs:         pois,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Registry:     reg,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.StatsInterval > 0 {
		go logRuntimeStats(ctx, opts.StatsInterval)
	}

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}()

	log.Info().
		Str("addr", listenAddr).
		Int("geofences", len(geofences)).
		Int("pois", len(pois)).
		Msg("Web server started")

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Web server stopped")
}

// osmSource resolves the extract to load, if any. The flag wins over the config file.
func osmSource(cfg *config.Config, override, baseDir string) *config.OSM {
	var src config.OSM
	switch {
	case override != "":
		src = config.OSM{File: override, POITag: "amenity"}
		if cfg.OSM != nil {
			src.POITag, src.AreaTag = cfg.OSM.POITag, cfg.OSM.AreaTag
		}
	case cfg.OSM != nil:
		src = *cfg.OSM
		if !filepath.IsAbs(src.File) {
			src.File = filepath.Join(baseDir, src.File)
		}
	default:
		return nil
	}
	return &src
}

// mergeAreas adds OSM areas to the geofences. Configured geofences keep their name.
func mergeAreas(geofences, areas map[string][]geom.Coordinate) {
	for name, vertices := range areas {
		if _, ok := geofences[name]; ok {
			log.Warn().Str("geofence", name).Msg("OSM area shadowed by configured geofence")
			continue
		}
		geofences[name] = vertices
	}
}
