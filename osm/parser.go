package osm

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/qedus/osmpbf"
	"github.com/rs/zerolog/log"
)

// Load reads an OSM PBF extract and keeps the POIs and areas selected by f.
func Load(filePath string, f Filter) (*Dataset, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("osm: open %q: %w", filePath, err)
	}
	defer file.Close()

	d := osmpbf.NewDecoder(file)

	// use more memory from the start, it is faster
	d.SetBufferSize(osmpbf.MaxBlobSize)

	// start decoding with several goroutines, it is faster
	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return nil, fmt.Errorf("osm: start decoder: %w", err)
	}

	b := newBuilder(f)
	var nc, wc, rc uint64
	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("osm: decode %q: %w", filePath, err)
		}

		switch v := v.(type) {
		case *osmpbf.Node:
			b.addNode(v.ID, v.Lat, v.Lon, v.Tags)
			nc++
		case *osmpbf.Way:
			b.addWay(v.ID, v.NodeIDs, v.Tags)
			wc++
		case *osmpbf.Relation:
			// we ignore relations for now
			rc++
		default:
			return nil, fmt.Errorf("osm: unknown type %T", v)
		}
	}

	ds := b.dataset()
	log.Info().
		Str("file", filePath).
		Uint64("nodes", nc).
		Uint64("ways", wc).
		Uint64("relations", rc).
		Int("pois", len(ds.POIs)).
		Int("areas", len(ds.Areas)).
		Int("skipped_ways", b.skippedWays).
		Msg("Loaded OSM extract")

	return ds, nil
}
