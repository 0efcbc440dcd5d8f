package osm

import (
	"fmt"
	"sort"

	"kuanb/gosm-geofence/geom"

	"github.com/paulmach/orb"
)

// POI is a tagged OpenStreetMap node.
type POI struct {
	ID   int64             `json:"id"`
	Name string            `json:"name,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
}

// Filter selects which elements of an extract end up in a Dataset.
type Filter struct {
	POITag  string // nodes carrying this tag key become POIs, e.g. "amenity"
	AreaTag string // closed, named ways carrying this tag key become areas, e.g. "landuse"
}

// Dataset holds the points of interest and named areas read from an extract.
type Dataset struct {
	POIs  []geom.Record[POI]
	Areas map[string][]geom.Coordinate
}

type wayRef struct {
	ID    int64
	Name  string
	Nodes []int64
}

// builder accumulates decoded elements and assembles a Dataset.
type builder struct {
	filter Filter
	nodes  map[int64]orb.Point
	pois   []geom.Record[POI]
	ways   []wayRef

	skippedWays int
}

func newBuilder(f Filter) *builder {
	return &builder{
		filter: f,
		nodes:  make(map[int64]orb.Point),
	}
}

func (b *builder) addNode(id int64, lat, lon float64, tags map[string]string) {
	b.nodes[id] = orb.Point{lon, lat}
	if b.filter.POITag == "" {
		return
	}
	if _, ok := tags[b.filter.POITag]; !ok {
		return
	}
	c := geom.Coordinate{Lat: lat, Lng: lon}
	if geom.ValidateCoordinate(c, "node") != nil {
		return
	}
	b.pois = append(b.pois, geom.NewRecord(c, POI{ID: id, Name: tags["name"], Tags: tags}))
}

func (b *builder) addWay(id int64, nodeIDs []int64, tags map[string]string) {
	if b.filter.AreaTag == "" {
		return
	}
	if _, ok := tags[b.filter.AreaTag]; !ok {
		return
	}
	name := tags["name"]
	// closed ring of at least three distinct vertices
	if name == "" || len(nodeIDs) < 4 || nodeIDs[0] != nodeIDs[len(nodeIDs)-1] {
		b.skippedWays++
		return
	}
	b.ways = append(b.ways, wayRef{ID: id, Name: name, Nodes: nodeIDs})
}

func (b *builder) dataset() *Dataset {
	sort.Slice(b.pois, func(i, j int) bool { return b.pois[i].Payload.ID < b.pois[j].Payload.ID })
	sort.Slice(b.ways, func(i, j int) bool { return b.ways[i].ID < b.ways[j].ID })

	areas := make(map[string][]geom.Coordinate, len(b.ways))
	for _, w := range b.ways {
		ring, ok := buildRing(w.Nodes, b.nodes)
		if !ok {
			b.skippedWays++
			continue
		}
		vertices := geom.FromRing(ring)
		if geom.ValidatePolygon(vertices, "way") != nil {
			b.skippedWays++
			continue
		}
		name := w.Name
		if _, taken := areas[name]; taken {
			name = fmt.Sprintf("%s (way %d)", w.Name, w.ID)
		}
		areas[name] = vertices
	}

	return &Dataset{POIs: b.pois, Areas: areas}
}

// buildRing creates a ring from a slice of node IDs. It fails when any node is missing.
func buildRing(nodeIDs []int64, nodes map[int64]orb.Point) (orb.Ring, bool) {
	ring := make(orb.Ring, 0, len(nodeIDs))
	for _, nid := range nodeIDs {
		p, ok := nodes[nid]
		if !ok {
			return nil, false
		}
		ring = append(ring, p)
	}
	return ring, ring.Closed()
}
