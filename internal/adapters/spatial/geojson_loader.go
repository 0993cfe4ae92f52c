package spatial

import (
	"commute-planner-service/internal/domain"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadRoutesFile reads transit routes from a GeoJSON FeatureCollection file.
func LoadRoutesFile(path string) ([]domain.RouteFeature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load routes: open %q: %w", path, err)
	}
	defer f.Close()

	routes, err := LoadRoutes(f)
	if err != nil {
		return nil, fmt.Errorf("load routes: %q: %w", path, err)
	}
	return routes, nil
}

// LoadRoutes decodes a FeatureCollection of LineString (or MultiLineString)
// features. Recognized properties: id, name, ref, mode (or OSM "route"),
// sub_type (or "bus_type"). Features without usable geometry are skipped.
func LoadRoutes(r io.Reader) ([]domain.RouteFeature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	routes := make([]domain.RouteFeature, 0, len(fc.Features))
	seen := make(map[string]struct{}, len(fc.Features))

	for i, f := range fc.Features {
		line := lineOf(f.Geometry)
		if len(line) < 2 {
			continue
		}

		id := f.Properties.MustString("id", "")
		if id == "" {
			id = featureID(f.ID)
		}
		if id == "" {
			id = fmt.Sprintf("route-%d", i+1)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("decode geojson: duplicate route id %q", id)
		}
		seen[id] = struct{}{}

		routes = append(routes, domain.RouteFeature{
			ID:       id,
			Name:     f.Properties.MustString("name", id),
			Ref:      f.Properties.MustString("ref", ""),
			Mode:     modeOf(f.Properties),
			SubType:  strings.ToLower(firstString(f.Properties, "sub_type", "bus_type")),
			Geometry: line,
		})
	}

	if len(routes) == 0 && len(fc.Features) > 0 {
		return nil, errors.New("decode geojson: no feature has line geometry")
	}

	return routes, nil
}

func lineOf(g orb.Geometry) orb.LineString {
	switch v := g.(type) {
	case orb.LineString:
		return v
	case orb.MultiLineString:
		var out orb.LineString
		for _, part := range v {
			out = append(out, part...)
		}
		return out
	default:
		return nil
	}
}

func modeOf(p geojson.Properties) string {
	switch strings.ToLower(firstString(p, "mode", "route")) {
	case domain.ModeBus:
		return domain.ModeBus
	default:
		return domain.ModeJeepney
	}
}

func firstString(p geojson.Properties, keys ...string) string {
	for _, k := range keys {
		if s := p.MustString(k, ""); s != "" {
			return s
		}
	}
	return ""
}

func featureID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}
