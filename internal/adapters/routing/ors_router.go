package routing

import (
	"bytes"
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ORSRouter implements RoadRouter using the OpenRouteService directions API.
type ORSRouter struct {
	session session
	baseURL string
}

type orsDirectionsRequest struct {
	Coordinates       [][]float64           `json:"coordinates"`
	AlternativeRoutes *orsAlternativeRoutes `json:"alternative_routes,omitempty"`
}

type orsAlternativeRoutes struct {
	TargetCount  int     `json:"target_count"`
	ShareFactor  float64 `json:"share_factor"`
	WeightFactor float64 `json:"weight_factor"`
}

func NewORSRouter(baseURL, apiKey string, client *http.Client) (*ORSRouter, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}

	return &ORSRouter{
		session: newSession(client, map[string]string{"Authorization": apiKey}),
		baseURL: baseURL,
	}, nil
}

func (o *ORSRouter) Route(ctx context.Context, req ports.RouteRequest) (_ []ports.RoadRoute, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, orsProfile(req.Profile))

	body := orsDirectionsRequest{
		Coordinates: [][]float64{
			{req.From.Lon, req.From.Lat},
			{req.To.Lon, req.To.Lat},
		},
	}
	if req.Alternatives {
		body.AlternativeRoutes = &orsAlternativeRoutes{TargetCount: 2, ShareFactor: 0.6, WeightFactor: 1.4}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ors route: marshal request: %w", err)
	}

	httpReq, err := o.session.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ors route: %w", err)
	}

	resp, err := o.session.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ors route: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ors route: read response: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("ors route: decode response: %w", err)
	}

	out := make([]ports.RoadRoute, 0, len(fc.Features))
	for _, f := range fc.Features {
		line, ok := f.Geometry.(orb.LineString)
		if !ok || len(line) < 2 {
			continue
		}

		raw, _ := f.Properties["summary"].(map[string]any)
		summary := geojson.Properties(raw)
		out = append(out, ports.RoadRoute{
			Path:            line,
			DistanceMeters:  summary.MustFloat64("distance", 0),
			DurationSeconds: summary.MustFloat64("duration", 0),
		})
	}

	if len(out) == 0 {
		return nil, errors.New("ors route: no routes in response")
	}
	return out, nil
}

func orsProfile(profile string) string {
	switch profile {
	case ports.ProfileDriving:
		return "driving-car"
	case ports.ProfileBike:
		return "cycling-regular"
	default:
		return "foot-walking"
	}
}
