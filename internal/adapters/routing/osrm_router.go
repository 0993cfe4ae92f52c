package routing

import (
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// OSRMRouter implements RoadRouter against an OSRM /route/v1 endpoint.
type OSRMRouter struct {
	session session
	baseURL string
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64          `json:"distance"`
		Duration float64          `json:"duration"`
		Geometry geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

func NewOSRMRouter(baseURL string, client *http.Client) (*OSRMRouter, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base url is empty")
	}
	return &OSRMRouter{session: newSession(client, nil), baseURL: baseURL}, nil
}

func (o *OSRMRouter) Route(ctx context.Context, req ports.RouteRequest) (_ []ports.RoadRoute, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson&alternatives=%t",
		o.baseURL, osrmProfile(req.Profile),
		req.From.Lon, req.From.Lat, req.To.Lon, req.To.Lat,
		req.Alternatives,
	)

	httpReq, err := o.session.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm route: %w", err)
	}

	resp, err := o.session.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("osrm route: %w", err)
	}
	defer resp.Body.Close()

	var or osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, fmt.Errorf("osrm route: decode response: %w", err)
	}
	if or.Code != "" && or.Code != "Ok" {
		return nil, fmt.Errorf("osrm route: %s: %s", or.Code, or.Message)
	}

	out := make([]ports.RoadRoute, 0, len(or.Routes))
	for _, r := range or.Routes {
		line, ok := r.Geometry.Geometry().(orb.LineString)
		if !ok || len(line) < 2 {
			continue
		}
		out = append(out, ports.RoadRoute{
			Path:            line,
			DistanceMeters:  r.Distance,
			DurationSeconds: r.Duration,
		})
	}

	if len(out) == 0 {
		return nil, errors.New("osrm route: no routes in response")
	}
	return out, nil
}

func osrmProfile(profile string) string {
	switch profile {
	case ports.ProfileDriving:
		return "driving"
	case ports.ProfileBike:
		return "bike"
	default:
		return "foot"
	}
}
