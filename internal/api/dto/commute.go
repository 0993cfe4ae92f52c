package dto

import (
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/services"
	"math"

	"github.com/paulmach/orb/geojson"
)

// CommuteRequest is accepted both as query parameters (GET) and as a JSON
// body (POST). Pointers distinguish a missing coordinate from zero.
type CommuteRequest struct {
	SourceLat *float64 `form:"source_lat" json:"source_lat" binding:"required,latitude"`
	SourceLon *float64 `form:"source_lon" json:"source_lon" binding:"required,longitude"`
	DestLat   *float64 `form:"dest_lat" json:"dest_lat" binding:"required,latitude"`
	DestLon   *float64 `form:"dest_lon" json:"dest_lon" binding:"required,longitude"`
	Discount  bool     `form:"discount" json:"discount"`
}

func (r CommuteRequest) ToPlanRequest() services.PlanRequest {
	return services.PlanRequest{
		Source:   domain.Point{Lat: *r.SourceLat, Lon: *r.SourceLon},
		Dest:     domain.Point{Lat: *r.DestLat, Lon: *r.DestLon},
		Discount: r.Discount,
	}
}

type LegResponse struct {
	Type     string            `json:"type"`
	Mode     string            `json:"mode"`
	SubType  string            `json:"sub_type,omitempty"`
	Name     string            `json:"name"`
	Ref      string            `json:"ref,omitempty"`
	Distance float64           `json:"distance"`
	Duration *float64          `json:"duration,omitempty"`
	Fare     int               `json:"fare"`
	Path     *geojson.Geometry `json:"path"`
}

type OptionResponse struct {
	Type          string        `json:"type"`
	Legs          []LegResponse `json:"legs"`
	TotalDistance float64       `json:"totalDistance"`
	TotalFare     int           `json:"totalFare"`
	Duration      *float64      `json:"duration,omitempty"`
}

type CommuteResponse struct {
	Success     bool             `json:"success"`
	Source      domain.Point     `json:"source"`
	Destination domain.Point     `json:"destination"`
	Options     []OptionResponse `json:"options"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewCommuteResponse(res *services.PlanResult) CommuteResponse {
	out := CommuteResponse{
		Success:     true,
		Source:      res.Source,
		Destination: res.Dest,
		Options:     make([]OptionResponse, 0, len(res.Options)),
	}

	for _, o := range res.Options {
		legs := make([]LegResponse, 0, len(o.Legs))
		for _, l := range o.Legs {
			legs = append(legs, LegResponse{
				Type:     string(l.Type),
				Mode:     l.Mode,
				SubType:  l.SubType,
				Name:     l.Name,
				Ref:      l.Ref,
				Distance: round(l.Distance, 3),
				Duration: roundPtr(l.Duration, 1),
				Fare:     l.Fare,
				Path:     geojson.NewGeometry(l.Path),
			})
		}

		out.Options = append(out.Options, OptionResponse{
			Type:          string(o.Type),
			Legs:          legs,
			TotalDistance: round(o.TotalDistance, 3),
			TotalFare:     o.TotalFare,
			Duration:      roundPtr(o.Duration, 1),
		})
	}

	return out
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

func roundPtr(v *float64, places int) *float64 {
	if v == nil {
		return nil
	}
	r := round(*v, places)
	return &r
}
