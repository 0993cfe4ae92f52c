package services

import (
	"commute-planner-service/internal/domain"
	"time"
)

// Speeds are average travel speeds in km/h used when no router duration exists.
type Speeds struct {
	Walking float64 `yaml:"walking" validate:"gt=0"`
	Bike    float64 `yaml:"bike" validate:"gt=0"`
	Driving float64 `yaml:"driving" validate:"gt=0"`
	Jeepney float64 `yaml:"jeepney" validate:"gt=0"`
	Bus     float64 `yaml:"bus" validate:"gt=0"`
}

// Config carries every planner threshold, limit and tariff. Distances are
// meters. The weights and thresholds are tuned heuristics kept configurable.
type Config struct {
	CandidateLimit int     `yaml:"candidate_limit" validate:"gt=0"`
	SourceWeight   float64 `yaml:"source_weight" validate:"gte=0"`
	DestWeight     float64 `yaml:"dest_weight" validate:"gte=0"`
	DirectRadius   float64 `yaml:"direct_radius_m" validate:"gt=0"`

	SideLimit           int     `yaml:"side_limit" validate:"gt=0"`
	MaxTransferDistance float64 `yaml:"max_transfer_m" validate:"gt=0"`
	TransferLimit       int     `yaml:"transfer_limit" validate:"gte=0"`

	LargeJump         float64 `yaml:"large_jump_m" validate:"gt=0"`
	InterpolationStep float64 `yaml:"interpolation_step_m" validate:"gt=0,ltefield=LargeJump"`
	BoundarySplice    float64 `yaml:"boundary_splice_m" validate:"gte=0"`
	JitterPerKm       float64 `yaml:"jitter_per_km_m" validate:"gte=0"`
	SmoothIterations  int     `yaml:"smooth_iterations" validate:"gte=0,lte=4"`

	RouterTimeout  time.Duration `yaml:"router_timeout" validate:"gt=0"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	Workers        int           `yaml:"workers" validate:"gt=0"`

	DirectOptions   int `yaml:"direct_options" validate:"gte=0"`
	TransferOptions int `yaml:"transfer_options" validate:"gte=0"`
	MinOptions      int `yaml:"min_options" validate:"gte=1,lte=3"`

	Speeds Speeds           `yaml:"speeds"`
	Fares  domain.FareTable `yaml:"fares"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		CandidateLimit: 20,
		SourceWeight:   2,
		DestWeight:     1,
		DirectRadius:   1000,

		SideLimit:           5,
		MaxTransferDistance: 200,
		TransferLimit:       5,

		LargeJump:         1000,
		InterpolationStep: 400,
		BoundarySplice:    200,
		JitterPerKm:       0.5,
		SmoothIterations:  2,

		RouterTimeout:  10 * time.Second,
		RequestTimeout: 25 * time.Second,
		Workers:        8,

		DirectOptions:   2,
		TransferOptions: 3,
		MinOptions:      3,

		Speeds: Speeds{
			Walking: 5,
			Bike:    12,
			Driving: 20,
			Jeepney: 15,
			Bus:     18,
		},
		Fares: domain.DefaultFareTable(),
	}
}

// speedFor returns the configured km/h for a leg mode.
func (c Config) speedFor(mode string) float64 {
	switch mode {
	case domain.ModeDriving:
		return c.Speeds.Driving
	case domain.ModeBike:
		return c.Speeds.Bike
	case domain.ModeBus:
		return c.Speeds.Bus
	case domain.ModeJeepney:
		return c.Speeds.Jeepney
	default:
		return c.Speeds.Walking
	}
}
