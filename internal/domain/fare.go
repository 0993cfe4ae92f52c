package domain

import (
	"math"
	"strings"
)

// Bus sub-types with their own tariff.
const (
	BusOrdinary = "ordinary"
	BusAircon   = "aircon"
	BusP2P      = "p2p"
)

// TieredFare charges Base for the first BaseKm and PerKm for every completed
// kilometer after that.
type TieredFare struct {
	Base   float64 `yaml:"base" validate:"gte=0"`
	BaseKm float64 `yaml:"base_km" validate:"gte=0"`
	PerKm  float64 `yaml:"per_km" validate:"gte=0"`
}

// FareTable holds the tariff used to price legs.
type FareTable struct {
	Jeepney          TieredFare `yaml:"jeepney"`
	BusOrdinary      TieredFare `yaml:"bus_ordinary"`
	BusAircon        TieredFare `yaml:"bus_aircon"`
	BusP2PFlat       float64    `yaml:"bus_p2p_flat" validate:"gte=0"`
	DrivingPerKm     float64    `yaml:"driving_per_km" validate:"gte=0"`
	DiscountFraction float64    `yaml:"discount_fraction" validate:"gte=0,lt=1"`
}

// DefaultFareTable returns the standard Metro Manila tariff.
func DefaultFareTable() FareTable {
	return FareTable{
		Jeepney:          TieredFare{Base: 13, BaseKm: 4, PerKm: 1.8},
		BusOrdinary:      TieredFare{Base: 13, BaseKm: 5, PerKm: 2.25},
		BusAircon:        TieredFare{Base: 15, BaseKm: 5, PerKm: 2.65},
		BusP2PFlat:       50,
		DrivingPerKm:     12,
		DiscountFraction: 0.2,
	}
}

// Fare prices a single leg. Passenger fares round up to the next whole unit;
// driving is a cost estimate and rounds to nearest. The discount flag covers
// student, senior and PWD passengers.
func (t FareTable) Fare(mode string, distanceKm float64, subType string, discount bool) int {
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		distanceKm = 0
	}

	switch strings.ToLower(mode) {
	case ModeWalking, ModeBike, "":
		return 0
	case ModeDriving:
		return int(math.Round(distanceKm * t.DrivingPerKm))
	case ModeBus:
		switch strings.ToLower(subType) {
		case BusP2P:
			return t.passenger(t.BusP2PFlat, discount)
		case BusAircon:
			return t.passenger(t.BusAircon.amount(distanceKm), discount)
		default:
			return t.passenger(t.BusOrdinary.amount(distanceKm), discount)
		}
	default:
		return t.passenger(t.Jeepney.amount(distanceKm), discount)
	}
}

func (f TieredFare) amount(distanceKm float64) float64 {
	excess := math.Floor(math.Max(0, distanceKm-f.BaseKm))
	return f.Base + excess*f.PerKm
}

func (t FareTable) passenger(amount float64, discount bool) int {
	if discount {
		amount *= 1 - t.DiscountFraction
	}
	return ceilUnits(amount)
}

// ceilUnits rounds up while ignoring float noise such as 15*0.8 = 12.000000000000002.
func ceilUnits(v float64) int {
	return int(math.Ceil(v - 1e-9))
}
