package domain

// LegType is the homogeneous travel kind of a leg.
type LegType string

const (
	LegWalking LegType = "walking"
	LegTransit LegType = "transit"
	LegDriving LegType = "driving"
)

// Travel modes for non-transit legs.
const (
	ModeWalking = "walking"
	ModeDriving = "driving"
	ModeBike    = "bike"
)

// Represents one homogeneous-mode segment of a journey.
// Distance is in kilometers, Duration in minutes (nil when unknown) and
// Fare in whole currency units.
type Leg struct {
	Type     LegType
	Mode     string
	SubType  string
	Name     string
	Ref      string
	Distance float64
	Duration *float64
	Fare     int
	Path     Polyline
}

// OptionType names how an option was put together.
type OptionType string

const (
	OptionWalking   OptionType = "walking"
	OptionDriving   OptionType = "driving"
	OptionDirect    OptionType = "direct"
	OptionTransfer  OptionType = "transfer"
	OptionEstimated OptionType = "estimated"
)

// Represents a complete journey from source to destination.
// It is immutable planning output and contains no side effects.
type CommuteOption struct {
	Type          OptionType
	Legs          []Leg
	TotalDistance float64
	TotalFare     int
	Duration      *float64
}

// Summarize recomputes the option totals from its legs. Duration is only set
// when every leg carries one.
func (o *CommuteOption) Summarize() {
	o.TotalDistance = 0
	o.TotalFare = 0

	var minutes float64
	complete := len(o.Legs) > 0
	for _, l := range o.Legs {
		o.TotalDistance += l.Distance
		o.TotalFare += l.Fare
		if l.Duration == nil {
			complete = false
			continue
		}
		minutes += *l.Duration
	}

	o.Duration = nil
	if complete {
		o.Duration = &minutes
	}
}
