package domain

// Transit modes carried by route features.
const (
	ModeJeepney = "jeepney"
	ModeBus     = "bus"
)

// Represents a fixed transit line loaded from the spatial store.
// Features are owned by the store and never mutated by the planner.
type RouteFeature struct {
	ID       string
	Name     string
	Ref      string
	Mode     string
	SubType  string
	Geometry Polyline
}

// RouteProximity is what the spatial store reports for one route relative to
// a source/destination pair. Distances are in meters.
type RouteProximity struct {
	Route                RouteFeature
	DistanceFromSource   float64
	DistanceFromDest     float64
	ClosestPointToSource Point
	ClosestPointToDest   Point
}

// RouteType is the coarse classification of a candidate route.
type RouteType string

const (
	RouteDirect     RouteType = "direct"
	RouteSourceSide RouteType = "source"
	RouteDestSide   RouteType = "destination"
	RouteUnrelated  RouteType = "other"
)

// A transit route considered for one source/destination pair.
type CandidateRoute struct {
	RouteProximity
	RouteType RouteType
}

// Pairing of a route boarded near the source with one alighted near the
// destination, joined by a short walk between their closest points.
type TransferCandidate struct {
	SourceRoute         CandidateRoute
	DestRoute           CandidateRoute
	SourceTransferPoint Point
	DestTransferPoint   Point
	TransferDistance    float64
}
