package routing

import (
	"commute-planner-service/internal/ports"
	"context"
	"fmt"
	"slices"
	"sync/atomic"
)

// MockRouter returns canned routes per profile. With Err set every call fails.
type MockRouter struct {
	routes map[string][]ports.RoadRoute
	Err    error
	calls  atomic.Int64
}

func NewMockRouter(byProfile map[string][]ports.RoadRoute) *MockRouter {
	return &MockRouter{routes: byProfile}
}

func (m *MockRouter) Route(ctx context.Context, req ports.RouteRequest) ([]ports.RoadRoute, error) {
	m.calls.Add(1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}

	r, ok := m.routes[req.Profile]
	if !ok {
		return nil, fmt.Errorf("missing mock route for profile %q", req.Profile)
	}
	return slices.Clone(r), nil
}

// Calls reports how many times Route was invoked.
func (m *MockRouter) Calls() int {
	return int(m.calls.Load())
}
