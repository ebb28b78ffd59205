package state

import (
	"fmt"

	"github.com/google/uuid"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
)

// PipelineState is the mutable context threaded through one trip-planning
// run. It lives for a single request and is discarded with the response.
//
// Merge policy: evidence lists append, the final plan writes exactly once.
type PipelineState struct {
	// RunID correlates log events across pipeline stages.
	RunID string

	// Request is write-once, set at construction. The pipeline reads it only.
	Request contractx.TripRequest

	Evidence contractx.EvidenceSet

	FinalPlan *contractx.TripPlan
}

// Update is a partial state change produced by one pipeline node.
type Update struct {
	Evidence []contractx.Evidence
	Plan     *contractx.TripPlan
}

func New(req contractx.TripRequest) *PipelineState {
	return &PipelineState{
		RunID:    uuid.NewString(),
		Request:  req,
		Evidence: contractx.EvidenceSet{},
	}
}

// Apply merges a node's partial update into the state. A node may append any
// number of evidence entries; writing the plan twice is a programming error
// and is rejected.
func (s *PipelineState) Apply(u Update) error {
	for _, ev := range u.Evidence {
		switch ev.Role {
		case contractx.RoleAttraction, contractx.RoleWeather, contractx.RoleHotel:
			s.Evidence.Append(ev)
		default:
			return fmt.Errorf("%w: evidence from unexpected role %q", contractx.ErrValidation, ev.Role)
		}
	}
	if u.Plan != nil {
		if s.FinalPlan != nil {
			return fmt.Errorf("%w: final plan already set", contractx.ErrValidation)
		}
		s.FinalPlan = u.Plan
	}
	return nil
}
