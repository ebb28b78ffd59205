package contract

import "context"

// Specialist gathers free-form evidence for one role. Run issues a single
// tool-augmented model call derived from the trip request and returns the
// model's final text only.
type Specialist interface {
	Role() AgentRole
	Run(ctx context.Context, req TripRequest) (Evidence, error)
}

// Planner merges all specialist evidence into the final structured plan.
type Planner interface {
	Plan(ctx context.Context, req TripRequest, evidence EvidenceSet) (*TripPlan, error)
}

// Registry exposes the agents of one process, built once at startup.
type Registry interface {
	Specialists() []Specialist
	Planner() Planner
}

// ToolGateway adapts a remote tool provider into named callable operations.
// Connect is idempotent; implementations must be safe for concurrent use.
type ToolGateway interface {
	Connect(ctx context.Context) error
	ListOperations(ctx context.Context) ([]Operation, error)
	Invoke(ctx context.Context, name string, args map[string]any) (string, error)
	Close() error
}

// EvidenceSet is the accumulated specialist output keyed by role, in append
// order within each role.
type EvidenceSet map[AgentRole][]string

func (s EvidenceSet) Append(ev Evidence) {
	s[ev.Role] = append(s[ev.Role], ev.Text)
}

// Texts returns the entries for one role; absent roles yield nil.
func (s EvidenceSet) Texts(role AgentRole) []string {
	return s[role]
}
