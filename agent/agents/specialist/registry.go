package specialist

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
	llmx "github.com/tripweaver/tripweaver/agent/llm"
	promptx "github.com/tripweaver/tripweaver/agent/prompt"
)

// ToolSource supplies the gateway operations as bindable tools. Nil means the
// specialists run without tool access and answer from the model alone.
type ToolSource interface {
	Tools(ctx context.Context) ([]tool.BaseTool, error)
}

type registryImpl struct {
	specialists []contractx.Specialist
	planner     contractx.Planner
}

func (r *registryImpl) Specialists() []contractx.Specialist { return r.specialists }

func (r *registryImpl) Planner() contractx.Planner { return r.planner }

// NewRegistry builds the three specialists and the planner once at startup.
// The gateway connection is established here so a broken tool provider fails
// the process early instead of the first request.
func NewRegistry(ctx context.Context, cfg llmx.Config, source ToolSource) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()

	var gatewayTools []tool.BaseTool
	if source != nil {
		var err error
		gatewayTools, err = source.Tools(ctx)
		if err != nil {
			return nil, err
		}
	}

	specialists := make([]contractx.Specialist, 0, len(contractx.SpecialistRoles))
	for _, role := range contractx.SpecialistRoles {
		clientCfg := cfg.ClientFor(role)
		chatModel, err := clientCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("create model for role=%s: %w", role, err)
		}
		spec, err := newSpecialist(role, chatModel, prompts.System(role), gatewayTools, cfg.MaxToolSteps)
		if err != nil {
			return nil, err
		}
		specialists = append(specialists, spec)
	}

	plannerClientCfg := cfg.ClientFor(contractx.RolePlanner)
	rawClient, err := plannerClientCfg.NewRawClient()
	if err != nil {
		return nil, fmt.Errorf("create planner client: %w", err)
	}

	complete := NewOpenAICompletion(rawClient, plannerClientCfg.Model, plannerClientCfg.Temperature)
	planner, err := newPlanner(complete, prompts.Planner, cfg.PlannerAttempts)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		specialists: specialists,
		planner:     planner,
	}, nil
}
