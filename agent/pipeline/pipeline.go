package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
	statex "github.com/tripweaver/tripweaver/agent/state"
)

type Config struct {
	// RequestTimeout is the overall deadline for one trip-planning run,
	// covering every model and gateway call in the chain.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" split_words:"true" default:"120s"`

	// ParallelSpecialists fans the three specialists out concurrently
	// instead of running them in sequence.
	ParallelSpecialists bool `envconfig:"PARALLEL_SPECIALISTS" split_words:"true" default:"false"`
}

// Pipeline executes the fixed specialist->planner schedule over a
// request-scoped state. Any stage failure aborts the whole run; no partial
// plan is ever returned.
type Pipeline struct {
	models contractx.Registry
	runner compose.Runnable[*statex.PipelineState, *statex.PipelineState]
	cfg    Config
}

func New(models contractx.Registry, cfg Config) (*Pipeline, error) {
	if models == nil {
		return nil, errors.New("agent registry is required")
	}
	if len(models.Specialists()) == 0 {
		return nil, errors.New("at least one specialist is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 120 * time.Second
	}

	compile := compileSequentialGraph
	if cfg.ParallelSpecialists {
		compile = compileParallelGraph
	}
	runner, err := compile(context.Background(), models)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		models: models,
		runner: runner,
		cfg:    cfg,
	}, nil
}

// Plan runs one trip-planning request end to end.
func (p *Pipeline) Plan(ctx context.Context, req contractx.TripRequest) (*contractx.TripPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.RequestTimeout)
	defer cancel()

	st := statex.New(req)
	log.Info().
		Str("run_id", st.RunID).
		Str("city", req.City).
		Int("travel_days", req.TravelDays).
		Bool("parallel", p.cfg.ParallelSpecialists).
		Msg("trip planning started")

	out, err := p.runner.Invoke(ctx, st)
	if err != nil {
		log.Error().Str("run_id", st.RunID).Err(err).Msg("trip planning failed")
		return nil, err
	}
	if out.FinalPlan == nil {
		return nil, fmt.Errorf("%w: pipeline finished without a plan", contractx.ErrPlanGeneration)
	}
	return out.FinalPlan, nil
}
