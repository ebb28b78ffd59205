package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
	statex "github.com/tripweaver/tripweaver/agent/state"
)

// The graph is a fixed acyclic schedule: the three specialists feed the
// planner. Sequential mode mirrors the chain
// attraction -> weather -> hotel -> planner; parallel mode fans the
// independent specialists out and joins before the planner.

func specialistNode(spec contractx.Specialist) func(context.Context, *statex.PipelineState) (*statex.PipelineState, error) {
	return func(ctx context.Context, st *statex.PipelineState) (*statex.PipelineState, error) {
		ev, err := runSpecialist(ctx, spec, st)
		if err != nil {
			return nil, err
		}
		if err := st.Apply(statex.Update{Evidence: []contractx.Evidence{ev}}); err != nil {
			return nil, err
		}
		return st, nil
	}
}

func runSpecialist(ctx context.Context, spec contractx.Specialist, st *statex.PipelineState) (contractx.Evidence, error) {
	started := time.Now()
	ev, err := spec.Run(ctx, st.Request)
	if err != nil {
		return contractx.Evidence{}, err
	}
	log.Info().
		Str("run_id", st.RunID).
		Str("role", string(spec.Role())).
		Dur("took", time.Since(started)).
		Int("evidence_len", len(ev.Text)).
		Msg("specialist finished")
	return ev, nil
}

func plannerNode(planner contractx.Planner) func(context.Context, *statex.PipelineState) (*statex.PipelineState, error) {
	return func(ctx context.Context, st *statex.PipelineState) (*statex.PipelineState, error) {
		started := time.Now()
		plan, err := planner.Plan(ctx, st.Request, st.Evidence)
		if err != nil {
			return nil, err
		}
		if err := st.Apply(statex.Update{Plan: plan}); err != nil {
			return nil, err
		}
		log.Info().
			Str("run_id", st.RunID).
			Dur("took", time.Since(started)).
			Int("days", len(plan.Days)).
			Msg("plan generated")
		return st, nil
	}
}

func compileSequentialGraph(
	ctx context.Context,
	models contractx.Registry,
) (compose.Runnable[*statex.PipelineState, *statex.PipelineState], error) {
	graph := compose.NewGraph[*statex.PipelineState, *statex.PipelineState]()

	specialists := models.Specialists()
	names := make([]string, 0, len(specialists))
	for _, spec := range specialists {
		name := "search_" + string(spec.Role())
		if err := graph.AddLambdaNode(name, compose.InvokableLambda(specialistNode(spec))); err != nil {
			return nil, fmt.Errorf("add node %s: %w", name, err)
		}
		names = append(names, name)
	}
	if err := graph.AddLambdaNode("generate_plan", compose.InvokableLambda(plannerNode(models.Planner()))); err != nil {
		return nil, fmt.Errorf("add node generate_plan: %w", err)
	}

	edges := make([][2]string, 0, len(names)+2)
	prev := compose.START
	for _, name := range names {
		edges = append(edges, [2]string{prev, name})
		prev = name
	}
	edges = append(edges, [2]string{prev, "generate_plan"}, [2]string{"generate_plan", compose.END})

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("pipeline.sequential"))
	if err != nil {
		return nil, fmt.Errorf("compile sequential pipeline: %w", err)
	}
	return runner, nil
}

const stateBranchKey = "state"

// compileParallelGraph schedules the specialists concurrently. They share no
// mutable state, so the only coordination point is the join that appends
// their evidence in the fixed role order before the planner runs.
func compileParallelGraph(
	ctx context.Context,
	models contractx.Registry,
) (compose.Runnable[*statex.PipelineState, *statex.PipelineState], error) {
	chain := compose.NewChain[*statex.PipelineState, *statex.PipelineState]()

	parallel := compose.NewParallel()
	parallel.AddLambda(stateBranchKey, compose.InvokableLambda(
		func(ctx context.Context, st *statex.PipelineState) (*statex.PipelineState, error) {
			return st, nil
		},
	))
	for _, spec := range models.Specialists() {
		spec := spec
		parallel.AddLambda(string(spec.Role()), compose.InvokableLambda(
			func(ctx context.Context, st *statex.PipelineState) (contractx.Evidence, error) {
				return runSpecialist(ctx, spec, st)
			},
		))
	}
	chain.AppendParallel(parallel)

	roles := make([]contractx.AgentRole, 0, len(models.Specialists()))
	for _, spec := range models.Specialists() {
		roles = append(roles, spec.Role())
	}

	chain.AppendLambda(compose.InvokableLambda(
		func(ctx context.Context, joined map[string]any) (*statex.PipelineState, error) {
			st, ok := joined[stateBranchKey].(*statex.PipelineState)
			if !ok {
				return nil, fmt.Errorf("%w: pipeline state missing from join", contractx.ErrValidation)
			}
			update := statex.Update{}
			for _, role := range roles {
				ev, ok := joined[string(role)].(contractx.Evidence)
				if !ok {
					return nil, fmt.Errorf("%w: evidence missing for role=%s", contractx.ErrValidation, role)
				}
				update.Evidence = append(update.Evidence, ev)
			}
			if err := st.Apply(update); err != nil {
				return nil, err
			}
			return st, nil
		},
	))

	chain.AppendLambda(compose.InvokableLambda(plannerNode(models.Planner())))

	runner, err := chain.Compile(ctx, compose.WithGraphName("pipeline.parallel"))
	if err != nil {
		return nil, fmt.Errorf("compile parallel pipeline: %w", err)
	}
	return runner, nil
}
