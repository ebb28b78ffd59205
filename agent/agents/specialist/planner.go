package specialist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
	promptx "github.com/tripweaver/tripweaver/agent/prompt"
)

// CompletionFunc issues one system+user chat completion and returns the raw
// assistant text. The planner is agnostic to which provider backs it.
type CompletionFunc func(ctx context.Context, system, user string) (string, error)

type plannerImpl struct {
	complete     CompletionFunc
	systemPrompt string
	attempts     int
}

func newPlanner(complete CompletionFunc, systemPrompt string, attempts int) (*plannerImpl, error) {
	if complete == nil {
		return nil, fmt.Errorf("%w: completion func is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: planner system prompt is required", contractx.ErrValidation)
	}
	if attempts <= 0 {
		attempts = 1
	}
	return &plannerImpl{
		complete:     complete,
		systemPrompt: systemPrompt,
		attempts:     attempts,
	}, nil
}

// Plan joins the specialist evidence, asks the model for the full JSON plan,
// and parses and validates the result. Format drift is retried up to the
// attempt budget; transport failures are not. On failure no partial plan is
// ever returned.
func (p *plannerImpl) Plan(
	ctx context.Context,
	req contractx.TripRequest,
	evidence contractx.EvidenceSet,
) (*contractx.TripPlan, error) {
	attractions := strings.Join(evidence.Texts(contractx.RoleAttraction), "\n")
	weather := strings.Join(evidence.Texts(contractx.RoleWeather), "\n")
	hotels := strings.Join(evidence.Texts(contractx.RoleHotel), "\n")

	query := promptx.PlannerQuery(req, attractions, weather, hotels)

	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		raw, err := p.complete(ctx, p.systemPrompt, query)
		if err != nil {
			return nil, &contractx.PlanError{Err: fmt.Errorf("model call: %w", err)}
		}

		plan, err := parsePlan(raw, req)
		if err == nil {
			return plan, nil
		}

		lastErr = &contractx.PlanError{Raw: raw, Err: err}
		if attempt < p.attempts {
			log.Warn().Int("attempt", attempt).Err(err).Msg("plan output rejected, retrying")
		}
	}
	return nil, lastErr
}

func parsePlan(raw string, req contractx.TripRequest) (*contractx.TripPlan, error) {
	payload, err := ExtractJSONPayload(raw)
	if err != nil {
		return nil, err
	}

	var plan contractx.TripPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	if err := contractx.ValidatePlan(&plan, req); err != nil {
		return nil, err
	}
	return &plan, nil
}

// NewOpenAICompletion adapts an OpenAI-compatible SDK client into a
// CompletionFunc with a fixed model and temperature.
func NewOpenAICompletion(client *openaisdk.Client, model string, temperature float32) CompletionFunc {
	return func(ctx context.Context, system, user string) (string, error) {
		resp, err := client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
			Model:       openaisdk.ChatModel(model),
			Temperature: openaisdk.Float(float64(temperature)),
			Messages: []openaisdk.ChatCompletionMessageParamUnion{
				openaisdk.SystemMessage(system),
				openaisdk.UserMessage(user),
			},
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("completion response has no choices")
		}
		return resp.Choices[0].Message.Content, nil
	}
}
