package specialist

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
	promptx "github.com/tripweaver/tripweaver/agent/prompt"
)

// specialistImpl runs one evidence-gathering role as a bounded tool-calling
// loop: call the model, execute any requested gateway operations, feed the
// results back, and stop at the first plain answer or at the step cap.
type specialistImpl struct {
	role         contractx.AgentRole
	systemPrompt string
	model        einomodel.ToolCallingChatModel
	tools        map[string]tool.InvokableTool
	maxSteps     int
}

func newSpecialist(
	role contractx.AgentRole,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	gatewayTools []tool.BaseTool,
	maxSteps int,
) (*specialistImpl, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: missing system prompt for role=%s", contractx.ErrValidation, role)
	}
	if maxSteps <= 0 {
		return nil, fmt.Errorf("%w: max steps must be positive for role=%s", contractx.ErrValidation, role)
	}

	infos := make([]*schema.ToolInfo, 0, len(gatewayTools))
	invokables := make(map[string]tool.InvokableTool, len(gatewayTools))
	for _, t := range gatewayTools {
		info, err := t.Info(context.Background())
		if err != nil {
			return nil, fmt.Errorf("%w: read tool info: %v", contractx.ErrGatewayProtocol, err)
		}
		inv, ok := t.(tool.InvokableTool)
		if !ok {
			return nil, fmt.Errorf("%w: tool %s is not invokable", contractx.ErrGatewayProtocol, info.Name)
		}
		infos = append(infos, info)
		invokables[info.Name] = inv
	}

	boundModel := chatModel
	if len(infos) > 0 {
		var err error
		boundModel, err = chatModel.WithTools(infos)
		if err != nil {
			return nil, fmt.Errorf("bind tools for role=%s: %w", role, err)
		}
	}

	return &specialistImpl{
		role:         role,
		systemPrompt: systemPrompt,
		model:        boundModel,
		tools:        invokables,
		maxSteps:     maxSteps,
	}, nil
}

func (s *specialistImpl) Role() contractx.AgentRole { return s.role }

// Run issues the role's task query and drives the tool loop. Only the final
// textual answer becomes evidence; the tool-call transcript stays local.
func (s *specialistImpl) Run(ctx context.Context, req contractx.TripRequest) (contractx.Evidence, error) {
	query := promptx.SpecialistQuery(s.role, req)
	messages := []*schema.Message{
		schema.SystemMessage(s.systemPrompt),
		schema.UserMessage(query),
	}

	for step := 0; step < s.maxSteps; step++ {
		msg, err := s.model.Generate(ctx, messages)
		if err != nil {
			return contractx.Evidence{}, &contractx.AgentError{Role: s.role, Err: err}
		}
		if msg == nil {
			return contractx.Evidence{}, &contractx.AgentError{
				Role: s.role,
				Err:  fmt.Errorf("%w: nil model response", contractx.ErrGatewayProtocol),
			}
		}

		if len(msg.ToolCalls) == 0 {
			answer := strings.TrimSpace(msg.Content)
			if answer == "" {
				return contractx.Evidence{}, &contractx.AgentError{
					Role: s.role,
					Err:  fmt.Errorf("model returned an empty answer"),
				}
			}
			return contractx.Evidence{Role: s.role, Text: answer}, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			result, err := s.executeToolCall(ctx, call)
			if err != nil {
				return contractx.Evidence{}, &contractx.AgentError{Role: s.role, Err: err}
			}
			messages = append(messages, schema.ToolMessage(result, call.ID))
		}
	}

	return contractx.Evidence{}, &contractx.AgentError{
		Role: s.role,
		Err:  fmt.Errorf("tool loop exceeded %d steps", s.maxSteps),
	}
}

// executeToolCall runs one requested operation. A request for an operation
// outside the registry is answered with a tool-error message so the model can
// recover; a failing gateway call aborts the run.
func (s *specialistImpl) executeToolCall(ctx context.Context, call schema.ToolCall) (string, error) {
	name := strings.TrimSpace(call.Function.Name)
	inv, ok := s.tools[name]
	if !ok {
		log.Warn().Str("role", string(s.role)).Str("tool", name).Msg("model requested unknown operation")
		return fmt.Sprintf("tool error: %v: %s", contractx.ErrUnknownOperation, name), nil
	}

	args := strings.TrimSpace(call.Function.Arguments)
	if args == "" {
		args = "{}"
	}

	out, err := inv.InvokableRun(ctx, args)
	if err != nil {
		return "", fmt.Errorf("%w: invoke %s: %v", contractx.ErrGatewayUnavailable, name, err)
	}
	return out, nil
}
