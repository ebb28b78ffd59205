package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	mcpwrap "github.com/cloudwego/eino-ext/components/tool/mcp"
	"github.com/cloudwego/eino/components/tool"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
)

const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"

	clientName    = "tripweaver"
	clientVersion = "0.1.0"
)

type Config struct {
	Transport string `envconfig:"TRANSPORT" split_words:"true" default:"stdio"`

	// stdio transport
	Command string   `envconfig:"COMMAND" split_words:"true"`
	Args    []string `envconfig:"ARGS" split_words:"true"`
	Env     []string `envconfig:"ENV" split_words:"true"`

	// sse transport
	URL     string   `envconfig:"URL" split_words:"true"`
	Headers []string `envconfig:"HEADERS" split_words:"true"`

	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
}

func (c Config) Validate() error {
	switch strings.TrimSpace(c.Transport) {
	case TransportStdio:
		if strings.TrimSpace(c.Command) == "" {
			return fmt.Errorf("%w: gateway command is required for stdio transport", contractx.ErrValidation)
		}
	case TransportSSE:
		if strings.TrimSpace(c.URL) == "" {
			return fmt.Errorf("%w: gateway url is required for sse transport", contractx.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown gateway transport %q", contractx.ErrValidation, c.Transport)
	}
	return nil
}

// Gateway owns the process-wide connection to the remote MCP tool provider.
// Construct one at startup and inject it into every consumer; the connection
// itself is established lazily by the first caller and reused afterwards.
type Gateway struct {
	cfg Config

	initOnce sync.Once
	initErr  error
	cli      client.MCPClient

	opsMu sync.RWMutex
	ops   map[string]contractx.Operation
}

var _ contractx.ToolGateway = (*Gateway)(nil)

func New(cfg Config) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Gateway{cfg: cfg}, nil
}

// Connect dials and initializes the MCP session exactly once. Concurrent
// callers block on the same attempt; a failed attempt is remembered and the
// caller decides whether to rebuild the gateway.
func (g *Gateway) Connect(ctx context.Context) error {
	g.initOnce.Do(func() {
		g.initErr = g.connect(ctx)
	})
	return g.initErr
}

func (g *Gateway) connect(ctx context.Context) error {
	var (
		cli client.MCPClient
		err error
	)

	switch strings.TrimSpace(g.cfg.Transport) {
	case TransportSSE:
		opts := []transport.ClientOption{}
		if headers := parseHeaders(g.cfg.Headers); len(headers) > 0 {
			opts = append(opts, client.WithHeaders(headers))
		}
		cli, err = client.NewSSEMCPClient(g.cfg.URL, opts...)
		if err == nil {
			err = cli.(*client.Client).Start(ctx)
		}
	default:
		cli, err = client.NewStdioMCPClient(g.cfg.Command, g.cfg.Env, g.cfg.Args...)
	}
	if err != nil {
		return fmt.Errorf("%w: connect %s: %v", contractx.ErrGatewayUnavailable, g.cfg.Transport, err)
	}

	initCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: clientName, Version: clientVersion}
	initReq.Params.Capabilities = mcp.ClientCapabilities{}

	if _, err := cli.Initialize(initCtx, initReq); err != nil {
		_ = cli.Close()
		return fmt.Errorf("%w: initialize: %v", contractx.ErrGatewayUnavailable, err)
	}

	log.Info().Str("transport", g.cfg.Transport).Msg("tool gateway connected")
	g.cli = cli
	return nil
}

// ListOperations returns the remote tool set as name/description/schema
// triples and refreshes the local operation registry.
func (g *Gateway) ListOperations(ctx context.Context) ([]contractx.Operation, error) {
	if err := g.Connect(ctx); err != nil {
		return nil, err
	}

	result, err := g.cli.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: list tools: %v", contractx.ErrGatewayUnavailable, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: empty list tools response", contractx.ErrGatewayProtocol)
	}

	ops := make([]contractx.Operation, 0, len(result.Tools))
	registry := make(map[string]contractx.Operation, len(result.Tools))
	for _, t := range result.Tools {
		op := contractx.Operation{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema.Properties,
		}
		ops = append(ops, op)
		registry[t.Name] = op
	}

	g.opsMu.Lock()
	g.ops = registry
	g.opsMu.Unlock()

	return ops, nil
}

// Invoke calls one named operation and flattens the textual content of the
// result. A tool that runs but reports its own failure still returns that
// text; only transport and protocol problems become errors.
func (g *Gateway) Invoke(ctx context.Context, name string, args map[string]any) (string, error) {
	if err := g.Connect(ctx); err != nil {
		return "", err
	}

	known, err := g.knownOperation(ctx, name)
	if err != nil {
		return "", err
	}
	if !known {
		return "", fmt.Errorf("%w: %s", contractx.ErrUnknownOperation, name)
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := g.cli.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: call %s: %v", contractx.ErrGatewayUnavailable, name, err)
	}
	if result == nil {
		return "", fmt.Errorf("%w: empty response for %s", contractx.ErrGatewayProtocol, name)
	}

	text, err := flattenContent(name, result.Content)
	if err != nil {
		return "", err
	}
	if result.IsError {
		text = "tool error: " + text
	}
	return text, nil
}

// Tools bridges the gateway's operations into callable capabilities that a
// chat model can bind.
func (g *Gateway) Tools(ctx context.Context) ([]tool.BaseTool, error) {
	if err := g.Connect(ctx); err != nil {
		return nil, err
	}

	tools, err := mcpwrap.GetTools(ctx, &mcpwrap.Config{Cli: g.cli})
	if err != nil {
		return nil, fmt.Errorf("%w: bridge tools: %v", contractx.ErrGatewayUnavailable, err)
	}
	return tools, nil
}

func (g *Gateway) Close() error {
	if g.cli == nil {
		return nil
	}
	return g.cli.Close()
}

func (g *Gateway) knownOperation(ctx context.Context, name string) (bool, error) {
	g.opsMu.RLock()
	registry := g.ops
	g.opsMu.RUnlock()

	if registry == nil {
		if _, err := g.ListOperations(ctx); err != nil {
			return false, err
		}
		g.opsMu.RLock()
		registry = g.ops
		g.opsMu.RUnlock()
	}

	_, ok := registry[name]
	return ok, nil
}

func flattenContent(name string, content []mcp.Content) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("%w: no content for %s", contractx.ErrGatewayProtocol, name)
	}

	var parts []string
	for _, item := range content {
		if text, ok := item.(mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: no textual content for %s", contractx.ErrGatewayProtocol, name)
	}
	return strings.Join(parts, "\n"), nil
}

func parseHeaders(raw []string) map[string]string {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 {
			continue
		}
		headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return headers
}
