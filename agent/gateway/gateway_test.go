package gateway

import (
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "stdio with command",
			cfg:  Config{Transport: TransportStdio, Command: "uvx"},
		},
		{
			name:    "stdio without command",
			cfg:     Config{Transport: TransportStdio},
			wantErr: true,
		},
		{
			name: "sse with url",
			cfg:  Config{Transport: TransportSSE, URL: "http://localhost:8000/sse"},
		},
		{
			name:    "sse without url",
			cfg:     Config{Transport: TransportSSE},
			wantErr: true,
		},
		{
			name:    "unknown transport",
			cfg:     Config{Transport: "websocket", Command: "uvx"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, contractx.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Transport: TransportStdio}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestFlattenContent(t *testing.T) {
	t.Parallel()

	t.Run("joins text blocks", func(t *testing.T) {
		t.Parallel()
		got, err := flattenContent("maps_weather", []mcp.Content{
			mcp.TextContent{Type: "text", Text: "sunny"},
			mcp.TextContent{Type: "text", Text: "25C"},
		})
		if err != nil {
			t.Fatalf("flattenContent() error = %v", err)
		}
		if got != "sunny\n25C" {
			t.Fatalf("unexpected text: %q", got)
		}
	})

	t.Run("empty content is a protocol error", func(t *testing.T) {
		t.Parallel()
		_, err := flattenContent("maps_weather", nil)
		if !errors.Is(err, contractx.ErrGatewayProtocol) {
			t.Fatalf("expected ErrGatewayProtocol, got %v", err)
		}
	})

	t.Run("non-text content only is a protocol error", func(t *testing.T) {
		t.Parallel()
		_, err := flattenContent("maps_weather", []mcp.Content{
			mcp.ImageContent{Type: "image"},
		})
		if !errors.Is(err, contractx.ErrGatewayProtocol) {
			t.Fatalf("expected ErrGatewayProtocol, got %v", err)
		}
	})
}

func TestParseHeaders(t *testing.T) {
	t.Parallel()

	got := parseHeaders([]string{
		"Authorization: Bearer token",
		"X-Env:prod",
		"malformed",
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 headers, got %d: %v", len(got), got)
	}
	if got["Authorization"] != "Bearer token" {
		t.Fatalf("unexpected Authorization header: %q", got["Authorization"])
	}
	if got["X-Env"] != "prod" {
		t.Fatalf("unexpected X-Env header: %q", got["X-Env"])
	}
}
