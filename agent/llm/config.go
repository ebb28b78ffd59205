package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tripweaver/tripweaver/agent/contract"
	"github.com/tripweaver/tripweaver/pkg/llmclient"
)

// Config carries the shared provider settings plus per-role overrides. Every
// role falls back to the base model unless its own model is set; the planner
// runs near-deterministic by default to keep the JSON output stable.
type Config struct {
	Provider           string        `envconfig:"PROVIDER" split_words:"true" default:"openai"`
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"4000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`

	AttractionModel string `envconfig:"ATTRACTION_MODEL" split_words:"true"`
	WeatherModel    string `envconfig:"WEATHER_MODEL" split_words:"true"`
	HotelModel      string `envconfig:"HOTEL_MODEL" split_words:"true"`
	PlannerModel    string `envconfig:"PLANNER_MODEL" split_words:"true"`

	PlannerTemperature float32 `envconfig:"PLANNER_TEMPERATURE" split_words:"true" default:"0.2"`

	// MaxToolSteps caps the specialist tool-calling loop; exceeding it fails
	// the run instead of looping.
	MaxToolSteps int `envconfig:"MAX_TOOL_STEPS" split_words:"true" default:"8"`

	// PlannerAttempts bounds retries around plan generation when the model's
	// output cannot be parsed into a plan.
	PlannerAttempts int `envconfig:"PLANNER_ATTEMPTS" split_words:"true" default:"2"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	if c.MaxToolSteps <= 0 {
		return fmt.Errorf("%w: max tool steps must be positive", contractx.ErrValidation)
	}
	if c.PlannerAttempts <= 0 {
		return fmt.Errorf("%w: planner attempts must be positive", contractx.ErrValidation)
	}
	return nil
}

// ClientFor resolves the provider configuration for one role.
func (c Config) ClientFor(role contractx.AgentRole) llmclient.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := ""
	switch role {
	case contractx.RoleAttraction:
		override = c.AttractionModel
	case contractx.RoleWeather:
		override = c.WeatherModel
	case contractx.RoleHotel:
		override = c.HotelModel
	case contractx.RolePlanner:
		override = c.PlannerModel
		temp = c.PlannerTemperature
	}
	if v := strings.TrimSpace(override); v != "" {
		modelName = v
	}

	maxCompletionToken := c.MaxCompletionToken
	return llmclient.Config{
		Provider:           strings.TrimSpace(c.Provider),
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
	}
}
