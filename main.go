package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tripweaver/tripweaver/agent/agents/specialist"
	"github.com/tripweaver/tripweaver/agent/gateway"
	llmx "github.com/tripweaver/tripweaver/agent/llm"
	"github.com/tripweaver/tripweaver/agent/pipeline"
	configx "github.com/tripweaver/tripweaver/pkg/config"
	_ "github.com/tripweaver/tripweaver/pkg/logger/autoload"
	"github.com/tripweaver/tripweaver/server"
)

func main() {
	ctx := context.Background()

	llmCfg := configx.MustNew[llmx.Config]("LLM")
	gatewayCfg := configx.MustNew[gateway.Config]("GATEWAY")
	pipelineCfg := configx.MustNew[pipeline.Config]("PIPELINE")
	serverCfg := configx.MustNew[server.Config]("SERVER")

	gw, err := gateway.New(*gatewayCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build tool gateway")
	}
	defer func() {
		if err := gw.Close(); err != nil {
			log.Warn().Err(err).Msg("close tool gateway")
		}
	}()

	registry, err := specialist.NewRegistry(ctx, *llmCfg, gw)
	if err != nil {
		log.Fatal().Err(err).Msg("build agent registry")
	}

	pipe, err := pipeline.New(registry, *pipelineCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build pipeline")
	}

	trip := server.NewTripController(pipe, gw)
	engine := server.NewRouter(*serverCfg, trip)

	log.Info().Str("port", serverCfg.Port).Msg("starting trip planner server")
	if err := engine.Run(":" + serverCfg.Port); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}
