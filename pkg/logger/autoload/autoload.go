// Package autoload configures the global logger from LOG_* environment
// variables as an import side effect.
package autoload

import (
	configx "github.com/tripweaver/tripweaver/pkg/config"
	logx "github.com/tripweaver/tripweaver/pkg/logger"
)

func init() {
	cfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*cfg)
}
