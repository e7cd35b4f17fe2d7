package cmd

import (
	"log/slog"

	"github.com/go-drift/frameui/cmd/frameui/internal/scene"
	"github.com/go-drift/frameui/pkg/config"
	"github.com/go-drift/frameui/pkg/engine"
	"github.com/go-drift/frameui/pkg/errors"
)

// session is a loaded scene with the engine it runs against.
type session struct {
	scene  *scene.Scene
	cfg    *config.Resolved
	runner *scene.Runner
}

// openScene loads the scene at path and builds a runner from frameui.yaml,
// or from the scene's own config block when it has one.
func openScene(path string) (*session, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(configDir)
	if err != nil {
		return nil, err
	}
	if s.Config != nil {
		override, err := s.Config.Resolve()
		if err != nil {
			return nil, err
		}
		override.Root, override.ModulePath = cfg.Root, cfg.ModulePath
		cfg = override
	}

	configureLogging(cfg)
	return &session{
		scene:  s,
		cfg:    cfg,
		runner: scene.NewRunner(engine.OptionsFromConfig(cfg)),
	}, nil
}

func configureLogging(cfg *config.Resolved) {
	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel})
	engine.SetLogger(slog.New(handler))
	errors.SetHandler(&errors.LogHandler{Verbose: cfg.VerboseErrors, Out: stderr})
}
