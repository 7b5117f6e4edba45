package executor

import (
	"log/slog"

	"github.com/elee1766/drover/src/agent"
	"github.com/elee1766/drover/src/aisdk"
	"github.com/elee1766/drover/src/guard"
)

// Service drives the agent loop: it owns the step executor and the run
// controller. Collaborators (model proposer, toolbox) are read-only from the
// service's perspective during a run; the service holds no per-run state, so
// one Service may serve many concurrent runs.
type Service struct {
	proposer  aisdk.Proposer
	toolbox   *agent.DefaultToolbox
	sanitizer *guard.Sanitizer
	sink      EventSink
	logger    *slog.Logger
}

// ServiceConfig holds configuration for creating a new Service
type ServiceConfig struct {
	Proposer  aisdk.Proposer
	Toolbox   *agent.DefaultToolbox
	Sanitizer *guard.Sanitizer
	EventSink EventSink
	Logger    *slog.Logger
}

// NewService creates a new loop service. The sanitizer defaults to the stock
// pattern set; the toolbox and event sink may be nil (no tools, no events).
func NewService(config ServiceConfig) *Service {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Sanitizer == nil {
		config.Sanitizer = guard.NewSanitizer()
	}

	return &Service{
		proposer:  config.Proposer,
		toolbox:   config.Toolbox,
		sanitizer: config.Sanitizer,
		sink:      config.EventSink,
		logger:    config.Logger,
	}
}
