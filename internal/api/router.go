package api

import (
	"context"

	"github.com/AlexZinkM/sui-agent/internal/handler"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandlerFunc handles one parsed command
type HandlerFunc func(ctx context.Context, cmd handler.Command)

// Router dispatches lines of user input to command handlers by intent
type Router struct {
	routes   map[handler.Intent]HandlerFunc
	notFound HandlerFunc
	logger   *zap.Logger
}

// NewRouter creates an empty router
func NewRouter(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		routes:   make(map[handler.Intent]HandlerFunc),
		notFound: func(context.Context, handler.Command) {},
		logger:   logger.Named("router"),
	}
}

// HandleFunc registers fn for intent
func (r *Router) HandleFunc(intent handler.Intent, fn HandlerFunc) {
	r.routes[intent] = fn
}

// NotFound registers the handler for unrecognized input
func (r *Router) NotFound(fn HandlerFunc) {
	r.notFound = fn
}

// Dispatch parses line and runs the matching handler
func (r *Router) Dispatch(ctx context.Context, line string) {
	cmd := handler.Parse(line)

	r.logger.Debug("dispatching command",
		zap.String("cmd_id", uuid.NewString()),
		zap.String("intent", string(cmd.Intent)))

	if fn, ok := r.routes[cmd.Intent]; ok {
		fn(ctx, cmd)
		return
	}
	r.notFound(ctx, cmd)
}

// SetupRouter sets up router with the command handler
func SetupRouter(h *handler.CommandHandler, logger *zap.Logger) *Router {
	r := NewRouter(logger)

	r.HandleFunc(handler.IntentAddress, h.Address)
	r.HandleFunc(handler.IntentBalance, h.Balance)
	r.HandleFunc(handler.IntentFaucet, h.Faucet)
	r.HandleFunc(handler.IntentSimulate, h.Simulate)
	r.HandleFunc(handler.IntentTransfer, h.Transfer)
	r.NotFound(h.Help)

	return r
}
