package live

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cultr.xyz/cultr-web/internal/landing"
)

// Handler upgrades GET /live and runs one Session per connection. The initial state is
// read from the query string, in the same encoding the page links use.
type Handler struct {
	cfg      Config
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHandler returns a handler serving live sessions with cfg. Cross-origin upgrades
// are rejected.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	initial := landing.StateFromQuery(r.URL.Query())
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.cfg.Logger.Debug("live upgrade failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(h.ctx, cancel)
	defer stop()

	s := newSession(h.cfg, conn, initial)
	if err := s.Run(ctx); err != nil {
		h.cfg.Logger.Warn("live session ended with error", zap.String("session_id", s.ID()), zap.Error(err))
	}
}

// Close ends every running session. Hijacked connections are not tracked by
// http.Server.Shutdown, so register this with RegisterOnShutdown.
func (h *Handler) Close() {
	h.cancel()
}
