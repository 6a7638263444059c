package live

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	g "maragu.dev/gomponents"

	"cultr.xyz/cultr-web/internal/clock"
	"cultr.xyz/cultr-web/internal/components"
	"cultr.xyz/cultr-web/internal/content"
	"cultr.xyz/cultr-web/internal/landing"
	"cultr.xyz/cultr-web/internal/market"
	"cultr.xyz/cultr-web/internal/observability"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	defaultRefresh = 30 * time.Second
)

// QuoteSource supplies token quotes. *market.Client satisfies it.
type QuoteSource interface {
	Quote(ctx context.Context) (market.Quote, error)
}

// Config is shared by every session a Handler starts.
type Config struct {
	Site         content.Site
	Quotes       QuoteSource
	RefreshEvery time.Duration
	Clock        clock.Clock
	Logger       *zap.Logger
	Metrics      *observability.Metrics
}

// Session is one live connection. It owns a landing.View for the connection's lifetime.
type Session struct {
	id     string
	cfg    Config
	conn   *websocket.Conn
	out    *outbox
	hub    *scrollHub
	view   *landing.View
	logger *zap.Logger
}

func newSession(cfg Config, conn *websocket.Conn, initial landing.State) *Session {
	s := &Session{
		id:   ulid.Make().String(),
		cfg:  cfg,
		conn: conn,
		out:  newOutbox(),
		hub:  newScrollHub(),
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger.With(zap.String("session_id", s.id))
	doc := newAnchorDocument(s.out.push,
		string(landing.SectionHome), string(landing.SectionArt), string(landing.SectionFAQ))
	s.view = landing.NewView(doc,
		landing.WithState(initial),
		landing.WithClock(cfg.Clock),
		landing.WithChangeFunc(s.onChange),
	)
	return s
}

// ID returns the session's ULID.
func (s *Session) ID() string { return s.id }

// Run serves the connection until the client disconnects or ctx ends. The view is
// closed on every exit path, cancelling deferred scrolls and releasing the scroll
// subscription.
func (s *Session) Run(ctx context.Context) error {
	s.cfg.Metrics.SessionOpened()
	s.logger.Info("live session opened", zap.String("section", string(s.view.State().Active)))
	start := time.Now()

	grp, gctx := errgroup.WithContext(ctx)
	s.view.Mount(gctx, s.hub)
	defer func() {
		s.view.Close()
		s.out.close()
		_ = s.conn.Close()
		s.cfg.Metrics.SessionClosed()
		s.logger.Info("live session closed", zap.Duration("duration", time.Since(start)))
	}()
	stop := context.AfterFunc(gctx, func() { _ = s.conn.Close() })
	defer stop()

	grp.Go(s.readLoop)
	grp.Go(func() error { return s.writeLoop(gctx) })
	if s.cfg.Quotes != nil {
		grp.Go(func() error { return s.refreshLoop(gctx) })
	}

	err := grp.Wait()
	if isClosure(err) {
		return nil
	}
	return err
}

func (s *Session) readLoop() error {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return err
		}
		msg, err := decodeClient(raw)
		if err != nil {
			s.logger.Debug("live message rejected", zap.Error(err))
			s.out.push(Message{Type: TypeError, Error: err.Error()})
			continue
		}
		switch msg.Type {
		case TypeNavigate:
			s.view.Navigate(landing.ParseSection(msg.Target))
		case TypeToggleMenu:
			s.view.ToggleMenu()
		case TypeScroll:
			s.hub.publish(msg.Offset)
		}
	}
}

func (s *Session) writeLoop(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			return nil
		case <-s.out.notify:
			for _, m := range s.out.drain() {
				_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := s.conn.WriteJSON(m); err != nil {
					return err
				}
			}
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		}
	}
}

func (s *Session) refreshLoop(ctx context.Context) error {
	every := s.cfg.RefreshEvery
	if every <= 0 {
		every = defaultRefresh
	}
	// The first tick always patches, so a page rendered from a stale cache converges.
	var last market.Quote
	sent := false
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			q, err := s.cfg.Quotes.Quote(ctx)
			if err != nil && !errors.Is(err, market.ErrUnavailable) {
				s.logger.Warn("quote refresh failed", zap.Error(err))
			}
			if sent && sameQuote(q, last) {
				continue
			}
			last, sent = q, true
			s.patch(components.PriceCardID, components.PriceCard(s.cfg.Site.Hero.MarketCapLabel, q))
		}
	}
}

// onChange runs after every transition, outside the view lock. Transitions are driven
// from the read loop only, so patches are queued in transition order.
func (s *Session) onChange(a landing.Action, prev, next landing.State) {
	s.cfg.Metrics.ObserveAction(string(a.Kind))
	// Header links carry the full state, so any visible change re-renders it.
	if prev != next {
		s.patch(components.HeaderID, components.SiteHeader(next, s.cfg.Site))
	}
	if prev.FAQVisible != next.FAQVisible {
		s.patch(components.FAQID, components.FAQSection(next, s.cfg.Site.FAQ))
	}
}

func (s *Session) patch(id string, n g.Node) {
	html, err := components.Render(n)
	if err != nil {
		s.logger.Error("render patch", zap.String("id", id), zap.Error(err))
		return
	}
	s.out.push(Message{Type: TypePatch, ID: id, HTML: html})
}

func sameQuote(a, b market.Quote) bool {
	return a.Available == b.Available &&
		a.PriceUSD == b.PriceUSD &&
		a.Change24h == b.Change24h &&
		a.MarketCapUSD == b.MarketCapUSD
}

func isClosure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) {
		return true
	}
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
		websocket.CloseAbnormalClosure,
	)
}
