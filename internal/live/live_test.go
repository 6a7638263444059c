package live

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"cultr.xyz/cultr-web/internal/clock"
	"cultr.xyz/cultr-web/internal/components"
	"cultr.xyz/cultr-web/internal/content"
	"cultr.xyz/cultr-web/internal/market"
	"cultr.xyz/cultr-web/internal/observability"
)

type stubQuotes struct {
	mu sync.Mutex
	q  market.Quote
}

func (s *stubQuotes) Quote(context.Context) (market.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q, nil
}

func (s *stubQuotes) set(q market.Quote) {
	s.mu.Lock()
	s.q = q
	s.mu.Unlock()
}

type liveEnv struct {
	clock   *clock.Manual
	metrics *observability.Metrics
	quotes  *stubQuotes
	conn    *websocket.Conn
}

func startLive(t *testing.T, query string, refresh time.Duration) *liveEnv {
	t.Helper()

	site, err := content.Default()
	require.NoError(t, err)
	env := &liveEnv{
		clock:   clock.NewManual(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		metrics: observability.NewMetrics(),
		quotes:  &stubQuotes{q: market.Quote{Symbol: "CULTR", PriceUSD: 1, Available: true}},
	}
	srv := httptest.NewServer(NewHandler(Config{
		Site:         site,
		Quotes:       env.quotes,
		RefreshEvery: refresh,
		Clock:        env.clock,
		Metrics:      env.metrics,
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	env.conn = conn
	return env
}

func (e *liveEnv) send(t *testing.T, m Message) {
	t.Helper()
	require.NoError(t, e.conn.WriteJSON(m))
}

func (e *liveEnv) recv(t *testing.T) Message {
	t.Helper()
	require.NoError(t, e.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var m Message
	require.NoError(t, e.conn.ReadJSON(&m))
	return m
}

func TestLiveOpenFAQPatchesThenScrollsAfterDelay(t *testing.T) {
	t.Parallel()
	env := startLive(t, "", time.Hour)

	env.send(t, Message{Type: TypeNavigate, Target: "faq"})

	header := env.recv(t)
	require.Equal(t, TypePatch, header.Type)
	require.Equal(t, components.HeaderID, header.ID)
	faq := env.recv(t)
	require.Equal(t, components.FAQID, faq.ID)
	require.Contains(t, faq.HTML, `data-visible="true"`)

	require.Equal(t, 1, env.clock.Pending())
	env.clock.Advance(120 * time.Millisecond)

	scroll := env.recv(t)
	require.Equal(t, Message{Type: TypeScroll, Target: "faq", Behavior: "smooth"}, scroll)
}

func TestLiveNavigateScrollsImmediately(t *testing.T) {
	t.Parallel()
	env := startLive(t, "?menu=1", time.Hour)

	env.send(t, Message{Type: TypeNavigate, Target: "art"})

	scroll := env.recv(t)
	require.Equal(t, TypeScroll, scroll.Type)
	require.Equal(t, "art", scroll.Target)
	header := env.recv(t)
	require.Equal(t, components.HeaderID, header.ID)
	require.Contains(t, header.HTML, `aria-expanded="false"`)
	require.Equal(t, 0, env.clock.Pending())
}

func TestLiveScrollThresholdAndMenuToggle(t *testing.T) {
	t.Parallel()
	env := startLive(t, "", time.Hour)

	// 49 leaves the state unchanged, so the first frame must come from 51.
	env.send(t, Message{Type: TypeScroll, Offset: 49})
	env.send(t, Message{Type: TypeScroll, Offset: 51})
	m := env.recv(t)
	require.Equal(t, components.HeaderID, m.ID)
	require.Contains(t, m.HTML, `data-scrolled="true"`)

	env.send(t, Message{Type: TypeToggleMenu})
	m = env.recv(t)
	require.Contains(t, m.HTML, `data-icon="x"`)
	env.send(t, Message{Type: TypeToggleMenu})
	m = env.recv(t)
	require.Contains(t, m.HTML, `data-icon="menu"`)
}

func TestLiveRejectsUnknownMessages(t *testing.T) {
	t.Parallel()
	env := startLive(t, "", time.Hour)

	env.send(t, Message{Type: "reload"})
	m := env.recv(t)
	require.Equal(t, TypeError, m.Type)
	require.Contains(t, m.Error, "unknown message type")

	env.send(t, Message{Type: TypeNavigate, Target: "missing"})
	env.send(t, Message{Type: TypeToggleMenu})
	m = env.recv(t)
	require.Equal(t, TypePatch, m.Type, "navigating to an absent anchor emits no scroll")
}

func TestLiveDisconnectTearsDownView(t *testing.T) {
	t.Parallel()
	env := startLive(t, "", time.Hour)

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(env.metrics.LiveSessions) == 1
	}, 2*time.Second, 10*time.Millisecond)

	env.send(t, Message{Type: TypeNavigate, Target: "faq"})
	env.recv(t)
	env.recv(t)
	require.Equal(t, 1, env.clock.Pending())

	require.NoError(t, env.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = env.conn.Close()

	require.Eventually(t, func() bool {
		return env.clock.Pending() == 0 && testutil.ToFloat64(env.metrics.LiveSessions) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLivePushesQuoteChanges(t *testing.T) {
	t.Parallel()
	env := startLive(t, "", 20*time.Millisecond)

	m := env.recv(t)
	require.Equal(t, components.PriceCardID, m.ID)
	require.Contains(t, m.HTML, "$1.00")

	env.quotes.set(market.Quote{Symbol: "CULTR", PriceUSD: 2.5, Change24h: 4, MarketCapUSD: 1_000_000, Available: true})
	m = env.recv(t)
	require.Equal(t, components.PriceCardID, m.ID)
	require.Contains(t, m.HTML, "$2.50")
}

func TestScrollHubRelease(t *testing.T) {
	t.Parallel()

	hub := newScrollHub()
	var got []float64
	release := hub.OnScroll(func(v float64) { got = append(got, v) })
	hub.publish(10)
	release()
	release()
	hub.publish(20)
	require.Equal(t, []float64{10}, got)
	require.Equal(t, 0, hub.size())
}

func TestDecodeClient(t *testing.T) {
	t.Parallel()

	_, err := decodeClient([]byte(`{"type":"navigate"}`))
	require.Error(t, err)
	_, err = decodeClient([]byte(`not json`))
	require.Error(t, err)
	m, err := decodeClient([]byte(`{"type":"scroll","offset":12.5}`))
	require.NoError(t, err)
	require.Equal(t, 12.5, m.Offset)
}
