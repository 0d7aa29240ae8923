package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/config"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/metrics"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/model"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/service"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/session"
)

type stubMempool struct{}

func (stubMempool) TransactionsToSend(context.Context) ([]model.MempoolTransaction, error) {
	return nil, nil
}

func (stubMempool) Clear(context.Context) error { return nil }

type stubPeers struct {
	consensus []string
}

func (p stubPeers) Consensus() []string { return p.consensus }

type stubValidator struct{}

func (stubValidator) IsValid(string) bool { return true }

// stubLedger panics on any call; the commands exercised here never reach
// storage, and the dispatcher contains panics if one ever does.
type stubLedger struct {
	service.Ledger
}

func startTestServer(t *testing.T) (net.Addr, context.CancelFunc, chan struct{}) {
	t.Helper()
	logger := zap.NewNop()
	cfg := &config.Config{}
	dispatcher := service.NewDispatcher(stubMempool{}, stubValidator{}, cfg, logger, metrics.NewDispatcher())

	srv := NewServer(dispatcher, stubLedger{}, stubPeers{consensus: []string{"10.0.0.1:5658"}}, logger, 2*time.Second, 0)
	require.NoError(t, srv.Listen("127.0.0.1:0"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = srv.Serve(ctx)
		close(done)
	}()
	return srv.Addr(), cancel, done
}

func TestServerServesCommandsOverTCP(t *testing.T) {
	addr, cancel, done := startTestServer(t)
	defer func() {
		cancel()
		<-done
	}()

	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	sess := session.New(conn, 2*time.Second)

	require.NoError(t, sess.Send("api_ping"))
	var reply string
	require.NoError(t, sess.Receive(&reply))
	require.Equal(t, "api_pong", reply)

	// An unknown command produces no response and leaves the session
	// usable for the next command.
	require.NoError(t, sess.Send("api_nosuchthing"))
	require.NoError(t, sess.Send("api_ping"))
	require.NoError(t, sess.Receive(&reply))
	require.Equal(t, "api_pong", reply)

	require.NoError(t, sess.Send("api_getpeerinfo"))
	var info []map[string]any
	require.NoError(t, sess.Receive(&info))
	require.Len(t, info, 1)
	require.Equal(t, "10.0.0.1:5658", info[0]["addr"])
}

func TestServerHandlesConcurrentSessions(t *testing.T) {
	addr, cancel, done := startTestServer(t)
	defer func() {
		cancel()
		<-done
	}()

	for i := 0; i < 3; i++ {
		conn, err := net.Dial("tcp", addr.String())
		require.NoError(t, err)

		sess := session.New(conn, 2*time.Second)
		require.NoError(t, sess.Send("api_ping"))

		var reply string
		require.NoError(t, sess.Receive(&reply))
		require.Equal(t, "api_pong", reply)
		require.NoError(t, conn.Close())
	}
}
