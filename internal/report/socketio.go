package report

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/serialbench/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const defaultSocketIOTimeout = 15 * time.Second

// SocketIO emits the timing as a single event to a socket.io server. A new
// connection is opened for every report.
type SocketIO struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

func (r SocketIO) ReportTiming(ctx context.Context, t Timing) error {
	logger := ctxlog.FromContext(ctx).With("reporter", "socketio", "url", r.URL)

	if r.Event == "" {
		return errors.New("socket.io reporter: event name is required")
	}
	parsed, err := url.Parse(r.URL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("socket.io reporter: URL %q needs a scheme and host", r.URL)
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultSocketIOTimeout
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsed.Path)
	if r.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connected := make(chan error, 1)
	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(r.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected.", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		connected <- connectError(errs)
	})
	io.Connect()
	defer io.Disconnect()

	wait, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	select {
	case err := <-connected:
		if err != nil {
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-wait.Done():
		return fmt.Errorf("timed out after %v waiting for socket.io connection", timeout)
	}

	io.Emit(r.Event, t.Fields())
	logger.Info("Timing reported.", "event", r.Event, "sid", io.Id())
	return nil
}

// connectError turns the arguments of a connect_error event into an error.
func connectError(args []any) error {
	if len(args) == 0 {
		return errors.New("connect_error without details")
	}
	if err, ok := args[0].(error); ok && err != nil {
		return err
	}
	return fmt.Errorf("%v", args[0])
}
