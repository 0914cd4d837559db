package viewer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	// The event emitted for every configuration update. Its arguments are
	// the element name and the configuration vector.
	UpdateEvent = "updateElementConfig"

	DefaultDialTimeout = 5 * time.Second
)

// ErrDisconnected is returned when updating a client whose socket has gone
// away.
var ErrDisconnected = errors.New("viewer disconnected")

var log = logrus.WithFields(logrus.Fields{
	"pkg": "viewer",
})

// DialOptions configures a socket.io viewer connection.
type DialOptions struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// SocketClient is a viewer reached over socket.io.
type SocketClient struct {
	io *socket.Socket
}

// Dial connects to a socket.io viewer and waits until the connection is up,
// fails, or the timeout expires.
func Dial(ctx context.Context, opts DialOptions) (*SocketClient, error) {
	logger := log.WithField("url", opts.URL)

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse viewer URL: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultDialTimeout
	}

	sOpts := socket.DefaultOptions()
	sOpts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("skipping TLS certificate verification")
		sOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sOpts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 2)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sOpts)
	io := manager.Socket(opts.Namespace, sOpts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.WithField("sid", io.Id()).Info("viewer connected")
		connectChan <- nil
	})

	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("connect to viewer: %w", err)
		}
		return &SocketClient{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, ctx.Err()
	case <-time.After(opts.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for viewer", opts.Timeout)
	}
}

// UpdateElementConfig emits an update event. Delivery is not acknowledged.
func (c *SocketClient) UpdateElementConfig(ctx context.Context, element string, config []float64) error {
	if !c.io.Connected() {
		return ErrDisconnected
	}
	c.io.Emit(UpdateEvent, element, config)
	return nil
}

func (c *SocketClient) Close() error {
	log.WithField("sid", c.io.Id()).Info("closing viewer connection")
	c.io.Disconnect()
	return nil
}
