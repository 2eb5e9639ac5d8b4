package clock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/log"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/transport"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/wire"
)

// session runs one operation against one clock.
type session struct {
	clock  *Clock
	family *device.Family
	state  State

	central          transport.Central
	connectTimeout   time.Duration
	notifyTimeout    time.Duration
	operationTimeout time.Duration

	logger *slog.Logger
	plog   *log.Session
}

func (s *Service) newSession(c *Clock) *session {
	return &session{
		clock:            c,
		family:           c.Family,
		state:            StateIdle,
		central:          s.central,
		connectTimeout:   s.connectTimeout,
		notifyTimeout:    s.notifyTimeout,
		operationTimeout: s.operationTimeout,
		logger:           s.logger,
		plog:             log.NewSession(s.protocolLogger, c.Address, c.Family.Type),
	}
}

// transition moves to state and reports the change.
func (s *session) transition(to State, reason string) {
	from := s.state
	if from == to {
		return
	}
	s.state = to
	s.plog.State(from.String(), to.String(), reason)
	s.debugLog("clock state change",
		"address", s.clock.Address, "from", from.String(), "to", to.String(), "reason", reason)
}

// fail records err and ends the session.
func (s *session) fail(layer log.Layer, op string, err error) error {
	s.plog.Error(layer, op, err)
	s.transition(StateDisconnected, op+" failed")
	return err
}

// connect opens a connection within the connect timeout.
func (s *session) connect(ctx context.Context) (transport.Connection, error) {
	s.transition(StateConnecting, "")

	ctx, cancel := context.WithTimeout(ctx, s.connectTimeout)
	defer cancel()

	conn, err := s.central.Connect(ctx, s.clock.Address)
	if err != nil {
		return nil, s.fail(log.LayerSession, "connect", err)
	}
	s.transition(StateConnected, "")
	return conn, nil
}

// close closes conn and ends the session. Close errors are logged only.
func (s *session) close(conn transport.Connection) {
	if err := conn.Close(); err != nil {
		s.plog.Error(log.LayerTransport, "close", err)
		s.debugLog("close failed", "address", s.clock.Address, "error", err)
	}
	s.transition(StateDisconnected, "")
}

// read fetches the raw time value according to the family read mode.
func (s *session) read(ctx context.Context, conn transport.Connection) ([]byte, error) {
	s.transition(StateReading, s.family.ReadMode.String())

	switch s.family.ReadMode {
	case device.ReadDirect:
		opCtx, cancel := context.WithTimeout(ctx, s.operationTimeout)
		data, err := conn.Read(opCtx, s.family.ServiceUUID, s.family.CharacteristicUUID)
		cancel()
		if err != nil {
			return nil, s.fail(log.LayerTransport, "read", err)
		}
		s.plog.GATT(log.DirectionIn, s.gattEvent(log.GATTRead, data, false))
		return data, nil

	case device.ReadNotify:
		return s.readNotify(ctx, conn)

	default:
		return nil, s.fail(log.LayerSession, "read",
			fmt.Errorf("%w: %s", ErrNotReadable, s.family.Type))
	}
}

// readNotify subscribes, writes the read command and waits for the first
// notification. Later notifications, and any that arrive after readNotify
// returns, are dropped.
func (s *session) readNotify(ctx context.Context, conn transport.Connection) ([]byte, error) {
	var (
		mu       sync.Mutex
		finished bool
	)
	defer func() {
		mu.Lock()
		finished = true
		mu.Unlock()
	}()

	notified := make(chan []byte, 1)
	onNotify := func(b []byte) {
		mu.Lock()
		defer mu.Unlock()
		if finished {
			return
		}
		data := append([]byte(nil), b...)
		select {
		case notified <- data:
			s.plog.GATT(log.DirectionIn, s.gattEvent(log.GATTNotify, data, false))
		default:
		}
	}

	subCtx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	err := conn.Subscribe(subCtx, s.family.ServiceUUID, s.family.CharacteristicUUID, onNotify)
	cancel()
	if err != nil {
		return nil, s.fail(log.LayerTransport, "subscribe", err)
	}
	s.plog.GATT(log.DirectionOut, s.gattEvent(log.GATTSubscribe, nil, false))

	if err := s.write(ctx, conn, s.family.ReadCommand); err != nil {
		return nil, err
	}

	timer := time.NewTimer(s.notifyTimeout)
	defer timer.Stop()

	select {
	case data := <-notified:
		return data, nil
	case <-timer.C:
		return nil, s.fail(log.LayerSession, "notify",
			fmt.Errorf("%w after %s", ErrNotifyTimeout, s.notifyTimeout))
	case <-ctx.Done():
		return nil, s.fail(log.LayerSession, "notify", ctx.Err())
	}
}

// write sends data with the family's acknowledgement mode.
func (s *session) write(ctx context.Context, conn transport.Connection, data []byte) error {
	withResponse := s.family.WriteWithResponse

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	if err := conn.Write(ctx, s.family.ServiceUUID, s.family.CharacteristicUUID, data, withResponse); err != nil {
		return s.fail(log.LayerTransport, "write", err)
	}
	s.plog.GATT(log.DirectionOut, s.gattEvent(log.GATTWrite, data, withResponse))
	return nil
}

// decode converts a read value into a timestamp in loc.
func (s *session) decode(data []byte, loc *time.Location) (time.Time, error) {
	t, err := s.family.Codec.Decode(data, loc)
	if err != nil {
		return time.Time{}, s.fail(log.LayerCodec, "decode", err)
	}
	t = t.In(loc)
	s.plog.Codec(log.DirectionIn, log.CodecEvent{Codec: s.family.Codec.Name, Time: t, Data: data})
	return t, nil
}

// encode converts t into the value written to the clock.
func (s *session) encode(t time.Time, mode wire.DisplayMode) []byte {
	data := s.family.Codec.Encode(t, mode)
	s.plog.Codec(log.DirectionOut, log.CodecEvent{
		Codec:       s.family.Codec.Name,
		Time:        t,
		Data:        data,
		DisplayMode: mode.String(),
	})
	return data
}

func (s *session) gattEvent(op log.GATTOp, data []byte, withResponse bool) log.GATTEvent {
	return log.GATTEvent{
		Op:                 op,
		ServiceUUID:        s.family.ServiceUUID,
		CharacteristicUUID: s.family.CharacteristicUUID,
		Data:               data,
		WithResponse:       withResponse,
	}
}

// debugLog logs a debug message if logging is enabled.
func (s *session) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
