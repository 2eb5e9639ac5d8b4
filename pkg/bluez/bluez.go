package bluez

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	busName       = "org.bluez"
	adapterIface  = "org.bluez.Adapter1"
	propsIface    = "org.freedesktop.DBus.Properties"
	dbusName      = "org.freedesktop.DBus"
	dbusPath      = "/org/freedesktop/DBus"
	unknownObject = "org.freedesktop.DBus.Error.UnknownObject"

	// DefaultAdapter is the first local adapter.
	DefaultAdapter = "hci0"
)

// BlueZ errors.
var (
	ErrNotRunning = errors.New("org.bluez not found on system bus, is bluetooth.service running?")
	ErrNoAdapter  = errors.New("bluetooth adapter not found")
	ErrAdapterOff = errors.New("bluetooth adapter is powered off")
)

// Caller issues D-Bus method calls.
type Caller interface {
	Call(dest string, path dbus.ObjectPath, method string, args ...any) *dbus.Call
	Close() error
}

// systemBus adapts a bus connection to Caller.
type systemBus struct {
	conn *dbus.Conn
}

func (b systemBus) Call(dest string, path dbus.ObjectPath, method string, args ...any) *dbus.Call {
	return b.conn.Object(dest, path).Call(method, 0, args...)
}

func (b systemBus) Close() error {
	return b.conn.Close()
}

// AdapterInfo describes a local adapter.
type AdapterInfo struct {
	Name    string
	Address string
	Powered bool
}

// Client inspects one BlueZ adapter.
type Client struct {
	bus     Caller
	adapter string
	logger  *slog.Logger
}

// Connect opens a private system bus connection and returns a Client
// for adapter. Closing the Client leaves the shared bus connection used
// by the BLE stack open. An empty adapter selects DefaultAdapter.
func Connect(adapter string, logger *slog.Logger) (*Client, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect to system bus: %w", err)
	}
	return NewClient(systemBus{conn: conn}, adapter, logger), nil
}

// NewClient returns a Client using bus.
func NewClient(bus Caller, adapter string, logger *slog.Logger) *Client {
	if adapter == "" {
		adapter = DefaultAdapter
	}
	return &Client{bus: bus, adapter: adapter, logger: logger}
}

// Close releases the bus connection.
func (c *Client) Close() error {
	return c.bus.Close()
}

// AdapterPath returns the object path of the adapter.
func (c *Client) AdapterPath() dbus.ObjectPath {
	return dbus.ObjectPath("/org/bluez/" + c.adapter)
}

// Available returns ErrNotRunning when BlueZ does not own its bus name.
func (c *Client) Available() error {
	var names []string
	if err := c.bus.Call(dbusName, dbusPath, dbusName+".ListNames").Store(&names); err != nil {
		return fmt.Errorf("list bus names: %w", err)
	}
	for _, n := range names {
		if n == busName {
			return nil
		}
	}
	return ErrNotRunning
}

// Powered reports whether the adapter is powered on.
func (c *Client) Powered() (bool, error) {
	v, err := c.getProp("Powered")
	if err != nil {
		return false, err
	}
	on, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("property Powered is %T, not bool", v.Value())
	}
	return on, nil
}

// SetPowered switches the adapter on or off.
func (c *Client) SetPowered(on bool) error {
	err := c.bus.Call(busName, c.AdapterPath(), propsIface+".Set",
		adapterIface, "Powered", dbus.MakeVariant(on)).Err
	if err != nil {
		return c.wrap("set Powered", err)
	}
	c.debugLog("adapter power changed", "adapter", c.adapter, "powered", on)
	return nil
}

// Info returns the adapter name, address and power state.
func (c *Client) Info() (AdapterInfo, error) {
	info := AdapterInfo{Name: c.adapter}
	v, err := c.getProp("Address")
	if err != nil {
		return info, err
	}
	info.Address, _ = v.Value().(string)
	if info.Powered, err = c.Powered(); err != nil {
		return info, err
	}
	return info, nil
}

// Preflight checks that BlueZ is running and the adapter powered. With
// powerOn a powered-off adapter is switched on; otherwise it yields
// ErrAdapterOff.
func (c *Client) Preflight(powerOn bool) error {
	if err := c.Available(); err != nil {
		return err
	}
	on, err := c.Powered()
	if err != nil {
		return err
	}
	if on {
		return nil
	}
	if !powerOn {
		return fmt.Errorf("%w: %s", ErrAdapterOff, c.adapter)
	}
	return c.SetPowered(true)
}

func (c *Client) getProp(prop string) (dbus.Variant, error) {
	var v dbus.Variant
	err := c.bus.Call(busName, c.AdapterPath(), propsIface+".Get", adapterIface, prop).Store(&v)
	if err != nil {
		return v, c.wrap("get "+prop, err)
	}
	return v, nil
}

// wrap maps a missing adapter object to ErrNoAdapter.
func (c *Client) wrap(op string, err error) error {
	var dbusErr dbus.Error
	if errors.As(err, &dbusErr) && dbusErr.Name == unknownObject {
		return fmt.Errorf("%w: %s", ErrNoAdapter, c.adapter)
	}
	var dbusErrPtr *dbus.Error
	if errors.As(err, &dbusErrPtr) && dbusErrPtr.Name == unknownObject {
		return fmt.Errorf("%w: %s", ErrNoAdapter, c.adapter)
	}
	return fmt.Errorf("%s on %s: %w", op, c.adapter, err)
}

// debugLog logs a debug message if logging is enabled.
func (c *Client) debugLog(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
