package bluez

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
)

const (
	objectManagerIface = "org.freedesktop.DBus.ObjectManager"
	serviceIface       = "org.bluez.GattService1"
	charIface          = "org.bluez.GattCharacteristic1"

	// writeTypeRequest asks BlueZ for an ATT write request, which the
	// peripheral must acknowledge.
	writeTypeRequest = "request"
)

// ErrNoCharacteristic is returned when a connected device does not expose
// the requested characteristic.
var ErrNoCharacteristic = errors.New("characteristic not found")

// managedObjects is the reply of ObjectManager.GetManagedObjects.
type managedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// DevicePath returns the object path of the device with address on the
// adapter.
func (c *Client) DevicePath(address string) dbus.ObjectPath {
	mac := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(address)), ":", "_")
	return dbus.ObjectPath(string(c.AdapterPath()) + "/dev_" + mac)
}

// CharacteristicPath finds the object of characteristic char in service
// on the connected device address. Services must have been resolved.
func (c *Client) CharacteristicPath(address string, service, char uuid.UUID) (dbus.ObjectPath, error) {
	var objects managedObjects
	if err := c.bus.Call(busName, "/", objectManagerIface+".GetManagedObjects").Store(&objects); err != nil {
		return "", c.wrap("get managed objects", err)
	}

	prefix := string(c.DevicePath(address)) + "/"
	paths := make([]string, 0, len(objects))
	for p := range objects {
		if strings.HasPrefix(string(p), prefix) {
			paths = append(paths, string(p))
		}
	}
	sort.Strings(paths)

	for _, p := range paths {
		props, ok := objects[dbus.ObjectPath(p)][charIface]
		if !ok || !hasUUID(props, char) {
			continue
		}
		svcPath, _ := props["Service"].Value().(dbus.ObjectPath)
		if svc, ok := objects[svcPath][serviceIface]; ok && hasUUID(svc, service) {
			return dbus.ObjectPath(p), nil
		}
	}
	return "", fmt.Errorf("%w: %s in service %s on %s", ErrNoCharacteristic, char, service, address)
}

// WriteCharacteristic writes data to char as a write request and returns
// once the device has acknowledged it.
func (c *Client) WriteCharacteristic(address string, service, char uuid.UUID, data []byte) error {
	path, err := c.CharacteristicPath(address, service, char)
	if err != nil {
		return err
	}
	opts := map[string]dbus.Variant{"type": dbus.MakeVariant(writeTypeRequest)}
	if err := c.bus.Call(busName, path, charIface+".WriteValue", data, opts).Err; err != nil {
		return fmt.Errorf("write %s on %s: %w", char, address, err)
	}
	c.debugLog("characteristic written", "address", address, "characteristic", char, "len", len(data))
	return nil
}

// hasUUID reports whether the UUID property in props equals id.
func hasUUID(props map[string]dbus.Variant, id uuid.UUID) bool {
	s, ok := props["UUID"].Value().(string)
	if !ok {
		return false
	}
	parsed, err := uuid.Parse(s)
	return err == nil && parsed == id
}
