// Package transport defines the Bluetooth LE operations the clock code
// depends on and the errors they report.
//
// The package does not implement a BLE stack. A platform adapter
// (see transport/ble) implements Scanner and Central on top of a real
// stack; tests use the mocks in transport/mocks.
//
// # Operations
//
//   - Scanner.Scan: stream advertisements for a bounded time
//   - Central.Connect: open a GATT connection to an address
//   - Connection.Read / Write / Subscribe: characteristic access
//   - Connection.Close: disconnect
//
// Every blocking operation takes a context.Context and returns when it
// is cancelled. Characteristics are addressed by service and
// characteristic UUID; the adapter resolves them on the connected device.
//
// # Errors
//
// Adapters wrap their failures with one of the sentinel errors below so
// callers can classify them with errors.Is.
package transport
