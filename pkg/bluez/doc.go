// Package bluez talks to the Linux Bluetooth daemon over the system D-Bus.
//
// BlueZ must be running and the adapter powered for scanning to work.
// Client.Preflight verifies both and can power the adapter on.
//
// The BLE transport drives scans and connections itself. On Linux it
// has no acknowledged write, so Client.WriteCharacteristic sends write
// requests to connected devices through the GATT objects BlueZ exports.
package bluez
