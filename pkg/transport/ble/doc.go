// Package ble implements transport.Scanner and transport.Central on top of
// tinygo.org/x/bluetooth.
//
// The underlying stack is blocking and callback driven. Adapter runs each
// call on its own goroutine so a cancelled context returns promptly; the
// abandoned call finishes in the background and its connection, if any,
// is disconnected.
//
// Connections are made by address. Some platforms identify peripherals by
// an opaque handle instead of a MAC, so Connect only accepts addresses
// seen by an earlier Scan on the same Adapter.
package ble
