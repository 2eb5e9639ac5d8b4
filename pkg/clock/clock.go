package clock

import (
	"fmt"
	"sync/atomic"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
)

// Clock is a handle to one recognized Bluetooth clock. A Clock serves one
// operation at a time; concurrent GetTime calls on the same handle fail
// with ErrReadInProgress.
type Clock struct {
	// Address is the Bluetooth address the clock advertised from.
	Address string

	// Name is the advertised local name, possibly empty.
	Name string

	// RSSI is the signal strength of the advertisement that found it.
	RSSI int16

	// Family is the recognized device family.
	Family *device.Family

	reading atomic.Bool
}

// New creates a handle for a device recognized as family.
func New(adv device.Advertisement, family *device.Family) *Clock {
	return &Clock{
		Address: adv.Address,
		Name:    adv.LocalName,
		RSSI:    adv.RSSI,
		Family:  family,
	}
}

// Readable reports whether GetTime is supported for this clock.
func (c *Clock) Readable() bool {
	return c.Family != nil && c.Family.Readable()
}

// Type returns the family type, or "" when the handle has no family.
func (c *Clock) Type() string {
	if c.Family == nil {
		return ""
	}
	return c.Family.Type
}

// String formats the clock for display.
func (c *Clock) String() string {
	return fmt.Sprintf("%s: address %s, name %s", c.Type(), c.Address, c.Name)
}

// beginRead claims the handle for a read.
func (c *Clock) beginRead() bool {
	return c.reading.CompareAndSwap(false, true)
}

func (c *Clock) endRead() {
	c.reading.Store(false)
}
