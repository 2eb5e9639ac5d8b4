package ble

import (
	"fmt"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/device"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/discovery"
)

// payload is the part of bluetooth.AdvertisementPayload used to build an
// advertisement.
type payload interface {
	LocalName() string
	HasServiceUUID(bluetooth.UUID) bool
	Bytes() []byte
	ManufacturerData() []bluetooth.ManufacturerDataElement
	ServiceData() []bluetooth.ServiceDataElement
}

// watchedService pairs a service UUID with its stack representation.
type watchedService struct {
	id  uuid.UUID
	bid bluetooth.UUID
}

func newWatched(ids []uuid.UUID) ([]watchedService, error) {
	watched := make([]watchedService, 0, len(ids))
	for _, id := range ids {
		bid, err := toStackUUID(id)
		if err != nil {
			return nil, err
		}
		watched = append(watched, watchedService{id: id, bid: bid})
	}
	return watched, nil
}

// toAdvertisement converts a scan result. Raw advertising bytes are parsed
// when the platform exposes them; otherwise the service list is rebuilt by
// checking for each UUID that recognition rules use.
func toAdvertisement(address string, rssi int16, p payload, watched []watchedService) device.Advertisement {
	adv := device.Advertisement{
		Address:   address,
		LocalName: p.LocalName(),
		RSSI:      rssi,
	}

	if raw := p.Bytes(); raw != nil {
		if err := discovery.ParseAdvertisingData(&adv, raw); err == nil {
			return adv
		}
		adv = device.Advertisement{Address: address, LocalName: p.LocalName(), RSSI: rssi}
	}

	for _, w := range watched {
		if p.HasServiceUUID(w.bid) {
			adv.ServiceUUIDs = append(adv.ServiceUUIDs, w.id)
		}
	}
	for _, sd := range p.ServiceData() {
		id, err := fromStackUUID(sd.UUID)
		if err != nil {
			continue
		}
		if adv.ServiceData == nil {
			adv.ServiceData = make(map[uuid.UUID][]byte)
		}
		adv.ServiceData[id] = append([]byte{}, sd.Data...)
	}
	for _, md := range p.ManufacturerData() {
		if adv.ManufacturerData == nil {
			adv.ManufacturerData = make(map[uint16][]byte)
		}
		adv.ManufacturerData[md.CompanyID] = append([]byte{}, md.Data...)
	}
	return adv
}

func toStackUUID(id uuid.UUID) (bluetooth.UUID, error) {
	bid, err := bluetooth.ParseUUID(id.String())
	if err != nil {
		return bluetooth.UUID{}, fmt.Errorf("convert uuid %s: %w", id, err)
	}
	return bid, nil
}

func fromStackUUID(bid bluetooth.UUID) (uuid.UUID, error) {
	return uuid.Parse(bid.String())
}
