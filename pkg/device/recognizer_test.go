package device

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognize(t *testing.T) {
	tests := []struct {
		name string
		adv  Advertisement
		want string
	}{
		{"xiaomi lywsd02", advLYWSD02, TypeXiaomiLYWSD02},
		{"pvvx firmware", advPVVX, TypePVVX},
		{"qingping cgc1", advCGC1, TypeQingping},
		{"thermopro tp358", advTP358, TypeThermoProTP358},
		{"thermopro tp393", advTP393, TypeThermoProTP393},
		{"infinitime", advInfiniTime, TypeInfiniTime},
		{"generic current time watch", advCTSWatch, TypeCurrentTimeService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Recognize(tt.adv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Type)
		})
	}
}

func TestRecognizeUnsupported(t *testing.T) {
	tests := []struct {
		name string
		adv  Advertisement
	}{
		{"phone", advPhone},
		{"empty", Advertisement{}},
		{"unknown name", Advertisement{Address: "AA:BB:CC:DD:EE:FF", LocalName: "Fitbit"}},
		{"exact name with suffix", Advertisement{LocalName: "LYWSD02 Pro"}},
		{"prefix too short", Advertisement{LocalName: "TP35"}},
		{"case differs", Advertisement{LocalName: "infinitime"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Recognize(tt.adv)
			if !errors.Is(err, ErrUnsupportedDevice) {
				t.Errorf("err = %v, want ErrUnsupportedDevice", err)
			}
			if f != nil {
				t.Errorf("family = %s, want nil", f.Type)
			}
		})
	}
}

func TestRecognizeServiceUUIDIsNotServiceData(t *testing.T) {
	// 0x181A in the service UUID list must not trigger the service data rule.
	adv := Advertisement{ServiceUUIDs: []uuid.UUID{PVVXServiceDataUUID}}

	_, err := Recognize(adv)
	assert.ErrorIs(t, err, ErrUnsupportedDevice)
}

func TestRecognizeEmptyServiceDataPayload(t *testing.T) {
	adv := Advertisement{ServiceData: map[uuid.UUID][]byte{PVVXServiceDataUUID: {}}}

	f, err := Recognize(adv)
	require.NoError(t, err)
	assert.Equal(t, TypePVVX, f.Type)
}

func TestRecognizeNameBeatsServiceUUID(t *testing.T) {
	// Listing order puts the generic family first; the exact name still wins.
	reg := Default()
	matched := reg.Match(advInfiniTime)
	require.Len(t, matched, 2)
	assert.Equal(t, TypeInfiniTime, matched[0].Type)
	assert.Equal(t, TypeCurrentTimeService, matched[1].Type)
}

func TestRecognizeIndependentOfListingOrder(t *testing.T) {
	reversed := make([]*Family, len(Families))
	for i, f := range Families {
		reversed[len(Families)-1-i] = f
	}
	r := &Recognizer{Registry: MustNewRegistry(reversed)}

	for _, adv := range []Advertisement{advInfiniTime, advLYWSD02, advPVVX, advCTSWatch} {
		want, err := Recognize(adv)
		require.NoError(t, err)
		got, err := r.Recognize(adv)
		require.NoError(t, err)
		assert.Equal(t, want.Type, got.Type, "advertisement %s", adv.Address)
	}
}

func TestRecognizeCrossTier(t *testing.T) {
	// A PVVX thermometer that also advertises the Current Time service.
	adv := advPVVX
	adv.ServiceUUIDs = []uuid.UUID{CurrentTimeServiceUUID}

	f, err := Recognize(adv)
	require.NoError(t, err)
	assert.Equal(t, TypePVVX, f.Type)
}

func TestRecognizeStrict(t *testing.T) {
	same := []*Family{
		{Type: "A", Rule: LocalNamePrefix("Clock"), Codec: Families[4].Codec},
		{Type: "B", Rule: LocalNamePrefix("Clo"), Codec: Families[4].Codec},
	}
	reg := MustNewRegistry(same)
	adv := Advertisement{LocalName: "Clock 1"}

	lenient := &Recognizer{Registry: reg}
	f, err := lenient.Recognize(adv)
	require.NoError(t, err)
	assert.Equal(t, "A", f.Type)

	strict := &Recognizer{Registry: reg, Strict: true}
	_, err = strict.Recognize(adv)
	assert.ErrorIs(t, err, ErrAmbiguousDevice)
}

func TestRecognizeStrictAcceptsDifferentTiers(t *testing.T) {
	strict := &Recognizer{Strict: true}

	f, err := strict.Recognize(advInfiniTime)
	require.NoError(t, err)
	assert.Equal(t, TypeInfiniTime, f.Type)
}

func TestRecognizeIsPure(t *testing.T) {
	adv := advLYWSD02
	before := len(adv.ServiceData)

	for i := 0; i < 3; i++ {
		f, err := Recognize(adv)
		require.NoError(t, err)
		assert.Equal(t, TypeXiaomiLYWSD02, f.Type)
	}
	assert.Len(t, adv.ServiceData, before)
}
