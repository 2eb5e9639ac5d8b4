// Package device describes the supported Bluetooth LE clock families and
// recognizes them from advertisement data.
//
// # Families
//
// A Family is a static descriptor: the GATT service and characteristic
// that carry the time, how the characteristic is written and read, the
// recognition rule and the byte layout (wire.Codec). The set of families
// is fixed at build time and listed in Families.
//
// # Recognition
//
// Each family has exactly one Rule. Rules only inspect the advertisement:
//   - ServiceUUIDMatch: the advertised service UUID list contains a UUID
//   - LocalNameMatch: the local name equals a string
//   - LocalNamePrefix: the local name starts with a string
//   - ServiceDataPresence: the service data contains a key
//
// A missing local name, UUID list or service data never matches.
//
// Several families can match the same advertisement. For example a
// PineTime running InfiniTime advertises the Current Time service and
// its own name. Matches are ordered by rule tier (exact name, name
// prefix, service data, service UUID) and then by registry order, so the
// most specific family wins.
package device
