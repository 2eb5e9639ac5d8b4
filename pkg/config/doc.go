// Package config loads bluetooth-clocks settings from a YAML file.
//
// Load starts from Defaults, merges the file (a missing file is not an
// error), applies BLUETOOTH_CLOCKS_* environment variables and validates
// the result. Command-line flags are applied by the caller afterwards.
//
// Example file:
//
//	scan_duration: 5s
//	connect_timeout: 10s
//	notify_timeout: 5s
//	connect_attempts: 3
//	log_level: info
//	protocol_log: /var/log/bluetooth-clocks.clog
//	adapter: hci0
//	power_on: true
//	sync:
//	  schedule: "0 3 * * *"
//	  scan_duration: 10s
//	  ampm: false
//	  families: ["Xiaomi LYWSD02", "ThermoPro TP358"]
package config
