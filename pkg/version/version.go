// Package version reports the bluetooth-clocks release version.
package version

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
)

// Current is the release version of this module.
const Current = "0.4.0"

// Version is a parsed "major.minor.patch" release version.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor.patch" version string. A leading "v" is
// accepted.
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimPrefix(s, "v"), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var nums [3]uint16
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil || p == "" {
			return Version{}, fmt.Errorf("invalid version %q: bad component %q", s, p)
		}
		nums[i] = uint16(n)
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 when v is older than, equal to or newer
// than other.
func (v Version) Compare(other Version) int {
	a := [3]uint16{v.Major, v.Minor, v.Patch}
	b := [3]uint16{other.Major, other.Minor, other.Patch}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// String returns the line printed by -version, e.g.
// "bluetooth-clocks 0.4.0 (go1.25.5)".
func String(program string) string {
	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	return fmt.Sprintf("%s %s (%s)", program, Current, goVersion)
}
