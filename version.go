package stklos

import (
	"strconv"
	"strings"
)

// Version is the STklos version this runtime model reports. The editor
// side refuses to talk to anything older than its configured minimum.
const Version = "2.10"

// VersionAtLeast compares two dotted version strings numerically,
// component by component. Missing components count as zero.
func VersionAtLeast(v, min string) bool {
	a := strings.Split(v, ".")
	b := strings.Split(min, ".")
	for i := 0; i < len(a) || i < len(b); i++ {
		x, y := 0, 0
		if i < len(a) {
			x, _ = strconv.Atoi(a[i])
		}
		if i < len(b) {
			y, _ = strconv.Atoi(b[i])
		}
		if x != y {
			return x > y
		}
	}
	return true
}
