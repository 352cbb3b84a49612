// Package format renders timer values for display.
package format

import (
	"fmt"
	"strconv"
)

// Clock renders seconds as MM:SS. Minutes are zero-padded to two digits but
// never truncated, so 6000 seconds renders as 100:00.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Minutes renders a phase length in seconds as the minutes shown in an
// editable field, without trailing zeros.
func Minutes(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return strconv.FormatFloat(float64(seconds)/60, 'f', -1, 64)
}
