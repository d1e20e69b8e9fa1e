package widget

import (
	"fmt"
	"time"
)

// Display is a formatted date and time pair
type Display struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// LocalTime formats now for display. With an offset (seconds east of
// UTC) the instant is shifted by plain fixed-offset arithmetic and every
// field is zero-padded. Without one the clock of the viewer's zone is
// shown and the hour, minute and second are not padded. A nil viewer
// means time.Local.
func LocalTime(now time.Time, offset *int, viewer *time.Location) Display {
	if offset != nil {
		local := now.UTC().Add(time.Duration(*offset) * time.Second)
		return Display{
			Date: local.Format("02-01-2006"),
			Time: local.Format("15 hr 04 min 05 sec"),
		}
	}

	if viewer == nil {
		viewer = time.Local
	}
	local := now.In(viewer)
	return Display{
		Date: local.Format("02-01-2006"),
		Time: fmt.Sprintf("%d hr %d min %d sec", local.Hour(), local.Minute(), local.Second()),
	}
}
