package chronoview

import (
	"fmt"
	"time"
)

// LabelFormat is how timestamps are shown next to the timeline.
var LabelFormat = "2006.01.02 15:04:05"

// TimelineItem represents one discovered image. It is immutable once created.
type TimelineItem struct {
	Path        string
	DisplayName string
	Timestamp   time.Time
}

// Label returns "name [timestamp]", as shown for the selected marker.
func (i *TimelineItem) Label() string {
	if i == nil {
		return ""
	}
	return fmt.Sprintf("%s [%s]", i.DisplayName, i.Timestamp.Format(LabelFormat))
}
