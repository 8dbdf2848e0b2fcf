// Package ids generates sortable identifiers for analytics events.
package ids

import "github.com/segmentio/ksuid"

// New returns a K-sortable unique ID. Event listings order by timestamp, so
// IDs that sort roughly by creation time keep index scans cheap.
func New() string {
	return ksuid.New().String()
}
