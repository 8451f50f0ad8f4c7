// Package progress tracks which of a project's tasks were completed on the
// current calendar day.
//
// "Today" is always evaluated at a fixed UTC+7 offset, whatever the host
// timezone is. Completion is stored per day key, so progress resets the
// moment the reference date changes: the new key simply has no entry yet.
package progress

import "time"

// ReferenceOffset is the fixed offset from UTC at which calendar days roll
// over.
const ReferenceOffset = 7 * time.Hour

// DateKeyLayout is the layout of a DateKey.
const DateKeyLayout = "2006-01-02"

var referenceZone = time.FixedZone("UTC+7", int(ReferenceOffset/time.Second))

// DateKey is a calendar day (YYYY-MM-DD) in the reference zone.
type DateKey string

// ReferenceDate returns the reference-zone calendar day containing now.
func ReferenceDate(now time.Time) DateKey {
	return DateKey(now.In(referenceZone).Format(DateKeyLayout))
}

// Clock returns the current instant.
type Clock func() time.Time
