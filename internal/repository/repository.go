// Package repository contains the typed persistence layer over the
// on-device store, one repository per entity family.
package repository

import "time"

// isoTimestampLayout keeps millisecond precision so consecutive writes
// within the same second still order correctly.
const isoTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func nowISO() string {
	return time.Now().UTC().Format(isoTimestampLayout)
}
