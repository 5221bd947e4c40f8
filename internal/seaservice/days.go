// Package seaservice derives qualifying sea-service day counts from
// deployment sign-on and sign-off dates.
package seaservice

import "time"

const dateLayout = "2006-01-02"

// DaysOnboard returns the inclusive day count between sign-on and
// sign-off. A previously stored non-zero count is authoritative and is
// returned unchanged, so an admin-corrected figure survives recomputation.
// An open contract (missing sign-off) or an unparseable date counts as 0.
func DaysOnboard(signOnDate, signOffDate string, storedDays int) int {
	if storedDays > 0 {
		return storedDays
	}
	if signOnDate == "" || signOffDate == "" {
		return 0
	}

	on, err := time.Parse(dateLayout, signOnDate)
	if err != nil {
		return 0
	}
	off, err := time.Parse(dateLayout, signOffDate)
	if err != nil {
		return 0
	}

	days := int(off.Sub(on).Hours()/24) + 1
	if days < 0 {
		// Sign-off before sign-on is a data-entry error the UI should
		// have rejected; never report a negative count.
		return 0
	}
	return days
}
