// Package dates validates calendar dates and converts between the stored
// ISO form (YYYY-MM-DD) and the DD-MM-YYYY form shown in entry fields.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

const isoLayout = "2006-01-02"

// ValidateISO checks that iso is a real calendar date between 1900 and
// 2100. The round-trip through time.Parse rejects overflowed days such
// as 31-02.
func ValidateISO(iso string) error {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("date %q is not a valid YYYY-MM-DD date", iso))
	}
	if t.Format(isoLayout) != iso {
		return apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("date %q does not round-trip to a calendar date", iso))
	}
	if y := t.Year(); y < 1900 || y > 2100 {
		return apperrors.Clone(apperrors.ErrValidation, "date year must be between 1900 and 2100")
	}
	return nil
}

// FormatDisplay converts an ISO date into DD-MM-YYYY for display, passing
// unparseable input through unchanged.
func FormatDisplay(iso string) string {
	if iso == "" {
		return ""
	}
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// ParseDisplay converts a DD-MM-YYYY display date back into ISO form,
// applying the same calendar-sanity checks as ValidateISO.
func ParseDisplay(display string) (string, error) {
	parts := strings.Split(strings.TrimSpace(display), "-")
	if len(parts) != 3 {
		return "", apperrors.Clone(apperrors.ErrValidation, "date must be in DD-MM-YYYY format")
	}
	dd, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	yyyy, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return "", apperrors.Clone(apperrors.ErrValidation, "date must contain only digits and dashes")
	}

	iso := fmt.Sprintf("%04d-%02d-%02d", yyyy, mm, dd)
	if err := ValidateISO(iso); err != nil {
		return "", err
	}
	return iso, nil
}
