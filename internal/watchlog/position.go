package watchlog

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

// Positions are entered as a digit body plus a hemisphere letter:
// latitude DDMM.m (e.g. "0115.0") with N/S, longitude DDDMM.m
// (e.g. "10345.0") with E/W. The canonical rendering persisted to the
// store is DD°MM.m'H, zero-padded to two degree digits for latitude and
// three for longitude.

const degreeSign = "°"

func invalidPosition(message string) *apperrors.Error {
	return apperrors.Clone(apperrors.ErrValidation, message)
}

// EncodeLatitude validates a DDMM.m latitude body and hemisphere and
// returns the canonical display string, e.g. ("0115.0","N") -> "01°15.0'N".
func EncodeLatitude(body, hemisphere string) (string, error) {
	raw := strings.TrimSpace(body)
	if raw == "" {
		return "", invalidPosition("latitude cannot be empty")
	}
	if len(raw) < 3 {
		return "", invalidPosition("latitude should be in DDMM.m format (e.g. 0115.0)")
	}
	hem := strings.ToUpper(strings.TrimSpace(hemisphere))
	if hem != "N" && hem != "S" {
		return "", invalidPosition("latitude hemisphere must be N or S")
	}

	deg, minutes, err := splitBody(raw, 2)
	if err != nil {
		return "", invalidPosition("latitude must contain only numbers and decimal point")
	}
	if deg < 0 || deg > 90 {
		return "", invalidPosition("latitude degrees must be between 0 and 90")
	}
	if minutes < 0 || minutes >= 60 {
		return "", invalidPosition("latitude minutes must be between 0.0 and 59.999")
	}

	return fmt.Sprintf("%02d%s%.1f'%s", deg, degreeSign, minutes, hem), nil
}

// EncodeLongitude validates a DDDMM.m longitude body and hemisphere and
// returns the canonical display string, e.g. ("10345.0","E") -> "103°45.0'E".
func EncodeLongitude(body, hemisphere string) (string, error) {
	raw := strings.TrimSpace(body)
	if raw == "" {
		return "", invalidPosition("longitude cannot be empty")
	}
	if len(raw) < 4 {
		return "", invalidPosition("longitude should be in DDDMM.m format (e.g. 10345.0)")
	}
	hem := strings.ToUpper(strings.TrimSpace(hemisphere))
	if hem != "E" && hem != "W" {
		return "", invalidPosition("longitude hemisphere must be E or W")
	}

	deg, minutes, err := splitBody(raw, 3)
	if err != nil {
		return "", invalidPosition("longitude must contain only numbers and decimal point")
	}
	if deg < 0 || deg > 180 {
		return "", invalidPosition("longitude degrees must be between 0 and 180")
	}
	if minutes < 0 || minutes >= 60 {
		return "", invalidPosition("longitude minutes must be between 0.0 and 59.999")
	}

	return fmt.Sprintf("%03d%s%.1f'%s", deg, degreeSign, minutes, hem), nil
}

// DecodeLatitude recovers the digit body and hemisphere from a canonical
// latitude string. The hemisphere defaults to N when the letter is missing.
func DecodeLatitude(display string) (body, hemisphere string, err error) {
	return decodePosition(display, "NS", "N")
}

// DecodeLongitude recovers the digit body and hemisphere from a canonical
// longitude string. The hemisphere defaults to E when the letter is missing.
func DecodeLongitude(display string) (body, hemisphere string, err error) {
	return decodePosition(display, "EW", "E")
}

func decodePosition(display, letters, defaultHem string) (string, string, error) {
	trimmed := strings.TrimSpace(display)
	if trimmed == "" {
		return "", "", invalidPosition("position string is empty")
	}

	hem := defaultHem
	for _, r := range strings.ToUpper(trimmed) {
		if strings.ContainsRune(letters, r) {
			hem = string(r)
			break
		}
	}

	var digits strings.Builder
	for _, r := range trimmed {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", "", invalidPosition("position string contains no digits")
	}
	return digits.String(), hem, nil
}

// splitBody separates degree digits from decimal minutes.
func splitBody(raw string, degDigits int) (int, float64, error) {
	deg, err := strconv.Atoi(raw[:degDigits])
	if err != nil {
		return 0, 0, err
	}
	minutes, err := strconv.ParseFloat(raw[degDigits:], 64)
	if err != nil {
		return 0, 0, err
	}
	return deg, minutes, nil
}
