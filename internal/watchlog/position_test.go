package watchlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/noah-isme/cadet-trb/pkg/errors"
)

func TestEncodeLatitude(t *testing.T) {
	got, err := EncodeLatitude("0115.0", "N")
	require.NoError(t, err)
	assert.Equal(t, "01°15.0'N", got)

	got, err = EncodeLatitude("4530.5", "s")
	require.NoError(t, err)
	assert.Equal(t, "45°30.5'S", got)
}

func TestEncodeLatitudeBounds(t *testing.T) {
	_, err := EncodeLatitude("9500.0", "N")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Contains(t, err.Error(), "between 0 and 90")

	_, err = EncodeLatitude("0160.0", "N")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minutes")

	_, err = EncodeLatitude("", "N")
	require.Error(t, err)

	_, err = EncodeLatitude("01", "N")
	require.Error(t, err)

	_, err = EncodeLatitude("0115.0", "E")
	require.Error(t, err)
}

func TestEncodeLongitude(t *testing.T) {
	got, err := EncodeLongitude("10345.0", "E")
	require.NoError(t, err)
	assert.Equal(t, "103°45.0'E", got)

	got, err = EncodeLongitude("00730.2", "W")
	require.NoError(t, err)
	assert.Equal(t, "007°30.2'W", got)
}

func TestEncodeLongitudeBounds(t *testing.T) {
	_, err := EncodeLongitude("18130.0", "E")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and 180")

	_, err = EncodeLongitude("10360.0", "E")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minutes")

	_, err = EncodeLongitude("103", "E")
	require.Error(t, err)
}

func TestPositionRoundTrip(t *testing.T) {
	encoded, err := EncodeLatitude("0115.0", "N")
	require.NoError(t, err)

	body, hem, err := DecodeLatitude(encoded)
	require.NoError(t, err)
	assert.Equal(t, "0115.0", body)
	assert.Equal(t, "N", hem)

	// Re-encoding the decoded body reproduces the canonical string.
	again, err := EncodeLatitude(body, hem)
	require.NoError(t, err)
	assert.Equal(t, encoded, again)

	encodedLon, err := EncodeLongitude("10345.0", "E")
	require.NoError(t, err)

	body, hem, err = DecodeLongitude(encodedLon)
	require.NoError(t, err)
	assert.Equal(t, "10345.0", body)
	assert.Equal(t, "E", hem)

	again, err = EncodeLongitude(body, hem)
	require.NoError(t, err)
	assert.Equal(t, encodedLon, again)
}

func TestDecodeDefaultsHemisphere(t *testing.T) {
	body, hem, err := DecodeLatitude("01°15.0'")
	require.NoError(t, err)
	assert.Equal(t, "0115.0", body)
	assert.Equal(t, "N", hem)

	_, _, err = DecodeLatitude("   ")
	require.Error(t, err)
}
