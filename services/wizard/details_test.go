package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDetails_Variants(t *testing.T) {
	d, err := DecodeDetails(ServiceTShirtPrinting, map[string]string{"printingMethod": "dtf", "quantity": " 7 "})
	require.NoError(t, err)
	ts, ok := d.(TShirtDetails)
	require.True(t, ok)
	qty, ok := ts.Qty()
	assert.True(t, ok)
	assert.Equal(t, 7, qty)

	d, err = DecodeDetails(ServiceVideoEditing, map[string]string{"videoLength": "45"})
	require.NoError(t, err)
	v := d.(VideoEditingDetails)
	assert.Equal(t, "seconds", v.Unit())
	length, ok := v.Length()
	assert.True(t, ok)
	assert.Equal(t, 45.0, length)

	d, err = DecodeDetails(ServiceWordPress, map[string]string{"existingUrl": "https://x.ma"})
	require.NoError(t, err)
	assert.Equal(t, "https://x.ma", d.(WordPressDetails).ExistingURL)
	assert.Equal(t, ServiceWordPress, d.ServiceID())
}

func TestDecodeDetails_Errors(t *testing.T) {
	_, err := DecodeDetails("", nil)
	assert.ErrorIs(t, err, ErrNoService)

	_, err = DecodeDetails("catering", nil)
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestTShirtDetails_BadQuantity(t *testing.T) {
	for _, q := range []string{"", "zero", "0", "-3"} {
		_, ok := TShirtDetails{Quantity: q}.Qty()
		assert.False(t, ok, q)
	}
}
