package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandoff_BuildsBothSchemes(t *testing.T) {
	handoff, err := NewHandoff("212600000000", "Order ID: X1\nTOTAL: 199.00 MAD")

	require.NoError(t, err)
	assert.Contains(t, handoff.URL, "https://wa.me/212600000000?text=")
	assert.Contains(t, handoff.FallbackURL, "whatsapp://send?phone=212600000000&text=")
	// Percent-encoded payload, identical on both schemes.
	assert.Contains(t, handoff.URL, "Order+ID%3A+X1%0ATOTAL%3A+199.00+MAD")
	assert.Contains(t, handoff.FallbackURL, "Order+ID%3A+X1%0ATOTAL%3A+199.00+MAD")
	assert.Equal(t, "Order ID: X1\nTOTAL: 199.00 MAD", handoff.Message)
}

func TestNewHandoff_MissingDestination(t *testing.T) {
	_, err := NewHandoff("  ", "hello")

	var handoffErr *HandoffFailure
	require.ErrorAs(t, err, &handoffErr)
}
