package kernel_test

import (
	"testing"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("trims and keeps all parts", func(t *testing.T) {
		a, err := kernel.NewAddress(" 12 MG Road ", "Kochi", "Kerala", "682001", "Near metro")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "12 MG Road", a.Street())
		assert.Equal(t, "682001", a.Pincode())
		assert.Equal(t, "Near metro", a.Landmark())
	})

	t.Run("requires street and city", func(t *testing.T) {
		_, err := kernel.NewAddress("", " ", "Kerala", "", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "street")
		assert.Contains(t, err.Error(), "city")
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var a kernel.Address

		assert.Equal(t, kernel.ErrAddressIsNotConstructed, a.Validate())
	})
}

func TestAddress_Text(t *testing.T) {
	a, _ := kernel.NewAddress("12 MG Road", "Kochi", "Kerala", "682001", "Opposite park")
	assert.Equal(t, "12 MG Road Kochi Kerala", a.Text())

	noState, _ := kernel.NewAddress("Beach Road", "Kozhikode", "", "", "")
	assert.Equal(t, "Beach Road Kozhikode", noState.Text())
}
