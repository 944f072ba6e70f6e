package commands_test

import (
	"testing"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var coirMat = []order.LineItem{{ProductID: "p-1", Title: "Coir mat", Quantity: 2, UnitPrice: 45000}}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	buyer := order.Buyer{ID: "buyer-1", Name: "Asha", Email: "asha@example.com"}
	items := []order.LineItem{coirMat[0]}

	cmd, err := commands.NewCreateOrderCommand(buyer, mustAddress(t, "7 Beach Road", "Kollam"),
		"seller-1", mustAddress(t, "14 Temple Road", "Thrissur"), items, 5000)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, buyer, cmd.Buyer())
	assert.Equal(t, "seller-1", cmd.SellerID())
	assert.Equal(t, int64(5000), cmd.ShippingFee())

	items[0].Quantity = 99
	assert.Equal(t, 2, cmd.Items()[0].Quantity)
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	address := mustAddress(t, "7 Beach Road", "Kollam")

	_, err := commands.NewCreateOrderCommand(order.Buyer{ID: "buyer-1"}, address, "seller-1", address, nil, 0)
	require.ErrorIs(t, err, commands.ErrItemsAreRequired)

	_, err = commands.NewCreateOrderCommand(order.Buyer{}, address, " ", address, coirMat, 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateOrderCommand(order.Buyer{ID: "buyer-1"}, address, "seller-1", address, coirMat, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewCreateOrderCommand(order.Buyer{ID: "buyer-1"}, kernel.Address{}, "seller-1", address, coirMat, 0)
	require.Error(t, err)
}

func TestCreateOrderCommand_NotConstructedViaConstructor(t *testing.T) {
	err := commands.CreateOrderCommand{}.Validate()
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestNewVerifyAndDeliverCommand_TrimsCode(t *testing.T) {
	cmd, err := commands.NewVerifyAndDeliverCommand(kernel.NewUUID(), " 482913 ", "buyer-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, "482913", cmd.Code())

	_, err = commands.NewVerifyAndDeliverCommand(kernel.NewUUID(), "   ", "buyer-1", "", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCancelOrderCommand_RequiresActor(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "", "changed my mind")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewProcessOutboxCommand_RejectsNonPositiveBatch(t *testing.T) {
	_, err := commands.NewProcessOutboxCommand(0)
	require.Error(t, err)
}
