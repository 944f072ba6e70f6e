package commands_test

import (
	"testing"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type hubUoW struct {
	uow     *MockUoW
	factory *MockHubUoWFactory
	hubs    *MockHubRepository
}

func newHubUoW() hubUoW {
	w := hubUoW{uow: &MockUoW{}, factory: &MockHubUoWFactory{}, hubs: &MockHubRepository{}}
	w.factory.On("Create").Return(w.uow)
	w.uow.On("HubRepository").Return(w.hubs).Maybe()
	return w
}

func createHubCommand(t *testing.T, status hub.Status) commands.CreateHubCommand {
	t.Helper()
	location, err := kernel.NewGeoLocation(8.8932, 76.6141)
	require.NoError(t, err)
	cmd, err := commands.NewCreateHubCommand(
		"HUB-KLM-002", "Kollam North Hub", kernel.Kollam,
		mustAddress(t, "Central Hub Location", "Kollam"), location,
		hub.Contact{Phone: "+91 9876543210", Email: "kollam.hub@example.com"},
		500, hub.DefaultOperatingHours(), status, &hub.Manager{ID: "mgr-klm", Name: "Beena"},
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateHubCommandHandler_Handle(t *testing.T) {
	t.Run("creates an active hub in a free district", func(t *testing.T) {
		ctx := t.Context()
		w := newHubUoW()

		mock.InOrder(
			w.uow.On("Begin", ctx).Return(nil).Once(),
			w.hubs.On("ListActiveByDistrict", ctx, kernel.Kollam).Return([]*hub.Hub{}, nil).Once(),
			w.hubs.On("Add", ctx, mock.AnythingOfType("*hub.Hub")).Return(nil).Once(),
			w.uow.On("Commit", ctx).Return(nil).Once(),
			w.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h, err := commands.NewCreateHubCommandHandler(w.factory, clk).Handle(ctx, createHubCommand(t, hub.Active))

		require.NoError(t, err)
		assert.Equal(t, "HUB-KLM-002", h.Code())
		require.NotNil(t, h.Manager())
		assert.Equal(t, "mgr-klm", h.Manager().ID)
		w.uow.AssertExpectations(t)
		w.hubs.AssertExpectations(t)
	})

	t.Run("rejects a second active hub", func(t *testing.T) {
		ctx := t.Context()
		w := newHubUoW()
		existing := newHub(t, "HUB-KLM-001", kernel.Kollam, nil)

		w.uow.On("Begin", ctx).Return(nil).Once()
		w.hubs.On("ListActiveByDistrict", ctx, kernel.Kollam).Return([]*hub.Hub{existing}, nil).Once()
		w.uow.On("Rollback", ctx).Return(nil).Once()

		_, err := commands.NewCreateHubCommandHandler(w.factory, clk).Handle(ctx, createHubCommand(t, hub.Active))

		require.ErrorIs(t, err, hub.ErrDistrictAlreadyServed)
		w.hubs.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("inactive hubs may share a district", func(t *testing.T) {
		ctx := t.Context()
		w := newHubUoW()

		w.uow.On("Begin", ctx).Return(nil).Once()
		w.hubs.On("Add", ctx, mock.AnythingOfType("*hub.Hub")).Return(nil).Once()
		w.uow.On("Commit", ctx).Return(nil).Once()
		w.uow.On("Rollback", ctx).Return(nil).Once()

		_, err := commands.NewCreateHubCommandHandler(w.factory, clk).Handle(ctx, createHubCommand(t, hub.Inactive))

		require.NoError(t, err)
		w.hubs.AssertNotCalled(t, "ListActiveByDistrict", mock.Anything, mock.Anything)
	})
}

func TestChangeHubStatusCommandHandler_Handle(t *testing.T) {
	t.Run("activation is refused while another hub serves the district", func(t *testing.T) {
		ctx := t.Context()
		w := newHubUoW()
		target := newHub(t, "HUB-KLM-002", kernel.Kollam, nil)
		require.NoError(t, target.ChangeStatus(hub.Maintenance, t0))
		active := newHub(t, "HUB-KLM-001", kernel.Kollam, nil)

		w.uow.On("Begin", ctx).Return(nil).Once()
		w.hubs.On("Get", ctx, target.ID()).Return(target, nil).Once()
		w.hubs.On("ListActiveByDistrict", ctx, kernel.Kollam).Return([]*hub.Hub{active}, nil).Once()
		w.uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewChangeHubStatusCommand(target.ID(), hub.Active)
		require.NoError(t, err)

		_, err = commands.NewChangeHubStatusCommandHandler(w.factory, clk).Handle(ctx, cmd)

		require.ErrorIs(t, err, hub.ErrDistrictAlreadyServed)
		assert.Equal(t, hub.Maintenance, target.Status())
	})

	t.Run("deactivation", func(t *testing.T) {
		ctx := t.Context()
		w := newHubUoW()
		target := newHub(t, "HUB-KLM-001", kernel.Kollam, nil)

		w.uow.On("Begin", ctx).Return(nil).Once()
		w.hubs.On("Get", ctx, target.ID()).Return(target, nil).Once()
		w.hubs.On("Update", ctx, target).Return(nil).Once()
		w.uow.On("Commit", ctx).Return(nil).Once()
		w.uow.On("Rollback", ctx).Return(nil).Once()

		cmd, _ := commands.NewChangeHubStatusCommand(target.ID(), hub.Inactive)
		got, err := commands.NewChangeHubStatusCommandHandler(w.factory, clk).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, hub.Inactive, got.Status())
		w.hubs.AssertExpectations(t)
	})
}

func TestAssignHubManagerCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	w := newHubUoW()
	target := newHub(t, "HUB-KLM-001", kernel.Kollam, &hub.Manager{ID: "mgr-old"})

	w.uow.On("Begin", ctx).Return(nil).Once()
	w.hubs.On("Get", ctx, target.ID()).Return(target, nil).Once()
	w.hubs.On("Update", ctx, target).Return(nil).Once()
	w.uow.On("Commit", ctx).Return(nil).Once()
	w.uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewAssignHubManagerCommand(target.ID(), "mgr-new", "Deepa")
	require.NoError(t, err)

	got, err := commands.NewAssignHubManagerCommandHandler(w.factory, clk).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.IsManagedBy("mgr-new"))
	assert.False(t, got.IsManagedBy("mgr-old"))
}

func TestNewAssignHubManagerCommand_RequiresManager(t *testing.T) {
	_, err := commands.NewAssignHubManagerCommand(kernel.NewUUID(), " ", "")
	require.Error(t, err)
}
