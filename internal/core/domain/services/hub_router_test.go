package services_test

import (
	"testing"
	"time"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHub(t *testing.T, code string, district kernel.District, status hub.Status) *hub.Hub {
	t.Helper()
	address := mustAddress(t, "Central Hub Location", district.String(), "Kerala")
	location, err := kernel.NewGeoLocation(10, 76)
	require.NoError(t, err)
	h, err := hub.NewHub(kernel.NewUUID(), code, district.String()+" Central Hub", district, address, location,
		hub.Contact{}, 100, hub.DefaultOperatingHours(), status, time.Now())
	require.NoError(t, err)
	return h
}

func TestHubRouter_Route(t *testing.T) {
	router := services.NewHubRouter()

	t.Run("picks the active hub of the district", func(t *testing.T) {
		inactive := newHub(t, "HUB-TCR-000", kernel.Thrissur, hub.Inactive)
		active := newHub(t, "HUB-TCR-001", kernel.Thrissur, hub.Active)
		other := newHub(t, "HUB-EKM-001", kernel.Ernakulam, hub.Active)

		h, ref, err := router.Route(
			services.Resolution{District: kernel.Thrissur},
			hub.SellerParty,
			[]*hub.Hub{inactive, other, active},
		)

		require.NoError(t, err)
		assert.True(t, h.ID().IsEqual(active.ID()))
		assert.Equal(t, active.Name(), ref.Name)
		assert.Equal(t, kernel.Thrissur, ref.District)
		assert.False(t, ref.Fallback)
	})

	t.Run("carries the fallback flag into the reference", func(t *testing.T) {
		active := newHub(t, "HUB-EKM-001", kernel.Ernakulam, hub.Active)

		_, ref, err := router.Route(
			services.Resolution{District: kernel.Ernakulam, Fallback: true},
			hub.BuyerParty,
			[]*hub.Hub{active},
		)

		require.NoError(t, err)
		assert.True(t, ref.Fallback)
	})

	t.Run("ignores capacity", func(t *testing.T) {
		address := mustAddress(t, "Central Hub Location", "Idukki", "Kerala")
		location, _ := kernel.NewGeoLocation(9.85, 76.97)
		full, err := hub.RestoreHub(kernel.NewUUID(), "HUB-IDK-001", "Idukki Central Hub", kernel.Idukki,
			address, location, hub.Contact{}, nil, hub.Capacity{MaxOrders: 1, CurrentOrders: 5}, hub.Stats{},
			hub.DefaultOperatingHours(), hub.Active, time.Now(), time.Now())
		require.NoError(t, err)

		h, _, err := router.Route(services.Resolution{District: kernel.Idukki}, hub.BuyerParty, []*hub.Hub{full})

		require.NoError(t, err)
		assert.True(t, h.ID().IsEqual(full.ID()))
	})

	t.Run("is deterministic when two active hubs qualify", func(t *testing.T) {
		b := newHub(t, "HUB-KLM-002", kernel.Kollam, hub.Active)
		a := newHub(t, "HUB-KLM-001", kernel.Kollam, hub.Active)

		h, _, err := router.Route(services.Resolution{District: kernel.Kollam}, hub.SellerParty, []*hub.Hub{b, a})

		require.NoError(t, err)
		assert.Equal(t, "HUB-KLM-001", h.Code())
	})

	t.Run("fails loudly without an active hub", func(t *testing.T) {
		maintenance := newHub(t, "HUB-WYD-001", kernel.Wayanad, hub.Maintenance)

		h, _, err := router.Route(services.Resolution{District: kernel.Wayanad}, hub.BuyerParty, []*hub.Hub{maintenance})

		assert.Nil(t, h)
		var resErr *hub.ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, kernel.Wayanad, resErr.District)
		assert.Equal(t, hub.BuyerParty, resErr.Party)
	})

	t.Run("rejects unconstructed candidates", func(t *testing.T) {
		_, _, err := router.Route(services.Resolution{District: kernel.Kollam}, hub.SellerParty, []*hub.Hub{{}})

		require.ErrorIs(t, err, hub.ErrHubIsNotConstructed)
	})
}
