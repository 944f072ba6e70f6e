package queries

import (
	"context"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetHubByDistrictQueryHandler struct {
	db *gorm.DB
}

func NewGetHubByDistrictQueryHandler(db *gorm.DB) GetHubByDistrictQueryHandler {
	return GetHubByDistrictQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when the district has no active hub.
func (h GetHubByDistrictQueryHandler) Handle(ctx context.Context, query GetHubByDistrictQuery) (HubView, error) {
	if err := query.Validate(); err != nil {
		return HubView{}, err
	}

	hubs, err := scanHubs(h.db.WithContext(ctx).Raw(
		`SELECT `+hubColumns+` FROM hubs WHERE district = ? AND status = ? ORDER BY created_at LIMIT 1`,
		query.District().String(), hub.Active.String(),
	))
	if err != nil {
		return HubView{}, err
	}
	if len(hubs) == 0 {
		return HubView{}, errs.NewObjectNotFoundError("active hub for district", query.District().String())
	}
	return hubs[0], nil
}
