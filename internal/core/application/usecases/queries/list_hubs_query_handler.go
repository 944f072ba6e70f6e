package queries

import (
	"context"
	"math"
	"time"

	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListHubsQueryHandler reads the hub directory.
type ListHubsQueryHandler struct {
	db *gorm.DB
}

func NewListHubsQueryHandler(db *gorm.DB) ListHubsQueryHandler {
	return ListHubsQueryHandler{db: db}
}

const hubColumns = `
	id, code, name, district,
	address_street, address_city, address_state, address_pincode, address_landmark,
	latitude, longitude, contact_phone, contact_email, manager_id, manager_name,
	max_orders, current_orders, total_orders_processed, orders_dispatched,
	open_time, close_time, working_days, status, created_at, updated_at`

func (h ListHubsQueryHandler) Handle(ctx context.Context, query ListHubsQuery) ([]HubView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `SELECT ` + hubColumns + ` FROM hubs WHERE 1 = 1`
	var args []any
	if d := query.District(); d != nil {
		sql += ` AND district = ?`
		args = append(args, d.String())
	}
	if s := query.Status(); s != nil {
		sql += ` AND status = ?`
		args = append(args, s.String())
	}
	sql += ` ORDER BY code`

	return scanHubs(h.db.WithContext(ctx).Raw(sql, args...))
}

func scanHubs(q *gorm.DB) ([]HubView, error) {
	rows, err := q.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hubs := make([]HubView, 0)
	for rows.Next() {
		var (
			v                    HubView
			id                   uuid.UUID
			district, status     string
			lat, lng             float64
			managerID            *string
			managerName          string
			workingDays          pq.StringArray
			createdAt, updatedAt time.Time
		)
		if err = rows.Scan(
			&id, &v.Code, &v.Name, &district,
			&v.Address.Street, &v.Address.City, &v.Address.State, &v.Address.Pincode, &v.Address.Landmark,
			&lat, &lng, &v.Phone, &v.Email, &managerID, &managerName,
			&v.MaxOrders, &v.CurrentOrders, &v.TotalOrdersProcessed, &v.OrdersDispatched,
			&v.OpenTime, &v.CloseTime, &workingDays, &status, &createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if v.District, err = kernel.ParseDistrict(district); err != nil {
			return nil, err
		}
		if v.Status, err = hub.ParseStatus(status); err != nil {
			return nil, err
		}
		if v.Location, err = kernel.NewGeoLocation(lat, lng); err != nil {
			return nil, err
		}
		if managerID != nil {
			v.Manager = &hub.Manager{ID: *managerID, Name: managerName}
		}
		if v.MaxOrders > 0 {
			v.Utilization = math.Round(float64(v.CurrentOrders)/float64(v.MaxOrders)*10000) / 100
		}
		v.WorkingDays = []string(workingDays)
		v.CreatedAt, v.UpdatedAt = createdAt, updatedAt

		hubs = append(hubs, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return hubs, nil
}
