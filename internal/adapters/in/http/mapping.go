package http

import (
	"hubflow/internal/core/application/usecases/queries"
	"hubflow/internal/core/domain/model/hub"
	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/notification"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/generated/servers"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toHubRef(ref *queries.HubRef) *servers.HubRef {
	if ref == nil {
		return nil
	}
	return &servers.HubRef{
		Id:       ref.ID.Bytes(),
		Name:     ref.Name,
		District: ref.District.String(),
		Fallback: ref.Fallback,
	}
}

func toOTPStatus(otp *queries.OTPStatus) *servers.OtpStatus {
	if otp == nil {
		return nil
	}
	return &servers.OtpStatus{
		GeneratedAt: otp.GeneratedAt,
		ExpiresAt:   otp.ExpiresAt,
		Used:        otp.Used,
		UsedAt:      otp.UsedAt,
	}
}

func toOrderSummary(o queries.OrderSummary) servers.OrderSummary {
	return servers.OrderSummary{
		Id:                   o.ID.Bytes(),
		Number:               o.Number,
		BuyerId:              o.BuyerID,
		BuyerName:            optional(o.BuyerName),
		SellerId:             o.SellerID,
		Status:               o.Status.String(),
		CurrentLocation:      string(o.CurrentLocation),
		FinalAmount:          o.FinalAmount,
		ItemCount:            o.ItemCount,
		SellerHub:            toHubRef(o.SellerHub),
		BuyerHub:             toHubRef(o.BuyerHub),
		AdminApproved:        o.AdminApproved,
		ApprovedBy:           optional(o.ApprovedBy),
		ArrivedAtSellerHubAt: o.ArrivedAtSellerHubAt,
		ApprovedAt:           o.ApprovedAt,
		ArrivedAtBuyerHubAt:  o.ArrivedAtBuyerHubAt,
		DeliveredAt:          o.DeliveredAt,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

func toOrderSummaries(orders []queries.OrderSummary) []servers.OrderSummary {
	out := make([]servers.OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderSummary(o))
	}
	return out
}

func toAddress(a queries.Address) servers.Address {
	return servers.Address{
		Street:   a.Street,
		City:     a.City,
		State:    a.State,
		Pincode:  optional(a.Pincode),
		Landmark: optional(a.Landmark),
	}
}

func toOrder(o queries.GetOrderQueryResponse) servers.Order {
	s := o.OrderSummary
	items := make([]servers.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, servers.LineItem{
			ProductId: it.ProductID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	return servers.Order{
		Id:                   s.ID.Bytes(),
		Number:               s.Number,
		BuyerId:              s.BuyerID,
		BuyerName:            optional(s.BuyerName),
		BuyerEmail:           optional(o.BuyerEmail),
		BuyerPhone:           optional(o.BuyerPhone),
		SellerId:             s.SellerID,
		ShippingAddress:      toAddress(o.ShippingAddress),
		SellerAddress:        toAddress(o.SellerAddress),
		Items:                items,
		ItemCount:            s.ItemCount,
		ItemsTotal:           o.Totals.Items,
		ShippingFee:          o.Totals.Shipping,
		FinalAmount:          o.Totals.Final,
		Status:               s.Status.String(),
		CurrentLocation:      string(s.CurrentLocation),
		SellerHub:            toHubRef(s.SellerHub),
		BuyerHub:             toHubRef(s.BuyerHub),
		AdminApproved:        s.AdminApproved,
		ApprovedBy:           optional(s.ApprovedBy),
		ArrivedAtSellerHubAt: s.ArrivedAtSellerHubAt,
		ApprovedAt:           s.ApprovedAt,
		ArrivedAtBuyerHubAt:  s.ArrivedAtBuyerHubAt,
		DeliveredAt:          s.DeliveredAt,
		CancelReason:         optional(o.CancelReason),
		Otp:                  toOTPStatus(o.OTP),
		Version:              o.Version,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func toGeoLocation(l kernel.GeoLocation) servers.GeoLocation {
	return servers.GeoLocation{Latitude: float32(l.Latitude()), Longitude: float32(l.Longitude())}
}

func toTrackedHub(h *queries.TrackedHub) *servers.TrackedHub {
	if h == nil {
		return nil
	}
	out := &servers.TrackedHub{
		Id:        h.ID.Bytes(),
		Name:      h.Name,
		District:  h.District.String(),
		Fallback:  h.Fallback,
		Phone:     optional(h.Phone),
		Email:     optional(h.Email),
		Address:   optional(h.Address),
		ArrivedAt: h.ArrivedAt,
	}
	if h.Location != nil {
		loc := toGeoLocation(*h.Location)
		out.Location = &loc
	}
	return out
}

func toTracking(t queries.GetOrderTrackingQueryResponse) servers.Tracking {
	out := servers.Tracking{
		OrderId:         t.OrderID.Bytes(),
		Number:          t.Number,
		Status:          t.Status.String(),
		CurrentLocation: string(t.CurrentLocation),
		SellerHub:       toTrackedHub(t.SellerHub),
		BuyerHub:        toTrackedHub(t.BuyerHub),
		AdminApproved:   t.AdminApproved,
		ApprovedAt:      t.ApprovedAt,
		DeliveredAt:     t.DeliveredAt,
		Otp:             toOTPStatus(t.OTP),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if t.DistanceKm != nil {
		km := float32(*t.DistanceKm)
		out.DistanceKm = &km
	}
	return out
}

func toManager(m *hub.Manager) *servers.HubManager {
	if m == nil {
		return nil
	}
	return &servers.HubManager{ManagerId: m.ID, ManagerName: m.Name}
}

func toHubFromView(v queries.HubView) servers.Hub {
	return servers.Hub{
		Id:                   v.ID.Bytes(),
		Code:                 v.Code,
		Name:                 v.Name,
		District:             v.District.String(),
		Address:              toAddress(v.Address),
		Location:             toGeoLocation(v.Location),
		Phone:                optional(v.Phone),
		Email:                optional(v.Email),
		Manager:              toManager(v.Manager),
		Status:               servers.HubStatus(v.Status),
		MaxOrders:            v.MaxOrders,
		CurrentOrders:        v.CurrentOrders,
		Utilization:          float32(v.Utilization),
		TotalOrdersProcessed: v.TotalOrdersProcessed,
		OrdersDispatched:     v.OrdersDispatched,
		OpenTime:             v.OpenTime,
		CloseTime:            v.CloseTime,
		WorkingDays:          v.WorkingDays,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
}

func toHub(h *hub.Hub) servers.Hub {
	a := h.Address()
	hours := h.OperatingHours()
	capacity := h.Capacity()
	stats := h.Stats()
	contact := h.Contact()

	return servers.Hub{
		Id:       h.ID().Bytes(),
		Code:     h.Code(),
		Name:     h.Name(),
		District: h.District().String(),
		Address: servers.Address{
			Street:   a.Street(),
			City:     a.City(),
			State:    a.State(),
			Pincode:  optional(a.Pincode()),
			Landmark: optional(a.Landmark()),
		},
		Location:             toGeoLocation(h.Location()),
		Phone:                optional(contact.Phone),
		Email:                optional(contact.Email),
		Manager:              toManager(h.Manager()),
		Status:               servers.HubStatus(h.Status()),
		MaxOrders:            capacity.MaxOrders,
		CurrentOrders:        capacity.CurrentOrders,
		Utilization:          float32(h.Utilization()),
		TotalOrdersProcessed: stats.TotalOrdersProcessed,
		OrdersDispatched:     stats.OrdersDispatched,
		OpenTime:             hours.Open(),
		CloseTime:            hours.Close(),
		WorkingDays:          hours.WorkingDays(),
		CreatedAt:            h.CreatedAt(),
		UpdatedAt:            h.UpdatedAt(),
	}
}

func toNotificationView(v queries.NotificationView) servers.Notification {
	out := servers.Notification{
		Id:             v.ID.Bytes(),
		Type:           string(v.Type),
		Title:          v.Title,
		Message:        v.Message,
		OrderId:        v.OrderID.Bytes(),
		OrderNumber:    v.OrderNumber,
		Transition:     v.Transition.String(),
		IsRead:         v.IsRead,
		ReadAt:         v.ReadAt,
		ActionRequired: v.ActionRequired,
		ActionType:     optional(string(v.ActionType)),
		CreatedAt:      v.CreatedAt,
	}
	if len(v.Metadata) > 0 {
		meta := v.Metadata
		out.Metadata = &meta
	}
	return out
}

func toNotification(n *notification.Notification) servers.Notification {
	c := n.Content()
	return toNotificationView(queries.NotificationView{
		ID:             n.ID(),
		Type:           c.Type,
		Title:          c.Title,
		Message:        c.Message,
		OrderID:        n.OrderID(),
		OrderNumber:    n.OrderNumber(),
		Transition:     n.Transition(),
		IsRead:         n.IsRead(),
		ReadAt:         n.ReadAt(),
		ActionRequired: c.ActionRequired,
		ActionType:     c.ActionType,
		Metadata:       c.Metadata,
		CreatedAt:      n.CreatedAt(),
	})
}

func fromAddress(a servers.Address) (kernel.Address, error) {
	return kernel.NewAddress(a.Street, a.City, a.State, value(a.Pincode), value(a.Landmark))
}

func fromLineItems(items []servers.LineItem) []order.LineItem {
	out := make([]order.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, order.LineItem{
			ProductID: it.ProductId,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}
