// Package outboxrepo stores committed order events until the relay has turned
// them into notifications.
package outboxrepo

import (
	"time"

	"hubflow/internal/core/domain/model/kernel"
	"hubflow/internal/core/domain/model/order"
	"hubflow/internal/core/domain/model/outbox"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MessageDTO is the outbox_messages table. The id is the event id.
type MessageDTO struct {
	ID          uuid.UUID                       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID                       `gorm:"type:uuid;not null;index"`
	OrderNumber string                          `gorm:"type:varchar(32);not null"`
	Transition  string                          `gorm:"type:varchar(32);not null"`
	Actor       string                          `gorm:"type:varchar(64)"`
	OccurredAt  time.Time                       `gorm:"not null"`
	Payload     datatypes.JSONType[SnapshotDTO] `gorm:"type:jsonb;not null"`
	Status      string                          `gorm:"type:varchar(16);not null;index:ix_outbox_pending,priority:1"`
	Attempts    int                             `gorm:"not null;default:0"`
	LastError   string                          `gorm:"type:text"`
	CreatedAt   time.Time                       `gorm:"not null;index:ix_outbox_pending,priority:2;autoCreateTime:false"`
	ProcessedAt *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// SnapshotDTO is the JSON form of order.EventSnapshot.
type SnapshotDTO struct {
	PreviousStatus string     `json:"previousStatus"`
	Status         string     `json:"status"`
	BuyerID        string     `json:"buyerId"`
	BuyerName      string     `json:"buyerName,omitempty"`
	BuyerEmail     string     `json:"buyerEmail,omitempty"`
	SellerID       string     `json:"sellerId"`
	SellerHub      *HubRefDTO `json:"sellerHub,omitempty"`
	BuyerHub       *HubRefDTO `json:"buyerHub,omitempty"`
	FinalAmount    int64      `json:"finalAmount"`
	ItemCount      int        `json:"itemCount"`
	OTPCode        string     `json:"otpCode,omitempty"`
	OTPExpiresAt   *time.Time `json:"otpExpiresAt,omitempty"`
	CancelReason   string     `json:"cancelReason,omitempty"`
}

// HubRefDTO is the JSON form of order.HubRef.
type HubRefDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	District string `json:"district"`
	Fallback bool   `json:"fallback,omitempty"`
}

func fromDomain(m *outbox.Message) MessageDTO {
	e := m.Event()
	s := e.Snapshot
	return MessageDTO{
		ID:          e.ID.Bytes(),
		OrderID:     e.OrderID.Bytes(),
		OrderNumber: e.OrderNumber,
		Transition:  e.Transition.String(),
		Actor:       e.Actor,
		OccurredAt:  e.OccurredAt,
		Payload: datatypes.NewJSONType(SnapshotDTO{
			PreviousStatus: s.PreviousStatus.String(),
			Status:         s.Status.String(),
			BuyerID:        s.BuyerID,
			BuyerName:      s.BuyerName,
			BuyerEmail:     s.BuyerEmail,
			SellerID:       s.SellerID,
			SellerHub:      hubRefFromDomain(s.SellerHub),
			BuyerHub:       hubRefFromDomain(s.BuyerHub),
			FinalAmount:    s.FinalAmount,
			ItemCount:      s.ItemCount,
			OTPCode:        s.OTPCode,
			OTPExpiresAt:   s.OTPExpiresAt,
			CancelReason:   s.CancelReason,
		}),
		Status:      string(m.Status()),
		Attempts:    m.Attempts(),
		LastError:   m.LastError(),
		CreatedAt:   m.CreatedAt(),
		ProcessedAt: m.ProcessedAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := outbox.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	p := dto.Payload.Data()
	snapshot := order.EventSnapshot{
		BuyerID:      p.BuyerID,
		BuyerName:    p.BuyerName,
		BuyerEmail:   p.BuyerEmail,
		SellerID:     p.SellerID,
		FinalAmount:  p.FinalAmount,
		ItemCount:    p.ItemCount,
		OTPCode:      p.OTPCode,
		OTPExpiresAt: p.OTPExpiresAt,
		CancelReason: p.CancelReason,
	}
	if snapshot.Status, err = order.ParseStatus(p.Status); err != nil {
		return nil, err
	}
	// create events have no previous status
	if p.PreviousStatus != "" && p.PreviousStatus != order.Unknown.String() {
		if snapshot.PreviousStatus, err = order.ParseStatus(p.PreviousStatus); err != nil {
			return nil, err
		}
	}
	if snapshot.SellerHub, err = p.SellerHub.toDomain(); err != nil {
		return nil, err
	}
	if snapshot.BuyerHub, err = p.BuyerHub.toDomain(); err != nil {
		return nil, err
	}

	event := order.Event{
		ID:          id,
		Transition:  order.Transition(dto.Transition),
		OrderID:     orderID,
		OrderNumber: dto.OrderNumber,
		Actor:       dto.Actor,
		OccurredAt:  dto.OccurredAt,
		Snapshot:    snapshot,
	}
	return outbox.RestoreMessage(event, status, dto.Attempts, dto.LastError, dto.CreatedAt, dto.ProcessedAt)
}

func hubRefFromDomain(ref *order.HubRef) *HubRefDTO {
	if ref == nil {
		return nil
	}
	return &HubRefDTO{
		ID:       ref.ID.String(),
		Name:     ref.Name,
		District: ref.District.String(),
		Fallback: ref.Fallback,
	}
}

func (r *HubRefDTO) toDomain() (*order.HubRef, error) {
	if r == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return nil, err
	}
	district, err := kernel.ParseDistrict(r.District)
	if err != nil {
		return nil, err
	}
	return &order.HubRef{ID: id, Name: r.Name, District: district, Fallback: r.Fallback}, nil
}
