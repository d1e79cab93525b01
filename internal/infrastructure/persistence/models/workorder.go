package models

import (
	"time"

	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestModel is the persistence model for intake requests
type RequestModel struct {
	TenantAggregateModel
	ClientName    string                 `gorm:"type:varchar(200);not null;index"`
	ClientPhone   string                 `gorm:"type:varchar(50)"`
	ClientEmail   string                 `gorm:"type:varchar(200)"`
	ClientAddress string                 `gorm:"type:varchar(300)"`
	Description   string                 `gorm:"type:text"`
	Attachments   []workorder.Attachment `gorm:"type:jsonb;serializer:json"`
	Status        string                 `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (RequestModel) TableName() string {
	return "requests"
}

// ToDomain converts the model to a domain request
func (m *RequestModel) ToDomain() *workorder.Request {
	r := &workorder.Request{
		Client: workorder.ClientContact{
			Name:    m.ClientName,
			Phone:   m.ClientPhone,
			Email:   m.ClientEmail,
			Address: m.ClientAddress,
		},
		Description: m.Description,
		Attachments: m.Attachments,
		Status:      workorder.RequestStatus(m.Status),
	}
	if r.Attachments == nil {
		r.Attachments = make([]workorder.Attachment, 0)
	}
	m.PopulateTenantAggregateRoot(&r.TenantAggregateRoot)
	return r
}

// RequestModelFromDomain converts a domain request to the model
func RequestModelFromDomain(r *workorder.Request) *RequestModel {
	m := &RequestModel{
		ClientName:    r.Client.Name,
		ClientPhone:   r.Client.Phone,
		ClientEmail:   r.Client.Email,
		ClientAddress: r.Client.Address,
		Description:   r.Description,
		Attachments:   r.Attachments,
		Status:        r.Status.String(),
	}
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	return m
}

// WorkOrderModel is the persistence model for work orders. The client
// contact is denormalized out of the request snapshot for searching.
type WorkOrderModel struct {
	TenantAggregateModel
	RequestID        uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex"`
	RequestSnapshot  workorder.RequestSnapshot `gorm:"type:jsonb;serializer:json"`
	Status           string                    `gorm:"type:varchar(20);not null;index"`
	ClientCode       string                    `gorm:"type:varchar(50);not null;index"`
	ClientName       string                    `gorm:"type:varchar(200);not null"`
	ClientEmail      string                    `gorm:"type:varchar(200)"`
	ClientPhone      string                    `gorm:"type:varchar(50)"`
	BaseTotal        valueobject.Money         `gorm:"type:decimal(18,2);not null"`
	QuoteDocument    *workorder.Document       `gorm:"type:jsonb;serializer:json"`
	Checklist        *workorder.Checklist      `gorm:"type:jsonb;serializer:json"`
	Installation     *workorder.Installation   `gorm:"type:jsonb;serializer:json"`
	DiscountPercent  decimal.Decimal           `gorm:"type:decimal(5,2);not null;default:0"`
	Deposit          valueobject.Money         `gorm:"type:decimal(18,2);not null;default:0"`
	DepositDate      *time.Time
	FinalPaid        bool `gorm:"not null;default:false"`
	FinalPaymentDate *time.Time
	ArchivedAt       *time.Time
}

// TableName returns the table name for GORM
func (WorkOrderModel) TableName() string {
	return "work_orders"
}

// ToDomain converts the model to a domain work order
func (m *WorkOrderModel) ToDomain() *workorder.WorkOrder {
	o := &workorder.WorkOrder{
		Request:       m.RequestSnapshot,
		Status:        workorder.Status(m.Status),
		ClientCode:    m.ClientCode,
		BaseTotal:     m.BaseTotal,
		QuoteDocument: m.QuoteDocument,
		Checklist:     m.Checklist,
		Installation:  m.Installation,
		Payment: workorder.PaymentTerms{
			DiscountPercent:  m.DiscountPercent,
			Deposit:          m.Deposit,
			DepositDate:      m.DepositDate,
			FinalPaid:        m.FinalPaid,
			FinalPaymentDate: m.FinalPaymentDate,
		},
		ArchivedAt: m.ArchivedAt,
	}
	m.PopulateTenantAggregateRoot(&o.TenantAggregateRoot)
	return o
}

// WorkOrderModelFromDomain converts a domain work order to the model
func WorkOrderModelFromDomain(o *workorder.WorkOrder) *WorkOrderModel {
	m := &WorkOrderModel{
		RequestID:        o.Request.RequestID,
		RequestSnapshot:  o.Request,
		Status:           o.Status.String(),
		ClientCode:       o.ClientCode,
		ClientName:       o.Request.Client.Name,
		ClientEmail:      o.Request.Client.Email,
		ClientPhone:      o.Request.Client.Phone,
		BaseTotal:        o.BaseTotal,
		QuoteDocument:    o.QuoteDocument,
		Checklist:        o.Checklist,
		Installation:     o.Installation,
		DiscountPercent:  o.Payment.DiscountPercent,
		Deposit:          o.Payment.Deposit,
		DepositDate:      o.Payment.DepositDate,
		FinalPaid:        o.Payment.FinalPaid,
		FinalPaymentDate: o.Payment.FinalPaymentDate,
		ArchivedAt:       o.ArchivedAt,
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	return m
}
