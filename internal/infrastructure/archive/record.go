// Package archive projects finished work orders into DynamoDB. The
// relational store stays authoritative; the projection is a read model
// for looking up closed jobs without touching the operational tables.
package archive

import (
	"time"

	"github.com/carpentry/backend/internal/domain/workorder"
)

// Record is the denormalized view of an archived order. Amounts are stored
// as decimal strings so DynamoDB never rounds them.
type Record struct {
	TenantID        string `dynamodbav:"tenant_id" json:"tenant_id"`
	WorkOrderID     string `dynamodbav:"work_order_id" json:"work_order_id"`
	ClientCode      string `dynamodbav:"client_code" json:"client_code"`
	ClientName      string `dynamodbav:"client_name" json:"client_name"`
	ClientEmail     string `dynamodbav:"client_email,omitempty" json:"client_email,omitempty"`
	ClientPhone     string `dynamodbav:"client_phone,omitempty" json:"client_phone,omitempty"`
	Description     string `dynamodbav:"description,omitempty" json:"description,omitempty"`
	BaseTotal       string `dynamodbav:"base_total" json:"base_total"`
	DiscountPercent string `dynamodbav:"discount_percent" json:"discount_percent"`
	EffectiveTotal  string `dynamodbav:"effective_total" json:"effective_total"`
	Collected       string `dynamodbav:"collected" json:"collected"`
	Balance         string `dynamodbav:"balance" json:"balance"`
	InstallTeam     string `dynamodbav:"install_team,omitempty" json:"install_team,omitempty"`
	CreatedAt       string `dynamodbav:"created_at" json:"created_at"`
	ArchivedAt      string `dynamodbav:"archived_at" json:"archived_at"`
}

// NewRecord builds the projection of an archived order
func NewRecord(o *workorder.WorkOrder) Record {
	archivedAt := o.UpdatedAt
	if o.ArchivedAt != nil {
		archivedAt = *o.ArchivedAt
	}
	r := Record{
		TenantID:        o.TenantID.String(),
		WorkOrderID:     o.ID.String(),
		ClientCode:      o.ClientCode,
		ClientName:      o.Request.Client.Name,
		ClientEmail:     o.Request.Client.Email,
		ClientPhone:     o.Request.Client.Phone,
		Description:     o.Request.Description,
		BaseTotal:       o.BaseTotal.StringFixed(2),
		DiscountPercent: o.Payment.DiscountPercent.String(),
		EffectiveTotal:  o.EffectiveTotal().StringFixed(2),
		Collected:       o.Collected().StringFixed(2),
		Balance:         o.Balance().StringFixed(2),
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
		ArchivedAt:      archivedAt.UTC().Format(time.RFC3339),
	}
	if o.Installation != nil {
		r.InstallTeam = o.Installation.TeamName
	}
	return r
}
