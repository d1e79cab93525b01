package workorder

import (
	"time"

	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ===================== Requests =====================

// AttachmentInput is a file reference supplied with a request
type AttachmentInput struct {
	Name        string `json:"name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"max=100"`
	Reference   string `json:"reference" binding:"required,max=1024"`
}

// CreateRequestRequest represents a new client intake
type CreateRequestRequest struct {
	ClientName  string            `json:"client_name" binding:"required,max=200"`
	Phone       string            `json:"phone" binding:"max=50"`
	Email       string            `json:"email" binding:"omitempty,email,max=200"`
	Address     string            `json:"address" binding:"max=300"`
	Description string            `json:"description" binding:"max=4000"`
	Attachments []AttachmentInput `json:"attachments" binding:"omitempty,dive"`
	CreatedBy   uuid.UUID         `json:"-"`
}

// QuoteRequestRequest turns a request into a priced work order
type QuoteRequestRequest struct {
	ClientCode        string            `json:"client_code" binding:"required,max=50"`
	Total             valueobject.Money `json:"total" binding:"money_non_negative"`
	QuoteDocReference string            `json:"quote_doc_reference" binding:"max=1024"`
	QuoteDocName      string            `json:"quote_doc_name" binding:"max=255"`
}

// RequestResponse represents a request in API responses
type RequestResponse struct {
	ID          uuid.UUID               `json:"id"`
	TenantID    uuid.UUID               `json:"tenant_id"`
	Client      workorder.ClientContact `json:"client"`
	Description string                  `json:"description"`
	Attachments []workorder.Attachment  `json:"attachments"`
	Status      string                  `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	Version     int                     `json:"version"`
}

// ToRequestResponse converts a domain request
func ToRequestResponse(r *workorder.Request) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		TenantID:    r.TenantID,
		Client:      r.Client,
		Description: r.Description,
		Attachments: r.Attachments,
		Status:      r.Status.String(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Version:     r.Version,
	}
}

// ===================== Lifecycle =====================

// SpecsInput describes what the workshop has to build
type SpecsInput struct {
	Color                 string     `json:"color" binding:"max=100"`
	Line                  string     `json:"line" binding:"max=100"`
	Details               string     `json:"details" binding:"max=4000"`
	DeliveryDate          *time.Time `json:"delivery_date"`
	MaterialsDocReference string     `json:"materials_doc_reference" binding:"max=1024"`
	MaterialsDocName      string     `json:"materials_doc_name" binding:"max=255"`
	OptimizationDocRef    string     `json:"optimization_doc_reference" binding:"max=1024"`
	OptimizationDocName   string     `json:"optimization_doc_name" binding:"max=255"`
}

// ToSpecs converts the input to domain specs
func (in SpecsInput) ToSpecs() workorder.Specs {
	specs := workorder.Specs{
		Color:        in.Color,
		Line:         in.Line,
		Details:      in.Details,
		DeliveryDate: in.DeliveryDate,
	}
	if in.MaterialsDocReference != "" {
		specs.MaterialsDoc = &workorder.Document{Reference: in.MaterialsDocReference, Name: in.MaterialsDocName}
	}
	if in.OptimizationDocRef != "" {
		specs.OptimizationDoc = &workorder.Document{Reference: in.OptimizationDocRef, Name: in.OptimizationDocName}
	}
	return specs
}

// ScheduleInstallationRequest moves an order to installation
type ScheduleInstallationRequest struct {
	ScheduledDate string `json:"scheduled_date" binding:"omitempty,datetime=2006-01-02"`
	TeamName      string `json:"team_name" binding:"max=100"`
}

// UpdateInstallationRequest edits a pending installation
type UpdateInstallationRequest struct {
	ScheduledDate string `json:"scheduled_date" binding:"omitempty,datetime=2006-01-02"`
	TeamName      string `json:"team_name" binding:"max=100"`
	Notes         string `json:"notes" binding:"max=2000"`
}

// DateLayout is the calendar date format accepted by the API
const DateLayout = "2006-01-02"

// parseDate returns the zero time for an empty string so the domain can
// report the missing field itself.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

// AppendLogRequest adds a workshop note
type AppendLogRequest struct {
	Text   string `json:"text" binding:"required,max=2000"`
	Author string `json:"author" binding:"max=100"`
}

// TaskNoteRequest replaces a task note
type TaskNoteRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

// ProductionStatusRequest changes the workshop sub-status
type ProductionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=NOT_STARTED IN_FABRICATION PENDING COMPLETE"`
}

// ListWorkOrdersQuery filters order listings
type ListWorkOrdersQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=QUOTED IN_PRODUCTION IN_INSTALLATION ARCHIVED"`
	Search   string `form:"search" binding:"max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// ===================== Payments =====================

// DiscountRequest sets the discount percentage
type DiscountRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

// AmountRequest carries a single amount
type AmountRequest struct {
	Amount valueobject.Money `json:"amount" binding:"money_non_negative"`
}

// PaymentResponse is the payment view of an order, with derived amounts
type PaymentResponse struct {
	WorkOrderID      uuid.UUID         `json:"work_order_id"`
	BaseTotal        valueobject.Money `json:"base_total"`
	DiscountPercent  decimal.Decimal   `json:"discount_percent"`
	EffectiveTotal   valueobject.Money `json:"effective_total"`
	Deposit          valueobject.Money `json:"deposit"`
	DepositDate      *time.Time        `json:"deposit_date,omitempty"`
	FinalPaid        bool              `json:"final_paid"`
	FinalPaymentDate *time.Time        `json:"final_payment_date,omitempty"`
	Balance          valueobject.Money `json:"balance"`
	Collected        valueobject.Money `json:"collected"`
}

// ToPaymentResponse derives the payment view
func ToPaymentResponse(o *workorder.WorkOrder) PaymentResponse {
	return PaymentResponse{
		WorkOrderID:      o.ID,
		BaseTotal:        o.BaseTotal,
		DiscountPercent:  o.Payment.DiscountPercent,
		EffectiveTotal:   o.EffectiveTotal(),
		Deposit:          o.Payment.Deposit,
		DepositDate:      o.Payment.DepositDate,
		FinalPaid:        o.Payment.FinalPaid,
		FinalPaymentDate: o.Payment.FinalPaymentDate,
		Balance:          o.Balance(),
		Collected:        o.Collected(),
	}
}

// ===================== Work order =====================

// WorkOrderResponse represents a work order in API responses
type WorkOrderResponse struct {
	ID            uuid.UUID                 `json:"id"`
	TenantID      uuid.UUID                 `json:"tenant_id"`
	Status        string                    `json:"status"`
	ClientCode    string                    `json:"client_code"`
	Request       workorder.RequestSnapshot `json:"request"`
	BaseTotal     valueobject.Money         `json:"base_total"`
	QuoteDocument *workorder.Document       `json:"quote_document,omitempty"`
	Checklist     *workorder.Checklist      `json:"checklist,omitempty"`
	TasksDone     int                       `json:"tasks_done"`
	Installation  *workorder.Installation   `json:"installation,omitempty"`
	Payment       PaymentResponse           `json:"payment"`
	ArchivedAt    *time.Time                `json:"archived_at,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
	Version       int                       `json:"version"`
}

// ToWorkOrderResponse converts a domain work order
func ToWorkOrderResponse(o *workorder.WorkOrder) WorkOrderResponse {
	resp := WorkOrderResponse{
		ID:            o.ID,
		TenantID:      o.TenantID,
		Status:        o.Status.String(),
		ClientCode:    o.ClientCode,
		Request:       o.Request,
		BaseTotal:     o.BaseTotal,
		QuoteDocument: o.QuoteDocument,
		Checklist:     o.Checklist,
		Installation:  o.Installation,
		Payment:       ToPaymentResponse(o),
		ArchivedAt:    o.ArchivedAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Version:       o.Version,
	}
	if o.Checklist != nil {
		resp.TasksDone = o.Checklist.CompletedCount()
	}
	return resp
}

// ToWorkOrderResponses converts a list of work orders
func ToWorkOrderResponses(orders []workorder.WorkOrder) []WorkOrderResponse {
	out := make([]WorkOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToWorkOrderResponse(&orders[i])
	}
	return out
}

// ===================== Documents =====================

// UploadDocumentRequest asks for a presigned upload slot
type UploadDocumentRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=QUOTE MATERIALS OPTIMIZATION"`
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// UploadDocumentResponse is the presigned slot the client uploads to
type UploadDocumentResponse struct {
	Reference string    `json:"reference"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AttachDocumentRequest confirms an uploaded document
type AttachDocumentRequest struct {
	Kind      string `json:"kind" binding:"required,oneof=QUOTE MATERIALS OPTIMIZATION"`
	Reference string `json:"reference" binding:"required,max=1024"`
	Name      string `json:"name" binding:"required,max=255"`
}

// DownloadDocumentResponse is a presigned download link
type DownloadDocumentResponse struct {
	Document  workorder.Document `json:"document"`
	URL       string             `json:"url"`
	ExpiresAt time.Time          `json:"expires_at"`
}
