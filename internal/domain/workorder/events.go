package workorder

import (
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Event type names
const (
	EventTypeRequestReceived       = "RequestReceived"
	EventTypeWorkOrderQuoted       = "WorkOrderQuoted"
	EventTypeProductionStarted     = "ProductionStarted"
	EventTypeTaskToggled           = "TaskToggled"
	EventTypeInstallationScheduled = "InstallationScheduled"
	EventTypeWorkOrderArchived     = "WorkOrderArchived"
	EventTypePaymentUpdated        = "PaymentUpdated"
)

// RequestReceivedEvent is raised when a client request is taken in
type RequestReceivedEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID `json:"request_id"`
	ClientName string    `json:"client_name"`
}

// NewRequestReceivedEvent creates a new RequestReceivedEvent
func NewRequestReceivedEvent(r *Request) *RequestReceivedEvent {
	return &RequestReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestReceived, "Request", r.ID, r.TenantID),
		RequestID:       r.ID,
		ClientName:      r.Client.Name,
	}
}

// WorkOrderQuotedEvent is raised when a request becomes a quoted work order
type WorkOrderQuotedEvent struct {
	shared.BaseDomainEvent
	WorkOrderID uuid.UUID         `json:"work_order_id"`
	RequestID   uuid.UUID         `json:"request_id"`
	ClientCode  string            `json:"client_code"`
	ClientName  string            `json:"client_name"`
	Total       valueobject.Money `json:"total"`
}

// NewWorkOrderQuotedEvent creates a new WorkOrderQuotedEvent
func NewWorkOrderQuotedEvent(o *WorkOrder) *WorkOrderQuotedEvent {
	return &WorkOrderQuotedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkOrderQuoted, AggregateType, o.ID, o.TenantID),
		WorkOrderID:     o.ID,
		RequestID:       o.Request.RequestID,
		ClientCode:      o.ClientCode,
		ClientName:      o.ClientName(),
		Total:           o.BaseTotal,
	}
}

// ProductionStartedEvent is raised when an order enters production
type ProductionStartedEvent struct {
	shared.BaseDomainEvent
	WorkOrderID  uuid.UUID  `json:"work_order_id"`
	ClientCode   string     `json:"client_code"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
}

// NewProductionStartedEvent creates a new ProductionStartedEvent
func NewProductionStartedEvent(o *WorkOrder) *ProductionStartedEvent {
	e := &ProductionStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductionStarted, AggregateType, o.ID, o.TenantID),
		WorkOrderID:     o.ID,
		ClientCode:      o.ClientCode,
	}
	if o.Checklist != nil {
		e.DeliveryDate = o.Checklist.Specs.DeliveryDate
	}
	return e
}

// TaskToggledEvent is raised when a checklist task changes state
type TaskToggledEvent struct {
	shared.BaseDomainEvent
	WorkOrderID uuid.UUID `json:"work_order_id"`
	TaskID      string    `json:"task_id"`
	Completed   bool      `json:"completed"`
}

// NewTaskToggledEvent creates a new TaskToggledEvent
func NewTaskToggledEvent(o *WorkOrder, taskID string, completed bool) *TaskToggledEvent {
	return &TaskToggledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskToggled, AggregateType, o.ID, o.TenantID),
		WorkOrderID:     o.ID,
		TaskID:          taskID,
		Completed:       completed,
	}
}

// InstallationScheduledEvent is raised when an order moves to installation
type InstallationScheduledEvent struct {
	shared.BaseDomainEvent
	WorkOrderID   uuid.UUID `json:"work_order_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
	TeamName      string    `json:"team_name"`
}

// NewInstallationScheduledEvent creates a new InstallationScheduledEvent
func NewInstallationScheduledEvent(o *WorkOrder) *InstallationScheduledEvent {
	return &InstallationScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInstallationScheduled, AggregateType, o.ID, o.TenantID),
		WorkOrderID:     o.ID,
		ScheduledDate:   o.Installation.ScheduledDate,
		TeamName:        o.Installation.TeamName,
	}
}

// WorkOrderArchivedEvent is raised when an order is finished
type WorkOrderArchivedEvent struct {
	shared.BaseDomainEvent
	WorkOrderID uuid.UUID         `json:"work_order_id"`
	ClientCode  string            `json:"client_code"`
	Balance     valueobject.Money `json:"balance"`
}

// NewWorkOrderArchivedEvent creates a new WorkOrderArchivedEvent
func NewWorkOrderArchivedEvent(o *WorkOrder) *WorkOrderArchivedEvent {
	return &WorkOrderArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkOrderArchived, AggregateType, o.ID, o.TenantID),
		WorkOrderID:     o.ID,
		ClientCode:      o.ClientCode,
		Balance:         o.Balance(),
	}
}

// PaymentUpdatedEvent is raised whenever payment terms or the total change
type PaymentUpdatedEvent struct {
	shared.BaseDomainEvent
	WorkOrderID    uuid.UUID         `json:"work_order_id"`
	Change         string            `json:"change"`
	EffectiveTotal valueobject.Money `json:"effective_total"`
	Balance        valueobject.Money `json:"balance"`
}

// NewPaymentUpdatedEvent creates a new PaymentUpdatedEvent
func NewPaymentUpdatedEvent(o *WorkOrder, change string) *PaymentUpdatedEvent {
	return &PaymentUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentUpdated, AggregateType, o.ID, o.TenantID),
		WorkOrderID:     o.ID,
		Change:          change,
		EffectiveTotal:  o.EffectiveTotal(),
		Balance:         o.Balance(),
	}
}
