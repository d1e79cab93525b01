package workorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AggregateType is the event aggregate name for work orders
const AggregateType = "WorkOrder"

// WorkOrder is a priced fabrication and installation job.
//
// Status only moves forward (Quoted, InProduction, InInstallation, Archived).
// Every mutating method validates first and mutates after, so a returned error
// means the order is exactly as it was before the call. Archived orders only
// accept payment bookkeeping.
type WorkOrder struct {
	shared.TenantAggregateRoot
	Request       RequestSnapshot
	Status        Status
	ClientCode    string
	BaseTotal     valueobject.Money
	QuoteDocument *Document
	Checklist     *Checklist
	Installation  *Installation
	Payment       PaymentTerms
	ArchivedAt    *time.Time
}

// NewWorkOrder creates a quoted order from an intake request
func NewWorkOrder(req *Request, clientCode string, total valueobject.Money, quoteDoc *Document) (*WorkOrder, error) {
	if req == nil {
		return nil, shared.NewDomainError(shared.CodeMissingRequiredField, "Request is required")
	}
	clientCode = strings.TrimSpace(clientCode)
	if clientCode == "" {
		return nil, shared.NewDomainError(shared.CodeMissingRequiredField, "Client code is required")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Total cannot be negative")
	}

	o := &WorkOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(req.TenantID),
		Request:             req.Snapshot(),
		Status:              StatusQuoted,
		ClientCode:          clientCode,
		BaseTotal:           total,
		QuoteDocument:       quoteDoc,
	}
	o.AddDomainEvent(NewWorkOrderQuotedEvent(o))
	return o, nil
}

// ClientName returns the client's name from the intake snapshot
func (o *WorkOrder) ClientName() string {
	return o.Request.Client.Name
}

// EffectiveTotal returns the base total after discount
func (o *WorkOrder) EffectiveTotal() valueobject.Money {
	return o.Payment.EffectiveTotal(o.BaseTotal)
}

// Balance returns what the client still owes
func (o *WorkOrder) Balance() valueobject.Money {
	return o.Payment.Balance(o.BaseTotal)
}

// BeginProduction moves a quoted order onto the shop floor.
// The canonical checklist is created if the order has none yet.
func (o *WorkOrder) BeginProduction(specs Specs) error {
	if err := o.transitionGuard(StatusInProduction, "begin production of"); err != nil {
		return err
	}

	if o.Checklist == nil {
		o.Checklist = NewChecklist(specs)
	} else {
		o.Checklist.Specs = specs
	}
	o.Status = StatusInProduction
	o.IncrementVersion()
	o.AddDomainEvent(NewProductionStartedEvent(o))
	return nil
}

// ScheduleInstallation moves a produced order to installation
func (o *WorkOrder) ScheduleInstallation(date time.Time, teamName string) error {
	if err := o.transitionGuard(StatusInInstallation, "schedule installation of"); err != nil {
		return err
	}
	teamName = strings.TrimSpace(teamName)
	if date.IsZero() {
		return shared.NewDomainError(shared.CodeMissingRequiredField, "Installation date is required")
	}
	if teamName == "" {
		return shared.NewDomainError(shared.CodeMissingRequiredField, "Installation team name is required")
	}

	o.Installation = &Installation{ScheduledDate: date, TeamName: teamName}
	o.Status = StatusInInstallation
	o.IncrementVersion()
	o.AddDomainEvent(NewInstallationScheduledEvent(o))
	return nil
}

// Archive closes an installed order and marks the installation complete
func (o *WorkOrder) Archive() error {
	if err := o.transitionGuard(StatusArchived, "archive"); err != nil {
		return err
	}

	now := time.Now()
	if o.Installation == nil {
		o.Installation = &Installation{}
	}
	o.Installation.IsCompleted = true
	o.Installation.CompletedAt = &now
	o.Status = StatusArchived
	o.ArchivedAt = &now
	o.IncrementVersion()
	o.AddDomainEvent(NewWorkOrderArchivedEvent(o))
	return nil
}

// ToggleTask flips the completion flag of a checklist task
func (o *WorkOrder) ToggleTask(taskID string) error {
	if err := o.ensureEditable("toggle tasks of"); err != nil {
		return err
	}
	if o.Checklist == nil {
		return taskNotFound(taskID)
	}
	completed, err := o.Checklist.toggle(taskID)
	if err != nil {
		return err
	}
	o.IncrementVersion()
	o.AddDomainEvent(NewTaskToggledEvent(o, taskID, completed))
	return nil
}

// UpdateTaskNote replaces the free-text note of a task
func (o *WorkOrder) UpdateTaskNote(taskID, note string) error {
	if err := o.ensureEditable("edit tasks of"); err != nil {
		return err
	}
	if o.Checklist == nil {
		return taskNotFound(taskID)
	}
	if err := o.Checklist.setNote(taskID, note); err != nil {
		return err
	}
	o.IncrementVersion()
	return nil
}

// AppendLog records a workshop note at the head of the log
func (o *WorkOrder) AppendLog(text, author string) (LogEntry, error) {
	if err := o.ensureEditable("log on"); err != nil {
		return LogEntry{}, err
	}
	if o.Checklist == nil {
		return LogEntry{}, shared.NewDomainError(shared.CodeInvalidTransition, "Work order has no checklist yet")
	}
	entry, err := o.Checklist.prependLog(text, author, time.Now())
	if err != nil {
		return LogEntry{}, err
	}
	o.IncrementVersion()
	return entry, nil
}

// SetProductionStatus updates the workshop sub-status
func (o *WorkOrder) SetProductionStatus(status ProductionStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown production status %q", status))
	}
	if o.Status != StatusInProduction {
		return o.statusError("change production status of")
	}
	o.Checklist.ProductionStatus = status
	o.IncrementVersion()
	return nil
}

// UpdateSpecs replaces the checklist finish and delivery details
func (o *WorkOrder) UpdateSpecs(specs Specs) error {
	if err := o.ensureEditable("edit specs of"); err != nil {
		return err
	}
	if o.Checklist == nil {
		return shared.NewDomainError(shared.CodeInvalidTransition, "Work order has no checklist yet")
	}
	o.Checklist.Specs = specs
	o.IncrementVersion()
	return nil
}

// UpdateInstallation edits date, team and notes while installation is pending
func (o *WorkOrder) UpdateInstallation(date time.Time, teamName, notes string) error {
	if o.Status != StatusInInstallation {
		return o.statusError("edit installation of")
	}
	teamName = strings.TrimSpace(teamName)
	if date.IsZero() {
		return shared.NewDomainError(shared.CodeMissingRequiredField, "Installation date is required")
	}
	if teamName == "" {
		return shared.NewDomainError(shared.CodeMissingRequiredField, "Installation team name is required")
	}
	o.Installation.ScheduledDate = date
	o.Installation.TeamName = teamName
	o.Installation.Notes = notes
	o.IncrementVersion()
	return nil
}

// AttachDocument stores a document reference of the given kind.
// Materials and optimization documents belong to the production specs and
// need a checklist; the quote document can be attached at any stage.
func (o *WorkOrder) AttachDocument(kind DocumentKind, doc Document) error {
	if err := o.ensureEditable("attach documents to"); err != nil {
		return err
	}
	if !kind.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown document kind %q", kind))
	}
	if doc.Reference == "" {
		return shared.NewDomainError(shared.CodeMissingRequiredField, "Document reference is required")
	}
	if kind != DocumentQuote && o.Checklist == nil {
		return shared.NewDomainError(shared.CodeInvalidTransition, "Work order has no checklist yet")
	}

	switch kind {
	case DocumentQuote:
		o.QuoteDocument = &doc
	case DocumentMaterials:
		o.Checklist.Specs.MaterialsDoc = &doc
	case DocumentOptimization:
		o.Checklist.Specs.OptimizationDoc = &doc
	}
	o.IncrementVersion()
	return nil
}

// Document returns the attached document of the given kind, if any
func (o *WorkOrder) Document(kind DocumentKind) *Document {
	switch kind {
	case DocumentQuote:
		return o.QuoteDocument
	case DocumentMaterials:
		if o.Checklist != nil {
			return o.Checklist.Specs.MaterialsDoc
		}
	case DocumentOptimization:
		if o.Checklist != nil {
			return o.Checklist.Specs.OptimizationDoc
		}
	}
	return nil
}

// CorrectTotal is the only way to change the base total after quoting
func (o *WorkOrder) CorrectTotal(total valueobject.Money) error {
	if err := o.ensureEditable("correct the total of"); err != nil {
		return err
	}
	if total.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Total cannot be negative")
	}
	previous := o.BaseTotal
	o.BaseTotal = total
	o.IncrementVersion()
	o.AddDomainEvent(NewPaymentUpdatedEvent(o, fmt.Sprintf("total corrected from %s", previous.StringFixed(2))))
	return nil
}

// SetDiscount sets the discount percentage, which must be within [0, 100]
func (o *WorkOrder) SetDiscount(percent decimal.Decimal) error {
	if err := o.ensureEditable("change the discount of"); err != nil {
		return err
	}
	if !ValidPercent(percent) {
		return shared.NewDomainError(shared.CodeInvalidPercentage,
			fmt.Sprintf("Discount %s%% is outside 0-100", percent.String()))
	}
	o.Payment.DiscountPercent = percent
	o.IncrementVersion()
	o.AddDomainEvent(NewPaymentUpdatedEvent(o, "discount"))
	return nil
}

// RecordDeposit sets the deposit and stamps its date.
// Deposits above the effective total are accepted; the balance floors at zero.
func (o *WorkOrder) RecordDeposit(amount valueobject.Money) error {
	if err := o.ensureEditable("record a deposit on"); err != nil {
		return err
	}
	if amount.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Deposit cannot be negative")
	}
	now := time.Now()
	o.Payment.Deposit = amount
	o.Payment.DepositDate = &now
	o.IncrementVersion()
	o.AddDomainEvent(NewPaymentUpdatedEvent(o, "deposit"))
	return nil
}

// ToggleFinalPayment flips the final payment flag, stamping or clearing its date
func (o *WorkOrder) ToggleFinalPayment() error {
	if err := o.ensureEditable("toggle the final payment of"); err != nil {
		return err
	}
	if o.Payment.FinalPaid {
		o.Payment.FinalPaid = false
		o.Payment.FinalPaymentDate = nil
	} else {
		now := time.Now()
		o.Payment.FinalPaid = true
		o.Payment.FinalPaymentDate = &now
	}
	o.IncrementVersion()
	o.AddDomainEvent(NewPaymentUpdatedEvent(o, "final payment"))
	return nil
}

// MatchesSearch reports whether term appears in the client name, email, code or phone
func (o *WorkOrder) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	c := o.Request.Client
	return o.matchesNameOrCode(term) ||
		strings.Contains(strings.ToLower(c.Email), term) ||
		strings.Contains(c.Phone, term)
}

// MatchesNameOrCode reports whether term appears in the client name or code
func (o *WorkOrder) MatchesNameOrCode(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	return term == "" || o.matchesNameOrCode(term)
}

func (o *WorkOrder) matchesNameOrCode(term string) bool {
	return strings.Contains(strings.ToLower(o.Request.Client.Name), term) ||
		strings.Contains(strings.ToLower(o.ClientCode), term)
}

func (o *WorkOrder) transitionGuard(target Status, action string) error {
	if !o.Status.CanTransitionTo(target) {
		return o.statusError(action)
	}
	return nil
}

func (o *WorkOrder) ensureEditable(action string) error {
	if o.Status == StatusArchived {
		return o.statusError(action)
	}
	return nil
}

func (o *WorkOrder) statusError(action string) error {
	return shared.NewDomainError(shared.CodeInvalidTransition,
		fmt.Sprintf("Cannot %s work order in %s status", action, o.Status))
}
