package workorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Attachment is a reference to a file stored by the document collaborator
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Reference   string `json:"reference"`
}

// ClientContact holds the contact details captured at intake
type ClientContact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Request is a client's intake record awaiting quotation.
// It becomes immutable once quoted or cancelled.
type Request struct {
	shared.TenantAggregateRoot
	Client      ClientContact
	Description string
	Attachments []Attachment
	Status      RequestStatus
}

// NewRequest creates a pending request
func NewRequest(tenantID uuid.UUID, client ClientContact, description string) (*Request, error) {
	if strings.TrimSpace(client.Name) == "" {
		return nil, shared.NewDomainError(shared.CodeMissingRequiredField, "Client name is required")
	}

	r := &Request{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Client:              client,
		Description:         description,
		Attachments:         make([]Attachment, 0),
		Status:              RequestPending,
	}
	r.AddDomainEvent(NewRequestReceivedEvent(r))
	return r, nil
}

// AttachFile adds a file reference while the request is still open
func (r *Request) AttachFile(a Attachment) error {
	if !r.Status.IsOpen() {
		return requestTransitionError("attach files to", r.Status)
	}
	if strings.TrimSpace(a.Reference) == "" {
		return shared.NewDomainError(shared.CodeMissingRequiredField, "Attachment reference is required")
	}
	r.Attachments = append(r.Attachments, a)
	r.Touch()
	return nil
}

// MarkInReview moves a pending request into review
func (r *Request) MarkInReview() error {
	if !r.Status.CanTransitionTo(RequestInReview) {
		return requestTransitionError("review", r.Status)
	}
	r.Status = RequestInReview
	r.IncrementVersion()
	return nil
}

// MarkQuoted consumes the request
func (r *Request) MarkQuoted() error {
	if !r.Status.CanTransitionTo(RequestQuoted) {
		return requestTransitionError("quote", r.Status)
	}
	r.Status = RequestQuoted
	r.IncrementVersion()
	return nil
}

// Cancel discards an open request
func (r *Request) Cancel() error {
	if !r.Status.CanTransitionTo(RequestCancelled) {
		return requestTransitionError("cancel", r.Status)
	}
	r.Status = RequestCancelled
	r.IncrementVersion()
	return nil
}

// Snapshot returns the copy embedded into the work order created from this request
func (r *Request) Snapshot() RequestSnapshot {
	attachments := make([]Attachment, len(r.Attachments))
	copy(attachments, r.Attachments)
	return RequestSnapshot{
		RequestID:   r.ID,
		Client:      r.Client,
		Description: r.Description,
		Attachments: attachments,
		ReceivedAt:  r.CreatedAt,
	}
}

// RequestSnapshot is the frozen intake data carried by a work order
type RequestSnapshot struct {
	RequestID   uuid.UUID     `json:"request_id"`
	Client      ClientContact `json:"client"`
	Description string        `json:"description"`
	Attachments []Attachment  `json:"attachments"`
	ReceivedAt  time.Time     `json:"received_at"`
}

func requestTransitionError(action string, from RequestStatus) error {
	return shared.NewDomainError(shared.CodeInvalidTransition,
		fmt.Sprintf("Cannot %s request in %s status", action, from))
}
