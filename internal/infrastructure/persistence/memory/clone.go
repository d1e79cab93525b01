package memory

import (
	"time"

	"github.com/carpentry/backend/internal/domain/finance"
	"github.com/carpentry/backend/internal/domain/workforce"
	"github.com/carpentry/backend/internal/domain/workorder"
	"github.com/google/uuid"
)

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneDocument(d *workorder.Document) *workorder.Document {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneAttachments(a []workorder.Attachment) []workorder.Attachment {
	out := make([]workorder.Attachment, len(a))
	copy(out, a)
	return out
}

func cloneRequest(r *workorder.Request) *workorder.Request {
	c := *r
	c.CreatedBy = cloneUUID(r.CreatedBy)
	c.Attachments = cloneAttachments(r.Attachments)
	c.ClearDomainEvents()
	return &c
}

func cloneWorkOrder(o *workorder.WorkOrder) *workorder.WorkOrder {
	c := *o
	c.CreatedBy = cloneUUID(o.CreatedBy)
	c.Request.Attachments = cloneAttachments(o.Request.Attachments)
	c.QuoteDocument = cloneDocument(o.QuoteDocument)
	if o.Checklist != nil {
		cl := *o.Checklist
		cl.Tasks = append([]workorder.Task(nil), o.Checklist.Tasks...)
		cl.Logs = append([]workorder.LogEntry(nil), o.Checklist.Logs...)
		cl.Specs.DeliveryDate = cloneTime(o.Checklist.Specs.DeliveryDate)
		cl.Specs.MaterialsDoc = cloneDocument(o.Checklist.Specs.MaterialsDoc)
		cl.Specs.OptimizationDoc = cloneDocument(o.Checklist.Specs.OptimizationDoc)
		c.Checklist = &cl
	}
	if o.Installation != nil {
		in := *o.Installation
		in.CompletedAt = cloneTime(o.Installation.CompletedAt)
		c.Installation = &in
	}
	c.Payment.DepositDate = cloneTime(o.Payment.DepositDate)
	c.Payment.FinalPaymentDate = cloneTime(o.Payment.FinalPaymentDate)
	c.ArchivedAt = cloneTime(o.ArchivedAt)
	c.ClearDomainEvents()
	return &c
}

func cloneObligation(o *finance.SupplierObligation) *finance.SupplierObligation {
	c := *o
	c.CreatedBy = cloneUUID(o.CreatedBy)
	c.DueDate = cloneTime(o.DueDate)
	c.ClearDomainEvents()
	return &c
}

func cloneEntry(e *finance.LedgerEntry) *finance.LedgerEntry {
	c := *e
	if e.ReferenceID != nil {
		ref := *e.ReferenceID
		c.ReferenceID = &ref
	}
	return &c
}

func cloneEmployee(e *workforce.Employee) *workforce.Employee {
	c := *e
	c.CreatedBy = cloneUUID(e.CreatedBy)
	c.ClearDomainEvents()
	return &c
}

func cloneAttendance(r *workforce.AttendanceRecord) *workforce.AttendanceRecord {
	c := *r
	c.Start = cloneTime(r.Start)
	c.BreakStart = cloneTime(r.BreakStart)
	c.BreakEnd = cloneTime(r.BreakEnd)
	c.End = cloneTime(r.End)
	return &c
}

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
