package workorder

import (
	"strings"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Canonical task ids. Every checklist carries exactly these, in this order.
const (
	TaskMaterials    = "task_materials"
	TaskGlass        = "task_glass"
	TaskAluminum     = "task_aluminum"
	TaskInstallation = "task_installation"
)

// DefaultLogAuthor signs workshop log entries submitted without an author
const DefaultLogAuthor = "Taller"

var canonicalTasks = []struct {
	id    string
	label string
}{
	{TaskMaterials, "Compra de materiales"},
	{TaskGlass, "Vidrios"},
	{TaskAluminum, "Aluminio"},
	{TaskInstallation, "Colocación"},
}

// Task is one production step
type Task struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	IsCompleted bool   `json:"is_completed"`
	Note        string `json:"note"`
}

// LogEntry is a dated workshop note
type LogEntry struct {
	ID     uuid.UUID `json:"id"`
	Date   time.Time `json:"date"`
	Author string    `json:"author"`
	Text   string    `json:"text"`
}

// DocumentKind names the documents a work order can carry
type DocumentKind string

const (
	DocumentQuote        DocumentKind = "QUOTE"
	DocumentMaterials    DocumentKind = "MATERIALS"
	DocumentOptimization DocumentKind = "OPTIMIZATION"
)

// IsValid checks if the document kind is known
func (k DocumentKind) IsValid() bool {
	return k == DocumentQuote || k == DocumentMaterials || k == DocumentOptimization
}

// Document is a stored file reference and its display name
type Document struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
}

// IsSet reports whether a document was attached
func (d *Document) IsSet() bool {
	return d != nil && d.Reference != ""
}

// Specs describe what the workshop has to build
type Specs struct {
	Color           string     `json:"color"`
	Line            string     `json:"line"`
	Details         string     `json:"details"`
	DeliveryDate    *time.Time `json:"delivery_date,omitempty"`
	MaterialsDoc    *Document  `json:"materials_doc,omitempty"`
	OptimizationDoc *Document  `json:"optimization_doc,omitempty"`
}

// Checklist tracks fabrication of a work order
type Checklist struct {
	Tasks            []Task           `json:"tasks"`
	Specs            Specs            `json:"specs"`
	Logs             []LogEntry       `json:"logs"`
	ProductionStatus ProductionStatus `json:"production_status"`
}

// NewChecklist returns a checklist with the four canonical tasks, all pending
func NewChecklist(specs Specs) *Checklist {
	tasks := make([]Task, 0, len(canonicalTasks))
	for _, t := range canonicalTasks {
		tasks = append(tasks, Task{ID: t.id, Label: t.label})
	}
	return &Checklist{
		Tasks:            tasks,
		Specs:            specs,
		Logs:             make([]LogEntry, 0),
		ProductionStatus: ProductionNotStarted,
	}
}

// Task looks up a task by id
func (c *Checklist) Task(id string) (*Task, bool) {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return &c.Tasks[i], true
		}
	}
	return nil, false
}

// CompletedCount returns how many tasks are done
func (c *Checklist) CompletedCount() int {
	n := 0
	for _, t := range c.Tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

func (c *Checklist) toggle(id string) (bool, error) {
	t, ok := c.Task(id)
	if !ok {
		return false, taskNotFound(id)
	}
	t.IsCompleted = !t.IsCompleted
	return t.IsCompleted, nil
}

func (c *Checklist) setNote(id, note string) error {
	t, ok := c.Task(id)
	if !ok {
		return taskNotFound(id)
	}
	t.Note = note
	return nil
}

func (c *Checklist) prependLog(text, author string, at time.Time) (LogEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return LogEntry{}, shared.NewDomainError(shared.CodeMissingRequiredField, "Log text is required")
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = DefaultLogAuthor
	}
	entry := LogEntry{ID: uuid.New(), Date: at, Author: author, Text: text}
	c.Logs = append([]LogEntry{entry}, c.Logs...)
	return entry, nil
}

func taskNotFound(id string) error {
	return shared.NewDomainError(shared.CodeTaskNotFound, "Task "+id+" not found in checklist")
}
