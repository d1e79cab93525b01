// Package seed loads demo data from a YAML fixture through the application
// services, so seeded rows obey the same rules as API traffic.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidFixture wraps every validation failure
var ErrInvalidFixture = errors.New("invalid fixture")

// Fixture is the root of a seed file
type Fixture struct {
	Requests   []RequestFixture    `yaml:"requests"`
	Suppliers  []SupplierFixture   `yaml:"suppliers"`
	Ledger     []LedgerFixture     `yaml:"ledger"`
	Employees  []EmployeeFixture   `yaml:"employees"`
	Attendance []AttendanceFixture `yaml:"attendance"`
}

// ClientFixture is the contact block of a request
type ClientFixture struct {
	Name    string `yaml:"name"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	Address string `yaml:"address"`
}

// RequestFixture is an intake request, optionally carried further along the
// lifecycle by its quote block.
type RequestFixture struct {
	Client      ClientFixture `yaml:"client"`
	Description string        `yaml:"description"`
	Review      bool          `yaml:"review"`
	Cancel      bool          `yaml:"cancel"`
	Quote       *QuoteFixture `yaml:"quote"`
}

// QuoteFixture turns a request into an order and optionally advances it
type QuoteFixture struct {
	ClientCode   string          `yaml:"client_code"`
	Total        string          `yaml:"total"`
	Discount     string          `yaml:"discount"`
	Deposit      string          `yaml:"deposit"`
	FinalPaid    bool            `yaml:"final_paid"`
	Production   *SpecsFixture   `yaml:"production"`
	Installation *InstallFixture `yaml:"installation"`
	Archive      bool            `yaml:"archive"`
}

// SpecsFixture starts production with these specs
type SpecsFixture struct {
	Color   string `yaml:"color"`
	Line    string `yaml:"line"`
	Details string `yaml:"details"`
}

// InstallFixture schedules the installation
type InstallFixture struct {
	Date string `yaml:"date"` // 2006-01-02
	Team string `yaml:"team"`
}

// SupplierFixture is a supplier obligation
type SupplierFixture struct {
	Name    string `yaml:"name"`
	Concept string `yaml:"concept"`
	Total   string `yaml:"total"`
	Paid    string `yaml:"paid"`
	DueDate string `yaml:"due_date"`
}

// LedgerFixture is a manual ledger entry
type LedgerFixture struct {
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Amount      string `yaml:"amount"`
	Direction   string `yaml:"direction"`
}

// EmployeeFixture is a workshop employee
type EmployeeFixture struct {
	Name       string `yaml:"name"`
	DNI        string `yaml:"dni"`
	HourlyRate string `yaml:"hourly_rate"`
	Role       string `yaml:"role"`
}

// AttendanceFixture is a sequence of kiosk actions for one employee
type AttendanceFixture struct {
	DNI     string   `yaml:"dni"`
	Actions []string `yaml:"actions"`
}

// LoadFile reads and validates a fixture file
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates fixture YAML. Unknown keys are rejected so a
// typo does not silently drop data.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks what the services would otherwise reject halfway through
func (f *Fixture) Validate() error {
	for i, r := range f.Requests {
		if r.Client.Name == "" {
			return fmt.Errorf("%w: requests[%d].client.name is required", ErrInvalidFixture, i)
		}
		if r.Cancel && r.Quote != nil {
			return fmt.Errorf("%w: requests[%d] cannot be both cancelled and quoted", ErrInvalidFixture, i)
		}
		if q := r.Quote; q != nil {
			if q.ClientCode == "" {
				return fmt.Errorf("%w: requests[%d].quote.client_code is required", ErrInvalidFixture, i)
			}
			if q.Installation != nil && q.Production == nil {
				return fmt.Errorf("%w: requests[%d] installs without production", ErrInvalidFixture, i)
			}
			if q.Archive && q.Installation == nil {
				return fmt.Errorf("%w: requests[%d] archives without installation", ErrInvalidFixture, i)
			}
			if q.Installation != nil {
				if _, err := time.Parse(dateLayout, q.Installation.Date); err != nil {
					return fmt.Errorf("%w: requests[%d].quote.installation.date: %v", ErrInvalidFixture, i, err)
				}
			}
		}
	}
	seen := map[string]bool{}
	for i, e := range f.Employees {
		if e.DNI == "" {
			return fmt.Errorf("%w: employees[%d].dni is required", ErrInvalidFixture, i)
		}
		if seen[e.DNI] {
			return fmt.Errorf("%w: employees[%d].dni %s is duplicated", ErrInvalidFixture, i, e.DNI)
		}
		seen[e.DNI] = true
	}
	for i, a := range f.Attendance {
		if !seen[a.DNI] {
			return fmt.Errorf("%w: attendance[%d] refers to unknown dni %s", ErrInvalidFixture, i, a.DNI)
		}
	}
	return nil
}

const dateLayout = "2006-01-02"
