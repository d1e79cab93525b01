package finance

import (
	"sort"
	"strings"
	"time"

	"github.com/carpentry/backend/internal/domain/shared/valueobject"
)

// Synthetic feed row ids and labels
const (
	FeedRowProjectIncome   = "aggregate:project_income"
	FeedRowSupplierExpense = "aggregate:supplier_expense"

	feedCategoryProjects  = "Obras"
	feedCategorySuppliers = "Proveedores"
)

// FeedRow is one line of the unified transaction feed
type FeedRow struct {
	ID          string            `json:"id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Amount      valueobject.Money `json:"amount"`
	Direction   Direction         `json:"direction"`
	Aggregate   bool              `json:"aggregate"`
}

// Feed merges the aggregate project and supplier rows with the ledger entries.
// Aggregate rows are dated today, come first and appear only when their amount
// is positive. Ledger rows follow by date, newest first. A non-empty search
// keeps ledger rows whose description or category contains it, ignoring case;
// it never hides the aggregate rows.
func Feed(totals Totals, entries []LedgerEntry, today time.Time, search string) []FeedRow {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	rows := make([]FeedRow, 0, len(entries)+2)
	if totals.ProjectIncome.IsPositive() {
		rows = append(rows, FeedRow{
			ID:          FeedRowProjectIncome,
			Date:        day,
			Description: "Cobros de obras",
			Category:    feedCategoryProjects,
			Amount:      totals.ProjectIncome,
			Direction:   DirectionIncome,
			Aggregate:   true,
		})
	}
	if totals.SupplierExpense.IsPositive() {
		rows = append(rows, FeedRow{
			ID:          FeedRowSupplierExpense,
			Date:        day,
			Description: "Pagos a proveedores",
			Category:    feedCategorySuppliers,
			Amount:      totals.SupplierExpense,
			Direction:   DirectionExpense,
			Aggregate:   true,
		})
	}

	term := strings.ToLower(strings.TrimSpace(search))
	ledger := make([]FeedRow, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Description), term) &&
			!strings.Contains(strings.ToLower(e.Category), term) {
			continue
		}
		ledger = append(ledger, FeedRow{
			ID:          e.ID.String(),
			Date:        e.Date,
			Description: e.Description,
			Category:    e.Category,
			Amount:      e.Amount,
			Direction:   e.Direction,
		})
	}
	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Date.After(ledger[j].Date)
	})
	return append(rows, ledger...)
}
