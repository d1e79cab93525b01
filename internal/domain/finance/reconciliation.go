package finance

import (
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/carpentry/backend/internal/domain/workorder"
)

// Snapshot is a consistent read of the three money sources
type Snapshot struct {
	Orders      []workorder.WorkOrder
	Obligations []SupplierObligation
	Entries     []LedgerEntry
}

// Totals is the aggregate financial picture. Every figure is recomputed from
// the snapshot; nothing here is ever persisted.
type Totals struct {
	ProjectIncome      valueobject.Money `json:"project_income"`
	SupplierExpense    valueobject.Money `json:"supplier_expense"`
	OutstandingPayable valueobject.Money `json:"outstanding_payable"`
	ManualIncome       valueobject.Money `json:"manual_income"`
	ManualExpense      valueobject.Money `json:"manual_expense"`
	TotalIncome        valueobject.Money `json:"total_income"`
	TotalExpense       valueobject.Money `json:"total_expense"`
	NetBalance         valueobject.Money `json:"net_balance"`
}

// ProjectIncome sums what clients have actually paid across all orders
func ProjectIncome(orders []workorder.WorkOrder) valueobject.Money {
	total := valueobject.Zero()
	for i := range orders {
		total = total.Add(orders[i].Collected())
	}
	return total
}

// SupplierExpense sums what has been paid to suppliers
func SupplierExpense(obligations []SupplierObligation) valueobject.Money {
	total := valueobject.Zero()
	for i := range obligations {
		total = total.Add(obligations[i].PaidAmount)
	}
	return total
}

// OutstandingPayable sums what is still owed to suppliers.
// Informational only; it does not enter the net balance.
func OutstandingPayable(obligations []SupplierObligation) valueobject.Money {
	total := valueobject.Zero()
	for i := range obligations {
		total = total.Add(obligations[i].Outstanding())
	}
	return total
}

// ManualIncome sums ledger entries booked as income
func ManualIncome(entries []LedgerEntry) valueobject.Money {
	return sumDirection(entries, DirectionIncome)
}

// ManualExpense sums ledger entries booked as expense
func ManualExpense(entries []LedgerEntry) valueobject.Money {
	return sumDirection(entries, DirectionExpense)
}

func sumDirection(entries []LedgerEntry, d Direction) valueobject.Money {
	total := valueobject.Zero()
	for i := range entries {
		if entries[i].Direction == d {
			total = total.Add(entries[i].Amount)
		}
	}
	return total
}

// Reconcile computes all totals from a snapshot. It has no error path:
// empty input yields zero for every figure.
func Reconcile(s Snapshot) Totals {
	t := Totals{
		ProjectIncome:      ProjectIncome(s.Orders),
		SupplierExpense:    SupplierExpense(s.Obligations),
		OutstandingPayable: OutstandingPayable(s.Obligations),
		ManualIncome:       ManualIncome(s.Entries),
		ManualExpense:      ManualExpense(s.Entries),
	}
	t.TotalIncome = t.ManualIncome.Add(t.ProjectIncome)
	t.TotalExpense = t.ManualExpense.Add(t.SupplierExpense)
	t.NetBalance = t.TotalIncome.Subtract(t.TotalExpense)
	return t
}
