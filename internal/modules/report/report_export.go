package report

import (
	"fleet-management/internal/models"
	"fleet-management/pkg/export"

	"github.com/xuri/excelize/v2"
)

func ledgerWorkbook(l *models.DriverLedger) (*excelize.File, error) {
	name := ""
	if l.Driver != nil {
		name = l.Driver.Name
	}

	rows := make([][]interface{}, 0, len(l.Transactions)+1)
	rows = append(rows, []interface{}{"", "", "", "Opening balance", "", "", l.Summary.OpeningBalance})
	for _, e := range l.Transactions {
		rows = append(rows, []interface{}{
			e.TransDate, e.BillNo, e.TransactionType, e.Description, e.CrAmount, e.DrAmount, e.RunningBalance,
		})
	}

	return export.NewWorkbook(export.Sheet{
		Name:    "Driver Ledger",
		Title:   []string{"Driver Ledger: " + name, "Period: " + l.FromDate + " to " + l.ToDate},
		Headers: []string{"Date", "Bill No", "Type", "Description", "Credit", "Debit", "Balance"},
		Rows:    rows,
		Totals:  []interface{}{"Total", "", "", "", l.Summary.TotalCredit, l.Summary.TotalDebit, l.Summary.Balance},
	})
}
