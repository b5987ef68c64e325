package floatingtrip

import (
	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/pkg/export"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Document No", "Date", "Driver", "Vehicle", "Area", "Start Time", "End Time",
	"Start KM", "End KM", "Distance", "Mileage", "Total Time", "Time Bonus", "Food", "Total",
}

func exportTitle(dates models.TripDateRange) []string {
	from, to := dates.From, dates.To
	if from == "" {
		from = "beginning"
	}
	if to == "" {
		to = "today"
	}
	return []string{"Floating Trips", "Period: " + from + " to " + to}
}

// workbook lays out trips one per row with a totals line.
func workbook(trips []*models.FloatingTrip, dates models.TripDateRange) (*excelize.File, error) {
	var distance, mileage, bonus, food, total float64
	rows := make([][]interface{}, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, []interface{}{
			t.DocumentNo, t.TripDate, t.DriverName, t.VehicleName, t.AreaName, t.StartTime, t.EndTime,
			t.StartKm, t.EndKm, t.TotalDistance, t.MileageAllowance, t.TotalTime, t.TimeBonus,
			t.FoodAllowance, t.TotalAmount,
		})
		distance += t.TotalDistance
		mileage += t.MileageAllowance
		bonus += t.TimeBonus
		food += t.FoodAllowance
		total += t.TotalAmount
	}

	return export.NewWorkbook(export.Sheet{
		Name:    "Floating Trips",
		Title:   exportTitle(dates),
		Headers: exportHeaders,
		Rows:    rows,
		Totals: []interface{}{
			"Total", "", "", "", "", "", "", "", "",
			allowance.Round2(distance), mileage, "", bonus, allowance.Round2(food), total,
		},
	})
}
