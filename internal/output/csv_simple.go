package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/cardwise/utilization-optimizer/internal/domain"
)

// CSVScheduleFormatter exports the optimization payment schedule, one row per
// payment ordered by date. Reminder and export tooling consume this shape.
type CSVScheduleFormatter struct{}

func (c CSVScheduleFormatter) Name() string { return "csv" }

func (c CSVScheduleFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Date", "CardID", "CardName", "Amount", "Purpose", "Description"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	var payments []domain.CardPayment
	if report.Optimization != nil {
		payments = report.Optimization.Payments()
	}
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date.Before(payments[j].Date) })
	for _, p := range payments {
		row := []string{
			FormatDate(p.Date),
			p.CardID,
			p.CardName,
			p.Amount.StringFixed(2),
			string(p.Purpose),
			p.Description,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
