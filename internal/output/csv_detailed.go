package output

import (
	"bytes"
	"encoding/csv"

	"github.com/cardwise/utilization-optimizer/internal/domain"
)

// CSVAllocationExporter provides one row per strategy and card allocation.
type CSVAllocationExporter struct{}

func (c CSVAllocationExporter) Name() string { return "allocations-csv" }

func (c CSVAllocationExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Strategy", "CardID", "CardName", "Payment", "MinimumPayment", "NewBalance", "NewUtilization", "PriorityRank", "Reasoning"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range report.Allocations {
		for _, a := range s.Allocations {
			row := []string{
				string(s.Kind),
				a.CardID,
				a.CardName,
				a.Payment.StringFixed(2),
				a.MinimumPayment.StringFixed(2),
				a.NewBalance.StringFixed(2),
				a.NewUtilization.StringFixed(2),
				intToString(a.PriorityRank),
				a.Reasoning,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
