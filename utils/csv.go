package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"festa-pos/dtos"
)

func dailyCSVHeaders() []string {
	return []string{"date", "id", "name", "quantity", "amount"}
}

// DailySummaryCSV writes one row per item plus a closing total row.
func DailySummaryCSV(s dtos.DailySummary) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write(dailyCSVHeaders()); err != nil {
		return nil, err
	}
	for _, item := range s.Items {
		row := []string{
			s.Date,
			item.ProductID,
			item.Name,
			fmt.Sprintf("%d", item.Quantity),
			fmt.Sprintf("%d", item.Amount),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	if err := writer.Write([]string{s.Date, "total", "", fmt.Sprintf("%d", s.OrderCount), fmt.Sprintf("%d", s.TotalSales)}); err != nil {
		return nil, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
