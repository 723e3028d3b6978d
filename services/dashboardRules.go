package services

import (
	"sort"
	"time"

	"festa-pos/dtos"
	"festa-pos/models"
)

// AggregateDaily summarises the orders created on day's local date. Sales,
// item, hourly and tier figures only count completed orders.
func AggregateDaily(orders []models.Order, day time.Time, hours BusinessHours) dtos.DailySummary {
	loc := hours.loc()
	start := StartOfDay(day, loc)

	firstHour, lastHour := 0, 23
	if hours.Enabled() {
		firstHour, lastHour = hours.Open, hours.Close
		if lastHour > 23 {
			lastHour = 23
		}
	}

	summary := dtos.DailySummary{
		Date:        start.Format(dateLayout),
		Items:       []dtos.ItemStat{},
		Hourly:      make([]dtos.HourlyBucket, 0, lastHour-firstHour+1),
		CustomTiers: []dtos.CustomTier{},
	}
	for h := firstHour; h <= lastHour; h++ {
		summary.Hourly = append(summary.Hourly, dtos.HourlyBucket{Hour: h, Quantities: map[string]int{}})
	}

	items := map[string]*dtos.ItemStat{}
	tiers := map[int64]*dtos.CustomTier{}

	for _, o := range orders {
		if !IsToday(o.CreatedAt, day, loc) {
			continue
		}
		switch o.Status {
		case models.StatusPending:
			summary.PendingCount++
			continue
		case models.StatusCancelled:
			summary.CancelledCount++
			continue
		}

		summary.TotalSales += o.TotalAmount
		summary.OrderCount++

		hour := o.CreatedAt.In(loc).Hour()
		var bucket *dtos.HourlyBucket
		if hour >= firstHour && hour <= lastHour {
			bucket = &summary.Hourly[hour-firstHour]
		}

		for _, item := range o.Items {
			stat, ok := items[item.ProductID]
			if !ok {
				stat = &dtos.ItemStat{ProductID: item.ProductID, Name: item.Name}
				items[item.ProductID] = stat
			}
			stat.Quantity += item.Quantity
			stat.Amount += item.Subtotal()

			if bucket != nil {
				bucket.Quantities[item.ProductID] += item.Quantity
				bucket.Total += item.Quantity
			}

			if item.Category == models.CategoryCustom {
				tier, ok := tiers[item.Price]
				if !ok {
					tier = &dtos.CustomTier{Price: item.Price}
					tiers[item.Price] = tier
				}
				tier.Quantity += item.Quantity
				tier.Amount += item.Subtotal()
			}
		}
	}

	for _, stat := range items {
		summary.Items = append(summary.Items, *stat)
	}
	sort.Slice(summary.Items, func(i, j int) bool {
		if summary.Items[i].Quantity != summary.Items[j].Quantity {
			return summary.Items[i].Quantity > summary.Items[j].Quantity
		}
		return summary.Items[i].ProductID < summary.Items[j].ProductID
	})

	for _, tier := range tiers {
		summary.CustomTiers = append(summary.CustomTiers, *tier)
	}
	sort.Slice(summary.CustomTiers, func(i, j int) bool {
		return summary.CustomTiers[i].Price < summary.CustomTiers[j].Price
	})

	return summary
}

// AggregateHistory totals completed orders per local date, newest first.
func AggregateHistory(orders []models.Order, loc *time.Location) []dtos.DailyTotal {
	byDate := map[string]*dtos.DailyTotal{}
	for _, o := range orders {
		if o.Status != models.StatusCompleted {
			continue
		}
		date := o.CreatedAt.In(loc).Format(dateLayout)
		total, ok := byDate[date]
		if !ok {
			total = &dtos.DailyTotal{Date: date}
			byDate[date] = total
		}
		total.TotalSales += o.TotalAmount
		total.OrderCount++
	}

	history := make([]dtos.DailyTotal, 0, len(byDate))
	for _, total := range byDate {
		history = append(history, *total)
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Date > history[j].Date })
	return history
}
