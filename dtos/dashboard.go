package dtos

type ItemStat struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Amount    int64  `json:"amount"`
}

type HourlyBucket struct {
	Hour       int            `json:"hour"`
	Quantities map[string]int `json:"quantities"`
	Total      int            `json:"total"`
}

// CustomTier groups custom-priced lines sharing one unit price.
type CustomTier struct {
	Price    int64 `json:"price"`
	Quantity int   `json:"quantity"`
	Amount   int64 `json:"amount"`
}

type DailySummary struct {
	Date           string         `json:"date"`
	TotalSales     int64          `json:"totalSales"`
	OrderCount     int            `json:"orderCount"`
	PendingCount   int            `json:"pendingCount"`
	CancelledCount int            `json:"cancelledCount"`
	Items          []ItemStat     `json:"items"`
	Hourly         []HourlyBucket `json:"hourly"`
	CustomTiers    []CustomTier   `json:"customTiers"`
}

type DailyTotal struct {
	Date       string `json:"date"`
	TotalSales int64  `json:"totalSales"`
	OrderCount int    `json:"orderCount"`
}
