package dtos

type OpenCashSessionInput struct {
	OpeningCash *int64 `json:"opening_cash" binding:"required,min=0"`
}

type CloseCashSessionInput struct {
	ClosingCash *int64 `json:"closing_cash" binding:"required,min=0"`
}
