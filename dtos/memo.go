package dtos

type CreateMemoInput struct {
	Text string `json:"text" binding:"required"`
}
