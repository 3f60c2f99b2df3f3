package dto

// SendMessageRequest models POST /api/messages input. User ids are strictly
// positive, so gt=0 keeps the zero value from being conflated with "missing".
type SendMessageRequest struct {
	SenderID   int64  `json:"sender_id" binding:"required,gt=0"`
	ReceiverID int64  `json:"receiver_id" binding:"required,gt=0"`
	Content    string `json:"content" binding:"required"`
}

// PageQuery carries the shared pagination query parameters.
//
// Page is a legacy parameter: it is accepted and echoed back, but retrieval is
// cursor-chained and cannot seek to an arbitrary page number. Callers resume
// with the cursor from the previous response.
type PageQuery struct {
	Limit  int    `form:"limit"`
	Page   int    `form:"page,default=1"`
	Cursor string `form:"cursor"`
}
