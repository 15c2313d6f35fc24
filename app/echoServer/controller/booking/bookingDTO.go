package booking

import "shareit/model"

type CreateBookingReq struct {
	ItemID int64          `json:"itemId" validate:"required"`
	Start  model.DateTime `json:"start"`
	End    model.DateTime `json:"end"`
}
