package handler

// CreateOrderRequest is the POST /orders payload.
type CreateOrderRequest struct {
	OrderNumber     string `json:"order_number" validate:"required,min=1,max=120"`
	GoogleSheetLink string `json:"google_sheet_link" validate:"required"`
}

// UpdateOrderRequest is the PATCH /orders/:id payload. All fields are
// optional; at least one must be present.
type UpdateOrderRequest struct {
	OrderNumber           *string `json:"order_number"`
	GoogleSheetLink       *string `json:"google_sheet_link"`
	FinalMeasurementsLink *string `json:"final_measurements_link"`
}

// ApproveRequest is the POST /orders/:id/approve payload.
type ApproveRequest struct {
	Stage  string `json:"stage" validate:"required"`
	Status string `json:"status" validate:"required"`
}
