package domain

import "time"

// Slot bounds for pattern files within a stage.
const (
	MinSlot = 1
	MaxSlot = 5
)

// ValidSlot reports whether n is inside the allowed slot range.
func ValidSlot(n int) bool {
	return n >= MinSlot && n <= MaxSlot
}

// Pattern is a single uploaded pattern file attached to an order stage slot.
// Slots accumulate: several files may share the same (order, stage, slot).
type Pattern struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Stage      Stage     `json:"stage"`
	Slot       int       `json:"slot"`
	FileID     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}
