package models

// Enquiry statuses. Transitions are staff-driven; the backend accepts any of
// these in any order.
const (
	EnquiryStatusNew       = "new"
	EnquiryStatusPending   = "pending"
	EnquiryStatusResponded = "responded"
	EnquiryStatusCompleted = "completed"
)

// EnquiryStatuses lists every status the dashboard recognises.
var EnquiryStatuses = []string{
	EnquiryStatusNew,
	EnquiryStatusPending,
	EnquiryStatusResponded,
	EnquiryStatusCompleted,
}

func IsValidEnquiryStatus(status string) bool {
	for _, s := range EnquiryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Enquiry is a customer product enquiry record.
type Enquiry struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	ProductTitle string `json:"product_title"`
	Status       string `json:"status"`
	Response     string `json:"response,omitempty"`
	RespondedAt  string `json:"responded_at,omitempty"`
	Phone        string `json:"phone,omitempty"`
	IsDeleted    int    `json:"is_deleted"`
	CreatedAt    string `json:"created_at"`
}
