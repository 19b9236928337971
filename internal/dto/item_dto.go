package dto

// CreateLostItemRequest carries the reporter-supplied fields. Approval state is
// never taken from the client; an approval_status in the body is ignored.
type CreateLostItemRequest struct {
	Name         string `json:"name"`
	CategoryID   string `json:"category_id"`
	LostLocation string `json:"lost_location"`
	Description  string `json:"description"`
	DateLost     string `json:"date_lost"`
	ImageURL     string `json:"image_url,omitempty"`
	ContactInfo  string `json:"contact_info"`
}

type CreateFoundItemRequest struct {
	Name          string `json:"name"`
	CategoryID    string `json:"category_id"`
	FoundLocation string `json:"found_location"`
	Description   string `json:"description"`
	DateFound     string `json:"date_found"`
	ImageURL      string `json:"image_url,omitempty"`
	ContactInfo   string `json:"contact_info"`
}

// ReviewRequest is the staff approve/reject payload. Type selects the
// collection ("lost" or "found"); Reason is required for rejection.
type ReviewRequest struct {
	ItemID string `json:"itemId"`
	Type   string `json:"type"`
	Reason string `json:"reason,omitempty"`
}
