package dto

type SubmitClaimRequest struct {
	FoundItem        string `json:"found_item"`
	ProofDescription string `json:"proof_description"`
	LostItem         string `json:"lost_item,omitempty"`
}

type ClaimActionRequest struct {
	ItemID string `json:"itemId"`
	Reason string `json:"reason,omitempty"`
}
