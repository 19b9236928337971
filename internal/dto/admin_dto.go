package dto

type SetRoleRequest struct {
	Role string `json:"role"`
}
