package request

// Callable command payloads. Field validation is deliberately left to
// the command service so the permission check always runs first.

type DeleteUserRequest struct {
	UID string `json:"uid"`
}

type ChangeUserRoleRequest struct {
	UID     string `json:"uid"`
	NewRole string `json:"newRole"`
}
