package request

type RegisterFCMTokenRequest struct {
	Token string `json:"token" validate:"required,min=16"`
}
