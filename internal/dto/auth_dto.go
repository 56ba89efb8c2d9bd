package dto

type RegisterRequest struct {
	Id              string `json:"id" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type RegisterResponse struct {
	Id string `json:"id"`
}

type LoginRequest struct {
	Id       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	SessionId string `json:"session_id"`
}
