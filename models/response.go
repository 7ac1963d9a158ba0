package models

type RegisterResponse struct {
	ID       int    `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
}

type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type MeResponse struct {
	ID       int    `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
}

type BalanceResponse struct {
	Balance int64 `json:"balance" example:"500000"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"error"`
}
