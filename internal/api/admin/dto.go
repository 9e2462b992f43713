package admin

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"notblank"`
	Password string `json:"password" form:"password" validate:"notblank"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresAt int64  `json:"expiresAt"`
}
