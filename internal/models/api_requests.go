package models

// LoginRequest is the login form. Password is collected by the client but
// never checked against anything.
type LoginRequest struct {
	Username    string      `json:"username" validate:"required,max=64"`
	Password    string      `json:"password" validate:"max=128"`
	PlayerCount PlayerCount `json:"playerCount" validate:"oneof=2 4"`
}

type ShareRequest struct {
	Username    string      `json:"username" validate:"required,max=64"`
	PlayerCount PlayerCount `json:"playerCount" validate:"oneof=2 4"`
}

type ShareResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}
