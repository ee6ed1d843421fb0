package domain

type AuthPayload struct {
	UserID     string   `json:"sub"`
	Username   string   `json:"username"`
	Permission []string `json:"permission"`
}
