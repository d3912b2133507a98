package db_models

// Session is the lightweight profile snapshot kept in redis after login.
type Session struct {
	AccountID string `json:"account_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"issued_at"`
}
