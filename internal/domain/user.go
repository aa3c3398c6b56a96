package domain

import "time"

// User is a person signed in through BCeID.
type User struct {
	ID                int64      `json:"id"`
	UserGUID          string     `json:"user_guid"`
	DisplayName       string     `json:"display_name"`
	HasSeenOrdersPage bool       `json:"has_seen_orders_page"`
	HasAcceptedTerms  bool       `json:"has_accepted_terms"`
	DateJoined        time.Time  `json:"date_joined"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
}

// ToggleTerms flips the terms-accepted flag and returns the new value.
func (u *User) ToggleTerms() bool {
	u.HasAcceptedTerms = !u.HasAcceptedTerms
	return u.HasAcceptedTerms
}

// Response is a user's answer to a question.
type Response struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	QuestionKey string `json:"question_key"`
	Value       string `json:"value"`
}
