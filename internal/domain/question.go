package domain

import "strings"

// QuestionWantWhichOrders is the key of the question that drives the
// orders-page intercept.
const QuestionWantWhichOrders = "want_which_orders"

// Question is a single question of the online divorce interview.
type Question struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SummaryOrder int    `json:"summary_order"`
	Required     string `json:"required"`
}

func (q *Question) Validate() error {
	if strings.TrimSpace(q.Key) == "" {
		return ErrInvalidQuestionKey
	}
	return nil
}
