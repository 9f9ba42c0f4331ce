package handler

import "time"

// publicSubmitRequest deliberately carries no validate tags: PIN problems
// must come back as 403 from the intake service, not 400 from payload
// validation, and title rules live in the request service.
type publicSubmitRequest struct {
	PIN          string     `json:"pin"`
	Title        string     `json:"title"`
	Details      string     `json:"details"`
	CustomerName string     `json:"customer_name"`
	DueDate      *time.Time `json:"due_date"`
}
