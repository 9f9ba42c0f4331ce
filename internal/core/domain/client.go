package domain

import "time"

// Client is a customer of the operator. Every client carries a short
// URL-safe submission code addressing its public intake form and a 6-digit
// PIN gating submissions through it.
type Client struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	SubmissionCode string    `json:"submission_code" bson:"submission_code"`
	PIN            string    `json:"-" bson:"pin"`
	Archived       bool      `json:"archived" bson:"archived"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// PublicClient is the projection exposed on the unauthenticated path.
// It never carries the PIN.
type PublicClient struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SubmissionCode string `json:"submission_code"`
	PINRequired    bool   `json:"pin_required"`
}

// Public returns the public-safe projection of the client.
func (c *Client) Public() PublicClient {
	return PublicClient{
		ID:             c.ID,
		Name:           c.Name,
		SubmissionCode: c.SubmissionCode,
		PINRequired:    true,
	}
}
