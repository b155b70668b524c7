package models

import "time"

// Client is a billed customer of the copy service. Quotas and Badges are
// populated only by operations that explicitly request the nested data
// (single-client lookup and the sync snapshot); plain list operations leave
// them nil.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`

	Quotas []Quota `json:"quotas,omitempty"`
	Badges []Badge `json:"badges,omitempty"`
}

// TableName returns the name of the database table
// associated with the Client model.
func (c Client) TableName() string {
	return "clients"
}
