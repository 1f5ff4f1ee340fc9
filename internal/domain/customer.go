package domain

import "time"

// CustomerProfile is a cleansed CRM customer. Exactly one profile exists per
// customer ID after cleansing.
type CustomerProfile struct {
	ID            int64         `json:"customer_id"`
	Key           string        `json:"customer_key"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	MaritalStatus MaritalStatus `json:"marital_status"`
	Gender        Gender        `json:"gender"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CustomerDemographic is a cleansed ERP demographic record keyed by the
// normalized customer key.
type CustomerDemographic struct {
	Key       string     `json:"customer_key"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Gender    Gender     `json:"gender"`
}

// CustomerLocation is a cleansed ERP location record keyed by the normalized
// customer key.
type CustomerLocation struct {
	Key     string `json:"customer_key"`
	Country string `json:"country"`
}
