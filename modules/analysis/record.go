package analysis

import "time"

// Results holds the outcome of a single diagnostic analysis.
type Results struct {
	Diagnosis  string  `bson:"diagnosis" json:"diagnosis"`
	Confidence float64 `bson:"confidence,omitempty" json:"confidence,omitempty"`
	Notes      string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Record is one stored analysis, stamped with the submitting user's email
// and the server-side creation time.
type Record struct {
	ID        string    `bson:"_id" json:"id"`
	UserEmail string    `bson:"user_email" json:"userEmail"`
	Results   Results   `bson:"results" json:"results"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Counts is the aggregate served by the category-counts endpoint.
type Counts struct {
	TodayCount  int64 `json:"todayCount"`
	TotalCount  int64 `json:"totalCount"`
	CancerCount int64 `json:"cancerCount"`
	NeuroCount  int64 `json:"neuroCount"`
}
