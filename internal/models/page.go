package models

// Pagination describes an offset window over a filtered result set
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Page is a window of results plus the full filtered count
type Page[T any] struct {
	Items []*T       `json:"data"`
	Meta  Pagination `json:"pagination"`
}

// DashboardStats summarises the admin dashboard
type DashboardStats struct {
	Articles           map[PublicationStatus]int `json:"articles"`
	Content            int                       `json:"content"`
	PendingComments    int                       `json:"pending_comments"`
	PendingReviews     int                       `json:"pending_reviews"`
	ActiveSubscribers  int                       `json:"active_subscribers"`
	NewContactMessages int                       `json:"new_contact_messages"`
}
