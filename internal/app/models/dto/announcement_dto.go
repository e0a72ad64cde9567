package dto

// CreateAnnouncementRequest represents a request to post a calendar announcement
type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required" example:"Enrollment week"`
	Body     string `json:"body" example:"Enrollment runs until Friday."`
	Date     string `json:"date" binding:"required" example:"2026-09-01"`
	Audience string `json:"audience" example:"all"`
}

// UpdateAnnouncementRequest represents a request to edit an announcement
type UpdateAnnouncementRequest struct {
	Title    *string `json:"title,omitempty"`
	Body     *string `json:"body,omitempty"`
	Date     *string `json:"date,omitempty"`
	Audience *string `json:"audience,omitempty"`
}

// AnnouncementRangeQuery selects the calendar window to load
type AnnouncementRangeQuery struct {
	From string `form:"from" binding:"required" example:"2026-09-01"`
	To   string `form:"to" binding:"required" example:"2026-09-30"`
}
