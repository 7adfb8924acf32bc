package domain

type ClicksByDay struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type AnalyticsSummary struct {
	Slug        string           `json:"slug"`
	TargetURL   string           `json:"target_url"`
	TotalClicks int64            `json:"total_clicks"`
	ClicksByDay []ClicksByDay    `json:"clicks_by_day"`
	Countries   map[string]int64 `json:"countries"`
	Devices     map[string]int64 `json:"devices"`
	Referrers   map[string]int64 `json:"referrers"`
}
