package models

// Stats is the dashboard summary, recomputed from scratch on every load.
// Pending counts appointments still waiting on requirements, mirroring the
// dashboard cards.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
}

// ServiceStat pairs a service display name with its appointment count.
// Derived per load, never persisted.
type ServiceStat struct {
	ServiceName string `json:"service_name"`
	Count       int    `json:"count"`
}

// ChartSeries is a label/count pair list shaped for the dashboard charts.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}
