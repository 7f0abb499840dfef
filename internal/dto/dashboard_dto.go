package dto

import "time"

type DashboardResponse struct {
	Applications ApplicationSummary    `json:"applications"`
	Credits      CreditBalanceResponse `json:"credits"`
	Deadlines    []UpcomingDeadline    `json:"deadlines"`
	Activity     []ActivityResponse    `json:"activity"`
}

type ApplicationSummary struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type UpcomingDeadline struct {
	ApplicationId string    `json:"application_id"`
	ProgramName   string    `json:"program_name"`
	University    string    `json:"university"`
	Deadline      time.Time `json:"deadline"`
	DaysLeft      int       `json:"days_left"`
}
