package models

import "time"

type OverviewSummary struct {
	TotalJobs       int64                 `json:"total_jobs"`
	RecentJobs7d    int64                 `json:"recent_jobs_7d"`
	AvgSalary       int64                 `json:"avg_salary"`
	EmploymentTypes []EmploymentTypeCount `json:"employment_types"`
}

type EmploymentTypeCount struct {
	EmploymentType string `json:"employment_type"`
	Count          int64  `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type RecentJob struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	CompanyName    string    `json:"company_name"`
	Location       string    `json:"location"`
	Industry       string    `json:"industry"`
	EmploymentType string    `json:"employment_type"`
	JobLevel       string    `json:"job_level"`
	SalaryMin      *float64  `json:"salary_min,omitempty"`
	SalaryMax      *float64  `json:"salary_max,omitempty"`
	PostedAt       time.Time `json:"posted_at"`
}

type LocationCount struct {
	Location string `json:"location"`
	JobCount int64  `json:"job_count"`
}
