package models

// NotAvailable labels a leader slot when no group qualifies.
const NotAvailable = "N/A"

type TotalJobs struct {
	TotalJobs             int64   `json:"total_jobs"`
	JobsLastMonth         int64   `json:"jobs_last_month"`
	JobsPrevMonth         int64   `json:"jobs_prev_month"`
	GrowthPercentage      float64 `json:"growth_percentage"`
	TopIndustry           string  `json:"top_industry"`
	TopIndustryPercentage float64 `json:"top_industry_percentage"`
}

type MonthlyGrowth struct {
	NewJobsThisMonth       int64   `json:"new_jobs_this_month"`
	NewJobsPrevMonth       int64   `json:"new_jobs_prev_month"`
	GrowthPercentage       float64 `json:"growth_percentage"`
	FastestGrowingIndustry string  `json:"fastest_growing_industry"`
	FastestGrowingRate     float64 `json:"fastest_growing_rate"`
}

type AverageSalary struct {
	AvgSalary         int64  `json:"avg_salary"`
	MinSalary         int64  `json:"min_salary"`
	MaxSalary         int64  `json:"max_salary"`
	JobsWithSalary    int64  `json:"jobs_with_salary"`
	TopPayingIndustry string `json:"top_paying_industry"`
	TopPayingAvg      int64  `json:"top_paying_avg"`
}

type ActiveCompanies struct {
	TotalCompanies         int64   `json:"total_companies"`
	CompaniesThisMonth     int64   `json:"companies_this_month"`
	CompaniesPrevMonth     int64   `json:"companies_prev_month"`
	GrowthPercentage       float64 `json:"growth_percentage"`
	MostActiveIndustry     string  `json:"most_active_industry"`
	CompaniesInTopIndustry int64   `json:"companies_in_top_industry"`
}

type IndustryShare struct {
	Industry   string  `json:"industry"`
	JobCount   int64   `json:"job_count"`
	Percentage float64 `json:"percentage"`
}

type JobTypeShare struct {
	JobType    string  `json:"job_type"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type LocationShare struct {
	Location   string  `json:"location"`
	JobCount   int64   `json:"job_count"`
	Percentage float64 `json:"percentage"`
}

type JobLevelShare struct {
	JobLevel   string  `json:"job_level"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type PostingTrend struct {
	Date     string `json:"date"`
	JobCount int64  `json:"job_count"`
}

type SkillShare struct {
	Skill      string  `json:"skill"`
	Category   string  `json:"category"`
	JobCount   int64   `json:"job_count"`
	Percentage float64 `json:"percentage"`
}

type DailyActivity struct {
	Date            string `json:"date"`
	JobsPosted      int64  `json:"jobs_posted"`
	CompaniesActive int64  `json:"companies_active"`
}

type GrowingSegment struct {
	Segment      string  `json:"segment"`
	CurrentMonth int64   `json:"current_month"`
	PrevMonth    int64   `json:"prev_month"`
	GrowthRate   float64 `json:"growth_rate"`
}

type IndustrySalary struct {
	Industry  string `json:"industry"`
	MinSalary int64  `json:"min_salary"`
	MaxSalary int64  `json:"max_salary"`
	AvgSalary int64  `json:"avg_salary"`
	JobCount  int64  `json:"job_count"`
}
