package api

import (
	"context"
	"github.com/maxaizer/job-market-api/internal/domain/models"
)

const (
	MarketPrefix   = "/api/v1/analytics/dashboard"
	OverviewPrefix = "/api/v1/dashboard"
)

type ComputeFunc func(ctx context.Context, params Params) (any, error)

// Report is a named aggregation served by one GET route.
type Report struct {
	Name           string
	Path           string
	FailureMessage string
	SuccessMessage string
	DefaultLimit   int
	Compute        ComputeFunc
}

type MarketReports interface {
	TotalJobs(ctx context.Context) (models.TotalJobs, error)
	MonthlyGrowth(ctx context.Context) (models.MonthlyGrowth, error)
	AverageSalary(ctx context.Context) (models.AverageSalary, error)
	ActiveCompanies(ctx context.Context) (models.ActiveCompanies, error)
	TopIndustries(ctx context.Context) ([]models.IndustryShare, error)
	JobTypeDistribution(ctx context.Context) ([]models.JobTypeShare, error)
	LocationDistribution(ctx context.Context) ([]models.LocationShare, error)
	JobLevelDistribution(ctx context.Context) ([]models.JobLevelShare, error)
	PostingTrends(ctx context.Context) ([]models.PostingTrend, error)
	TopSkills(ctx context.Context) ([]models.SkillShare, error)
	RecentActivity(ctx context.Context) ([]models.DailyActivity, error)
	FastestGrowing(ctx context.Context) ([]models.GrowingSegment, error)
	SalaryPreview(ctx context.Context) ([]models.IndustrySalary, error)
}

type OverviewReports interface {
	Summary(ctx context.Context) (models.OverviewSummary, error)
	Industries(ctx context.Context, limit int) ([]models.IndustryShare, error)
	Trends(ctx context.Context) ([]models.DailyCount, error)
	RecentJobs(ctx context.Context, limit int) ([]models.RecentJob, error)
	Locations(ctx context.Context, limit int) ([]models.LocationCount, error)
}

func simple[T any](compute func(ctx context.Context) (T, error)) ComputeFunc {
	return func(ctx context.Context, _ Params) (any, error) {
		return compute(ctx)
	}
}

func limited[T any](compute func(ctx context.Context, limit int) (T, error)) ComputeFunc {
	return func(ctx context.Context, params Params) (any, error) {
		return compute(ctx, params.Limit)
	}
}

func MarketCatalog(market MarketReports) []Report {
	return withPrefix(MarketPrefix, []Report{
		{Name: "summary/total-jobs", FailureMessage: "Failed to fetch total jobs data",
			Compute: simple(market.TotalJobs)},
		{Name: "summary/monthly-growth", FailureMessage: "Failed to fetch monthly growth data",
			Compute: simple(market.MonthlyGrowth)},
		{Name: "summary/avg-salary", FailureMessage: "Failed to fetch average salary data",
			Compute: simple(market.AverageSalary)},
		{Name: "summary/active-companies", FailureMessage: "Failed to fetch active companies data",
			Compute: simple(market.ActiveCompanies)},
		{Name: "charts/top-industries", FailureMessage: "Failed to fetch top industries data",
			Compute: simple(market.TopIndustries)},
		{Name: "charts/job-type-distribution", FailureMessage: "Failed to fetch job type distribution data",
			Compute: simple(market.JobTypeDistribution)},
		{Name: "charts/location-distribution", FailureMessage: "Failed to fetch location distribution data",
			Compute: simple(market.LocationDistribution)},
		{Name: "charts/job-level-distribution", FailureMessage: "Failed to fetch job level distribution data",
			Compute: simple(market.JobLevelDistribution)},
		{Name: "charts/posting-trends", FailureMessage: "Failed to fetch posting trends data",
			Compute: simple(market.PostingTrends)},
		{Name: "charts/top-skills", FailureMessage: "Failed to fetch top skills data",
			Compute: simple(market.TopSkills)},
		{Name: "widgets/recent-activity", FailureMessage: "Failed to fetch recent activity data",
			Compute: simple(market.RecentActivity)},
		{Name: "widgets/fastest-growing", FailureMessage: "Failed to fetch fastest growing segments data",
			Compute: simple(market.FastestGrowing)},
		{Name: "widgets/salary-preview", FailureMessage: "Failed to fetch salary preview data",
			Compute: simple(market.SalaryPreview)},
	})
}

func OverviewCatalog(overview OverviewReports) []Report {
	return withPrefix(OverviewPrefix, []Report{
		{Name: "summary", FailureMessage: "Failed to retrieve dashboard summary",
			SuccessMessage: "Dashboard summary retrieved successfully", Compute: simple(overview.Summary)},
		{Name: "industries", FailureMessage: "Failed to retrieve industries",
			SuccessMessage: "Top industries retrieved successfully", DefaultLimit: 5,
			Compute: limited(overview.Industries)},
		{Name: "trends", FailureMessage: "Failed to retrieve trends",
			SuccessMessage: "Posting trends retrieved successfully", Compute: simple(overview.Trends)},
		{Name: "recent-jobs", FailureMessage: "Failed to retrieve recent jobs",
			SuccessMessage: "Recent jobs retrieved successfully", DefaultLimit: 10,
			Compute: limited(overview.RecentJobs)},
		{Name: "locations", FailureMessage: "Failed to retrieve locations",
			SuccessMessage: "Jobs by location retrieved successfully", DefaultLimit: 10,
			Compute: limited(overview.Locations)},
	})
}

func withPrefix(prefix string, reports []Report) []Report {
	for i := range reports {
		reports[i].Path = prefix + "/" + reports[i].Name
	}
	return reports
}
