package services

import (
	"context"
	"github.com/maxaizer/job-market-api/internal/domain/models"
	"github.com/maxaizer/job-market-api/internal/repositories"
	"github.com/samber/lo"
	"time"
)

// DashboardOverview serves the compact dashboard read model.
type DashboardOverview struct {
	postings postingsRepository
	now      func() time.Time
}

func NewDashboardOverview(postings postingsRepository, now func() time.Time) *DashboardOverview {
	return &DashboardOverview{postings: postings, now: now}
}

func (o *DashboardOverview) Summary(ctx context.Context) (models.OverviewSummary, error) {
	total, err := o.postings.CountActive(ctx)
	if err != nil {
		return models.OverviewSummary{}, err
	}

	recent, err := o.postings.CountActiveIn(ctx, repositories.TrailingWindow(o.now().UTC(), activityWindow))
	if err != nil {
		return models.OverviewSummary{}, err
	}

	salary, err := o.postings.SalaryStats(ctx)
	if err != nil {
		return models.OverviewSummary{}, err
	}

	types, err := o.postings.Distribution(ctx, repositories.ByEmploymentType, repositories.DistributionFilter{})
	if err != nil {
		return models.OverviewSummary{}, err
	}

	return models.OverviewSummary{
		TotalJobs:    total,
		RecentJobs7d: recent,
		AvgSalary:    roundedAmount(salary.Average),
		EmploymentTypes: lo.Map(types, func(row repositories.GroupCount, _ int) models.EmploymentTypeCount {
			return models.EmploymentTypeCount{EmploymentType: row.Name, Count: row.Total}
		}),
	}, nil
}

func (o *DashboardOverview) Industries(ctx context.Context, limit int) ([]models.IndustryShare, error) {
	total, err := o.postings.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := o.postings.Distribution(ctx, repositories.ByIndustry, repositories.DistributionFilter{Limit: limit})
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row repositories.GroupCount, _ int) models.IndustryShare {
		return models.IndustryShare{
			Industry:   row.Name,
			JobCount:   row.Total,
			Percentage: ratePercent(row.Total, total, overviewShare),
		}
	}), nil
}

func (o *DashboardOverview) Trends(ctx context.Context) ([]models.DailyCount, error) {
	rows, err := o.postings.DailyCounts(ctx, repositories.TrailingWindow(o.now().UTC(), repositories.Month), true)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row repositories.DailyCount, _ int) models.DailyCount {
		return models.DailyCount{Date: row.PostingDate, Count: row.JobsPosted}
	}), nil
}

func (o *DashboardOverview) RecentJobs(ctx context.Context, limit int) ([]models.RecentJob, error) {
	rows, err := o.postings.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row repositories.PostingSummary, _ int) models.RecentJob {
		return models.RecentJob{
			ID:             row.ID,
			Title:          row.Title,
			CompanyName:    row.CompanyName,
			Location:       row.Location,
			Industry:       row.Industry,
			EmploymentType: row.EmploymentType,
			JobLevel:       row.JobLevel,
			SalaryMin:      row.SalaryMin,
			SalaryMax:      row.SalaryMax,
			PostedAt:       row.PostedAt.UTC(),
		}
	}), nil
}

func (o *DashboardOverview) Locations(ctx context.Context, limit int) ([]models.LocationCount, error) {
	rows, err := o.postings.Distribution(ctx, repositories.ByLocation, repositories.DistributionFilter{Limit: limit})
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row repositories.GroupCount, _ int) models.LocationCount {
		return models.LocationCount{Location: row.Name, JobCount: row.Total}
	}), nil
}
