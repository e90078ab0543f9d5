package services

import (
	"cmp"
	"context"
	"github.com/maxaizer/job-market-api/internal/domain/models"
	"github.com/maxaizer/job-market-api/internal/entities"
	"github.com/maxaizer/job-market-api/internal/repositories"
	"github.com/samber/lo"
	"slices"
	"time"
)

const (
	topIndustriesLimit  = 10
	topLocationsLimit   = 10
	topSkillsLimit      = 15
	fastestGrowingLimit = 5
	salaryPreviewLimit  = 8
	activityWindow      = 7 * repositories.Day
)

type postingsRepository interface {
	CountActive(ctx context.Context) (int64, error)
	CountActiveIn(ctx context.Context, window repositories.Window) (int64, error)
	PeriodTotals(ctx context.Context, periods repositories.Periods) (repositories.PeriodCounts, error)
	CompanyPeriodTotals(ctx context.Context, periods repositories.Periods) (repositories.PeriodCounts, error)
	IndustryPeriodCounts(ctx context.Context, periods repositories.Periods) ([]repositories.GroupPeriodCounts, error)
	IndustryCompanyCounts(ctx context.Context, window repositories.Window, limit int) ([]repositories.GroupCount, error)
	Distribution(ctx context.Context, dimension repositories.Dimension, filter repositories.DistributionFilter) ([]repositories.GroupCount, error)
	SkillDistribution(ctx context.Context, minSupport int64, limit int) ([]repositories.SkillCount, error)
	SalaryStats(ctx context.Context) (repositories.SalaryStats, error)
	IndustrySalaries(ctx context.Context, minSupport int64, limit int) ([]repositories.GroupSalaryStats, error)
	DailyCounts(ctx context.Context, window repositories.Window, activeOnly bool) ([]repositories.DailyCount, error)
	Recent(ctx context.Context, limit int) ([]repositories.PostingSummary, error)
}

// MarketAnalytics computes the KPI cards, charts and widgets of the market dashboard.
type MarketAnalytics struct {
	postings postingsRepository
	now      func() time.Time
}

func NewMarketAnalytics(postings postingsRepository, now func() time.Time) *MarketAnalytics {
	return &MarketAnalytics{postings: postings, now: now}
}

func (a *MarketAnalytics) periods() repositories.Periods {
	return repositories.TrailingPeriods(a.now().UTC(), repositories.Month)
}

func (a *MarketAnalytics) TotalJobs(ctx context.Context) (models.TotalJobs, error) {
	periods := a.periods()
	counts, err := a.postings.PeriodTotals(ctx, periods)
	if err != nil {
		return models.TotalJobs{}, err
	}

	current := periods.Current()
	top, err := a.postings.Distribution(ctx, repositories.ByIndustry,
		repositories.DistributionFilter{Window: &current, Limit: 1})
	if err != nil {
		return models.TotalJobs{}, err
	}

	result := models.TotalJobs{
		TotalJobs:        counts.Total,
		JobsLastMonth:    counts.CurrentCount,
		JobsPrevMonth:    counts.PreviousCount,
		GrowthPercentage: growthRate(counts.CurrentCount, counts.PreviousCount),
		TopIndustry:      models.NotAvailable,
	}
	if len(top) > 0 {
		result.TopIndustry = top[0].Name
		result.TopIndustryPercentage = ratePercent(top[0].Total, counts.CurrentCount, sharePlaces)
	}
	return result, nil
}

func (a *MarketAnalytics) MonthlyGrowth(ctx context.Context) (models.MonthlyGrowth, error) {
	periods := a.periods()
	counts, err := a.postings.PeriodTotals(ctx, periods)
	if err != nil {
		return models.MonthlyGrowth{}, err
	}

	segments, err := a.growingIndustries(ctx, periods)
	if err != nil {
		return models.MonthlyGrowth{}, err
	}

	result := models.MonthlyGrowth{
		NewJobsThisMonth:       counts.CurrentCount,
		NewJobsPrevMonth:       counts.PreviousCount,
		GrowthPercentage:       growthRate(counts.CurrentCount, counts.PreviousCount),
		FastestGrowingIndustry: models.NotAvailable,
	}
	if len(segments) > 0 {
		result.FastestGrowingIndustry = segments[0].Segment
		result.FastestGrowingRate = segments[0].GrowthRate
	}
	return result, nil
}

func (a *MarketAnalytics) AverageSalary(ctx context.Context) (models.AverageSalary, error) {
	stats, err := a.postings.SalaryStats(ctx)
	if err != nil {
		return models.AverageSalary{}, err
	}

	top, err := a.postings.IndustrySalaries(ctx, minSupport, 1)
	if err != nil {
		return models.AverageSalary{}, err
	}

	result := models.AverageSalary{
		AvgSalary:         roundedAmount(stats.Average),
		MinSalary:         truncatedAmount(stats.Minimum),
		MaxSalary:         truncatedAmount(stats.Maximum),
		JobsWithSalary:    stats.Total,
		TopPayingIndustry: models.NotAvailable,
	}
	if len(top) > 0 {
		result.TopPayingIndustry = top[0].Name
		result.TopPayingAvg = roundedAmount(top[0].Average)
	}
	return result, nil
}

func (a *MarketAnalytics) ActiveCompanies(ctx context.Context) (models.ActiveCompanies, error) {
	periods := a.periods()
	counts, err := a.postings.CompanyPeriodTotals(ctx, periods)
	if err != nil {
		return models.ActiveCompanies{}, err
	}

	top, err := a.postings.IndustryCompanyCounts(ctx, periods.Current(), 1)
	if err != nil {
		return models.ActiveCompanies{}, err
	}

	result := models.ActiveCompanies{
		TotalCompanies:     counts.Total,
		CompaniesThisMonth: counts.CurrentCount,
		CompaniesPrevMonth: counts.PreviousCount,
		GrowthPercentage:   growthRate(counts.CurrentCount, counts.PreviousCount),
		MostActiveIndustry: models.NotAvailable,
	}
	if len(top) > 0 {
		result.MostActiveIndustry = top[0].Name
		result.CompaniesInTopIndustry = top[0].Total
	}
	return result, nil
}

func (a *MarketAnalytics) TopIndustries(ctx context.Context) ([]models.IndustryShare, error) {
	total, rows, err := a.distribution(ctx, repositories.ByIndustry,
		repositories.DistributionFilter{MinSupport: minSupport, Limit: topIndustriesLimit})
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row repositories.GroupCount, _ int) models.IndustryShare {
		return models.IndustryShare{
			Industry:   row.Name,
			JobCount:   row.Total,
			Percentage: ratePercent(row.Total, total, sharePlaces),
		}
	}), nil
}

func (a *MarketAnalytics) JobTypeDistribution(ctx context.Context) ([]models.JobTypeShare, error) {
	total, rows, err := a.distribution(ctx, repositories.ByEmploymentType, repositories.DistributionFilter{})
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row repositories.GroupCount, _ int) models.JobTypeShare {
		return models.JobTypeShare{
			JobType:    row.Name,
			Count:      row.Total,
			Percentage: ratePercent(row.Total, total, sharePlaces),
		}
	}), nil
}

func (a *MarketAnalytics) LocationDistribution(ctx context.Context) ([]models.LocationShare, error) {
	total, rows, err := a.distribution(ctx, repositories.ByLocation,
		repositories.DistributionFilter{MinSupport: minSupport, Limit: topLocationsLimit})
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row repositories.GroupCount, _ int) models.LocationShare {
		return models.LocationShare{
			Location:   row.Name,
			JobCount:   row.Total,
			Percentage: ratePercent(row.Total, total, sharePlaces),
		}
	}), nil
}

// JobLevelDistribution is ordered by seniority, not by count.
func (a *MarketAnalytics) JobLevelDistribution(ctx context.Context) ([]models.JobLevelShare, error) {
	total, rows, err := a.distribution(ctx, repositories.ByJobLevel, repositories.DistributionFilter{})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(rows, func(x, y repositories.GroupCount) int {
		return cmp.Compare(entities.SeniorityRank(x.Name), entities.SeniorityRank(y.Name))
	})

	return lo.Map(rows, func(row repositories.GroupCount, _ int) models.JobLevelShare {
		return models.JobLevelShare{
			JobLevel:   row.Name,
			Count:      row.Total,
			Percentage: ratePercent(row.Total, total, sharePlaces),
		}
	}), nil
}

func (a *MarketAnalytics) PostingTrends(ctx context.Context) ([]models.PostingTrend, error) {
	window := repositories.TrailingWindow(a.now().UTC(), repositories.Month)
	rows, err := a.postings.DailyCounts(ctx, window, true)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row repositories.DailyCount, _ int) models.PostingTrend {
		return models.PostingTrend{Date: row.PostingDate, JobCount: row.JobsPosted}
	}), nil
}

func (a *MarketAnalytics) TopSkills(ctx context.Context) ([]models.SkillShare, error) {
	total, err := a.postings.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := a.postings.SkillDistribution(ctx, minSupport, topSkillsLimit)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row repositories.SkillCount, _ int) models.SkillShare {
		return models.SkillShare{
			Skill:      row.Name,
			Category:   row.Category,
			JobCount:   row.Total,
			Percentage: ratePercent(row.Total, total, sharePlaces),
		}
	}), nil
}

// RecentActivity covers inactive postings too, newest day first.
func (a *MarketAnalytics) RecentActivity(ctx context.Context) ([]models.DailyActivity, error) {
	window := repositories.TrailingWindow(a.now().UTC(), activityWindow)
	rows, err := a.postings.DailyCounts(ctx, window, false)
	if err != nil {
		return nil, err
	}

	activity := lo.Map(rows, func(row repositories.DailyCount, _ int) models.DailyActivity {
		return models.DailyActivity{
			Date:            row.PostingDate,
			JobsPosted:      row.JobsPosted,
			CompaniesActive: row.CompaniesActive,
		}
	})
	slices.SortFunc(activity, func(x, y models.DailyActivity) int {
		return cmp.Compare(y.Date, x.Date)
	})
	return activity, nil
}

func (a *MarketAnalytics) FastestGrowing(ctx context.Context) ([]models.GrowingSegment, error) {
	segments, err := a.growingIndustries(ctx, a.periods())
	if err != nil {
		return nil, err
	}

	growing := lo.Filter(segments, func(segment models.GrowingSegment, _ int) bool {
		return segment.GrowthRate > 0
	})
	if len(growing) > fastestGrowingLimit {
		growing = growing[:fastestGrowingLimit]
	}
	return growing, nil
}

func (a *MarketAnalytics) SalaryPreview(ctx context.Context) ([]models.IndustrySalary, error) {
	rows, err := a.postings.IndustrySalaries(ctx, minSupport, salaryPreviewLimit)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row repositories.GroupSalaryStats, _ int) models.IndustrySalary {
		return models.IndustrySalary{
			Industry:  row.Name,
			MinSalary: truncatedAmount(row.Minimum),
			MaxSalary: truncatedAmount(row.Maximum),
			AvgSalary: roundedAmount(row.Average),
			JobCount:  row.Total,
		}
	}), nil
}

func (a *MarketAnalytics) distribution(ctx context.Context, dimension repositories.Dimension,
	filter repositories.DistributionFilter) (int64, []repositories.GroupCount, error) {

	total, err := a.postings.CountActive(ctx)
	if err != nil {
		return 0, nil, err
	}

	rows, err := a.postings.Distribution(ctx, dimension, filter)
	if err != nil {
		return 0, nil, err
	}
	return total, rows, nil
}

// growingIndustries ranks industries with a non-empty previous period by growth rate.
func (a *MarketAnalytics) growingIndustries(ctx context.Context, periods repositories.Periods) ([]models.GrowingSegment, error) {
	rows, err := a.postings.IndustryPeriodCounts(ctx, periods)
	if err != nil {
		return nil, err
	}

	segments := lo.FilterMap(rows, func(row repositories.GroupPeriodCounts, _ int) (models.GrowingSegment, bool) {
		return models.GrowingSegment{
			Segment:      row.Name,
			CurrentMonth: row.CurrentCount,
			PrevMonth:    row.PreviousCount,
			GrowthRate:   growthRate(row.CurrentCount, row.PreviousCount),
		}, row.PreviousCount > 0
	})

	slices.SortFunc(segments, func(x, y models.GrowingSegment) int {
		if c := cmp.Compare(y.GrowthRate, x.GrowthRate); c != 0 {
			return c
		}
		return cmp.Compare(x.Segment, y.Segment)
	})
	return segments, nil
}
