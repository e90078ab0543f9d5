package repositories

import (
	"context"
	"github.com/maxaizer/job-market-api/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"time"
)

type PeriodCounts struct {
	Total         int64
	CurrentCount  int64
	PreviousCount int64
}

type GroupPeriodCounts struct {
	Name          string
	CurrentCount  int64
	PreviousCount int64
}

type GroupCount struct {
	Name  string
	Total int64
}

type SkillCount struct {
	Name     string
	Category string
	Total    int64
}

type SalaryStats struct {
	Average *float64
	Minimum *float64
	Maximum *float64
	Total   int64
}

type GroupSalaryStats struct {
	Name    string
	Average *float64
	Minimum *float64
	Maximum *float64
	Total   int64
}

type DailyCount struct {
	PostingDate     string
	JobsPosted      int64
	CompaniesActive int64
}

type PostingSummary struct {
	ID             int64
	Title          string
	CompanyName    string
	Location       string
	Industry       string
	EmploymentType string
	JobLevel       string
	SalaryMin      *float64
	SalaryMax      *float64
	PostedAt       time.Time
}

// Dimension is a label a posting can be grouped by.
type Dimension struct {
	name    string
	join    string
	label   string
	groupBy string
}

var (
	ByIndustry = Dimension{
		name:    "industry",
		join:    "JOIN industries ON industries.id = jobs.industry_id",
		label:   "industries.name",
		groupBy: "industries.id, industries.name",
	}
	ByLocation = Dimension{
		name:    "location",
		join:    "JOIN locations ON locations.id = jobs.location_id",
		label:   "locations.city",
		groupBy: "locations.city",
	}
	ByEmploymentType = Dimension{
		name:    "employment type",
		join:    "JOIN employment_types ON employment_types.id = jobs.employment_type_id",
		label:   "employment_types.name",
		groupBy: "employment_types.id, employment_types.name",
	}
	ByJobLevel = Dimension{
		name:    "job level",
		join:    "JOIN job_levels ON job_levels.id = jobs.job_level_id",
		label:   "job_levels.name",
		groupBy: "job_levels.id, job_levels.name",
	}
)

type DistributionFilter struct {
	Window     *Window
	MinSupport int64
	Limit      int
}

type Postings struct {
	db *gorm.DB
}

func NewPostingsRepository(db *gorm.DB) *Postings {
	return &Postings{db: db}
}

func (p *Postings) active(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).Model(&entities.Job{}).Where("jobs.is_active = ?", true)
}

func (p *Postings) withSalary(ctx context.Context) *gorm.DB {
	return p.active(ctx).
		Where("jobs.salary_min IS NOT NULL AND jobs.salary_max IS NOT NULL AND jobs.salary_min > 0")
}

func (p *Postings) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := p.active(ctx).Count(&count).Error
	return count, errors.Wrap(err, "count active postings")
}

func (p *Postings) CountActiveIn(ctx context.Context, window Window) (int64, error) {
	var count int64
	err := p.active(ctx).
		Where(p.within("jobs.posted_at"), window.From, window.To).
		Count(&count).Error
	return count, errors.Wrap(err, "count active postings in window")
}

// PeriodTotals counts all active postings and those posted in each period.
func (p *Postings) PeriodTotals(ctx context.Context, periods Periods) (PeriodCounts, error) {
	within := p.within("jobs.posted_at")
	var counts PeriodCounts
	err := p.active(ctx).
		Select("COUNT(jobs.id) AS total, "+
			"COUNT(CASE WHEN "+within+" THEN 1 END) AS current_count, "+
			"COUNT(CASE WHEN "+within+" THEN 1 END) AS previous_count",
			periods.CurrentStart, periods.End, periods.PreviousStart, periods.CurrentStart).
		Scan(&counts).Error
	return counts, errors.Wrap(err, "count postings per period")
}

// CompanyPeriodTotals counts distinct companies with active postings overall and per period.
func (p *Postings) CompanyPeriodTotals(ctx context.Context, periods Periods) (PeriodCounts, error) {
	within := p.within("jobs.posted_at")
	var counts PeriodCounts
	err := p.active(ctx).
		Select("COUNT(DISTINCT jobs.company_id) AS total, "+
			"COUNT(DISTINCT CASE WHEN "+within+" THEN jobs.company_id END) AS current_count, "+
			"COUNT(DISTINCT CASE WHEN "+within+" THEN jobs.company_id END) AS previous_count",
			periods.CurrentStart, periods.End, periods.PreviousStart, periods.CurrentStart).
		Scan(&counts).Error
	return counts, errors.Wrap(err, "count companies per period")
}

// IndustryPeriodCounts returns per-industry active posting counts for both periods.
func (p *Postings) IndustryPeriodCounts(ctx context.Context, periods Periods) ([]GroupPeriodCounts, error) {
	within := p.within("jobs.posted_at")
	var rows []GroupPeriodCounts
	err := p.active(ctx).
		Select(ByIndustry.label+" AS name, "+
			"COUNT(CASE WHEN "+within+" THEN 1 END) AS current_count, "+
			"COUNT(CASE WHEN "+within+" THEN 1 END) AS previous_count",
			periods.CurrentStart, periods.End, periods.PreviousStart, periods.CurrentStart).
		Joins(ByIndustry.join).
		Group(ByIndustry.groupBy).
		Scan(&rows).Error
	return rows, errors.Wrap(err, "count industry postings per period")
}

// IndustryCompanyCounts ranks industries by distinct companies posting in the window.
func (p *Postings) IndustryCompanyCounts(ctx context.Context, window Window, limit int) ([]GroupCount, error) {
	var rows []GroupCount
	err := p.active(ctx).
		Select(ByIndustry.label+" AS name, COUNT(DISTINCT jobs.company_id) AS total").
		Joins(ByIndustry.join).
		Where(p.within("jobs.posted_at"), window.From, window.To).
		Group(ByIndustry.groupBy).
		Order("total DESC").
		Order(ByIndustry.label + " ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, errors.Wrap(err, "count companies per industry")
}

// Distribution groups active postings by the dimension, largest groups first.
func (p *Postings) Distribution(ctx context.Context, dimension Dimension, filter DistributionFilter) ([]GroupCount, error) {
	var rows []GroupCount
	query := p.active(ctx).
		Select(dimension.label + " AS name, COUNT(jobs.id) AS total").
		Joins(dimension.join)

	if filter.Window != nil {
		query = query.Where(p.within("jobs.posted_at"), filter.Window.From, filter.Window.To)
	}

	query = query.Group(dimension.groupBy)
	if filter.MinSupport > 0 {
		query = query.Having("COUNT(jobs.id) >= ?", filter.MinSupport)
	}

	query = query.Order("total DESC").Order(dimension.label + " ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	err := query.Scan(&rows).Error
	return rows, errors.Wrapf(err, "query %s distribution", dimension.name)
}

// SkillDistribution counts distinct active postings per skill.
func (p *Postings) SkillDistribution(ctx context.Context, minSupport int64, limit int) ([]SkillCount, error) {
	var rows []SkillCount
	err := p.db.WithContext(ctx).
		Table("skills").
		Select("skills.name AS name, skills.category AS category, COUNT(DISTINCT job_skills.job_id) AS total").
		Joins("JOIN job_skills ON job_skills.skill_id = skills.id").
		Joins("JOIN jobs ON jobs.id = job_skills.job_id").
		Where("jobs.is_active = ?", true).
		Group("skills.id, skills.name, skills.category").
		Having("COUNT(DISTINCT job_skills.job_id) >= ?", minSupport).
		Order("total DESC").
		Order("skills.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, errors.Wrap(err, "query skill distribution")
}

func (p *Postings) SalaryStats(ctx context.Context) (SalaryStats, error) {
	var stats SalaryStats
	err := p.withSalary(ctx).
		Select("AVG((jobs.salary_min + jobs.salary_max) / 2.0) AS average, " +
			"MIN(jobs.salary_min) AS minimum, MAX(jobs.salary_max) AS maximum, COUNT(jobs.id) AS total").
		Scan(&stats).Error
	return stats, errors.Wrap(err, "query salary stats")
}

// IndustrySalaries ranks industries by average salary midpoint.
func (p *Postings) IndustrySalaries(ctx context.Context, minSupport int64, limit int) ([]GroupSalaryStats, error) {
	var rows []GroupSalaryStats
	err := p.withSalary(ctx).
		Select(ByIndustry.label+" AS name, "+
			"AVG((jobs.salary_min + jobs.salary_max) / 2.0) AS average, "+
			"MIN(jobs.salary_min) AS minimum, MAX(jobs.salary_max) AS maximum, COUNT(jobs.id) AS total").
		Joins(ByIndustry.join).
		Group(ByIndustry.groupBy).
		Having("COUNT(jobs.id) >= ?", minSupport).
		Order("average DESC").
		Order(ByIndustry.label + " ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, errors.Wrap(err, "query industry salaries")
}

// DailyCounts buckets postings in the window by UTC calendar date.
func (p *Postings) DailyCounts(ctx context.Context, window Window, activeOnly bool) ([]DailyCount, error) {
	var rows []DailyCount
	day := p.dateOf("jobs.posted_at")

	query := p.db.WithContext(ctx).Model(&entities.Job{})
	if activeOnly {
		query = query.Where("jobs.is_active = ?", true)
	}

	err := query.
		Select(day+" AS posting_date, COUNT(jobs.id) AS jobs_posted, COUNT(DISTINCT jobs.company_id) AS companies_active").
		Where(p.within("jobs.posted_at"), window.From, window.To).
		Group(day).
		Order("posting_date ASC").
		Scan(&rows).Error
	return rows, errors.Wrap(err, "query daily posting counts")
}

func (p *Postings) Recent(ctx context.Context, limit int) ([]PostingSummary, error) {
	var rows []PostingSummary
	err := p.active(ctx).
		Select("jobs.id AS id, jobs.title AS title, companies.name AS company_name, " +
			"locations.city AS location, industries.name AS industry, " +
			"employment_types.name AS employment_type, job_levels.name AS job_level, " +
			"jobs.salary_min AS salary_min, jobs.salary_max AS salary_max, jobs.posted_at AS posted_at").
		Joins("JOIN companies ON companies.id = jobs.company_id").
		Joins(ByLocation.join).
		Joins(ByIndustry.join).
		Joins(ByEmploymentType.join).
		Joins(ByJobLevel.join).
		Order(instantOf(p.db, "jobs.posted_at") + " DESC").
		Order("jobs.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, errors.Wrap(err, "query recent postings")
}

func (p *Postings) dateOf(column string) string {
	if p.db.Dialector.Name() == "postgres" {
		return "to_char(" + column + " AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	}
	return "strftime('%Y-%m-%d', " + column + ")"
}

// within is a half-open [?, ?) predicate on a timestamp column. SQLite keeps the
// writer's offset in the stored text, so both sides are compared as julian days.
func (p *Postings) within(column string) string {
	instant, bound := instantOf(p.db, column), instantOf(p.db, "?")
	return instant + " >= " + bound + " AND " + instant + " < " + bound
}

func instantOf(db *gorm.DB, expr string) string {
	if db.Dialector.Name() == "sqlite" {
		return "julianday(" + expr + ")"
	}
	return expr
}
