package repositories_test

import (
	"context"
	"github.com/maxaizer/job-market-api/internal/entities"
	"github.com/maxaizer/job-market-api/internal/repositories"
	"github.com/maxaizer/job-market-api/internal/testinfra"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

var now = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func daysAgo(days int) time.Time {
	return now.Add(-time.Duration(days) * repositories.Day)
}

func newPostings(t *testing.T) (*repositories.Postings, *testinfra.Seeder) {
	dbCtx := testinfra.NewDatabase(t)
	return repositories.NewPostingsRepository(dbCtx.DB), testinfra.NewSeeder(t, dbCtx.DB)
}

func Test_PeriodTotals_SplitsActivePostingsByWindow(t *testing.T) {
	postings, seed := newPostings(t)

	seed.AddMany(3, testinfra.Posting{PostedAt: daysAgo(1)})
	seed.AddMany(2, testinfra.Posting{PostedAt: daysAgo(45)})
	seed.Add(testinfra.Posting{PostedAt: daysAgo(90)})
	seed.Add(testinfra.Posting{PostedAt: daysAgo(2), Inactive: true})

	counts, err := postings.PeriodTotals(context.Background(), repositories.TrailingPeriods(now, repositories.Month))

	require.NoError(t, err)
	assert.Equal(t, repositories.PeriodCounts{Total: 6, CurrentCount: 3, PreviousCount: 2}, counts)
}

func Test_PeriodTotals_EmptyStore_ReturnsZeros(t *testing.T) {
	postings, _ := newPostings(t)

	counts, err := postings.PeriodTotals(context.Background(), repositories.TrailingPeriods(now, repositories.Month))

	require.NoError(t, err)
	assert.Equal(t, repositories.PeriodCounts{}, counts)
}

func Test_CompanyPeriodTotals_CountsDistinctCompanies(t *testing.T) {
	postings, seed := newPostings(t)

	seed.AddMany(2, testinfra.Posting{Company: "Acme", PostedAt: daysAgo(1)})
	seed.Add(testinfra.Posting{Company: "Globex", PostedAt: daysAgo(40)})
	seed.Add(testinfra.Posting{Company: "Acme", PostedAt: daysAgo(40)})
	seed.Add(testinfra.Posting{Company: "Initech", PostedAt: daysAgo(1), Inactive: true})

	counts, err := postings.CompanyPeriodTotals(context.Background(), repositories.TrailingPeriods(now, repositories.Month))

	require.NoError(t, err)
	assert.Equal(t, repositories.PeriodCounts{Total: 2, CurrentCount: 1, PreviousCount: 2}, counts)
}

func Test_IndustryPeriodCounts_GroupsByIndustry(t *testing.T) {
	postings, seed := newPostings(t)

	seed.AddMany(3, testinfra.Posting{Industry: "Tech", PostedAt: daysAgo(5)})
	seed.AddMany(2, testinfra.Posting{Industry: "Tech", PostedAt: daysAgo(35)})
	seed.Add(testinfra.Posting{Industry: "Retail", PostedAt: daysAgo(35)})

	rows, err := postings.IndustryPeriodCounts(context.Background(), repositories.TrailingPeriods(now, repositories.Month))

	require.NoError(t, err)
	assert.ElementsMatch(t, []repositories.GroupPeriodCounts{
		{Name: "Tech", CurrentCount: 3, PreviousCount: 2},
		{Name: "Retail", CurrentCount: 0, PreviousCount: 1},
	}, rows)
}

func Test_Distribution_MinSupport_DropsGroupsBelowThreshold(t *testing.T) {
	postings, seed := newPostings(t)

	seed.AddMany(3, testinfra.Posting{Industry: "Tech", PostedAt: daysAgo(1)})
	seed.AddMany(2, testinfra.Posting{Industry: "Retail", PostedAt: daysAgo(1)})

	rows, err := postings.Distribution(context.Background(), repositories.ByIndustry,
		repositories.DistributionFilter{MinSupport: 3, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, []repositories.GroupCount{{Name: "Tech", Total: 3}}, rows)
}

func Test_Distribution_TiesAreOrderedByLabel(t *testing.T) {
	postings, seed := newPostings(t)

	seed.AddMany(2, testinfra.Posting{City: "Surabaya", PostedAt: daysAgo(1)})
	seed.AddMany(2, testinfra.Posting{City: "Bandung", PostedAt: daysAgo(1)})
	seed.AddMany(4, testinfra.Posting{City: "Jakarta", PostedAt: daysAgo(1)})

	rows, err := postings.Distribution(context.Background(), repositories.ByLocation, repositories.DistributionFilter{})

	require.NoError(t, err)
	assert.Equal(t, []repositories.GroupCount{
		{Name: "Jakarta", Total: 4},
		{Name: "Bandung", Total: 2},
		{Name: "Surabaya", Total: 2},
	}, rows)
}

func Test_Distribution_Window_CountsOnlyPostingsInside(t *testing.T) {
	postings, seed := newPostings(t)

	seed.AddMany(2, testinfra.Posting{Industry: "Tech", PostedAt: daysAgo(3)})
	seed.AddMany(5, testinfra.Posting{Industry: "Retail", PostedAt: daysAgo(40)})

	window := repositories.TrailingWindow(now, repositories.Month)
	rows, err := postings.Distribution(context.Background(), repositories.ByIndustry,
		repositories.DistributionFilter{Window: &window, Limit: 1})

	require.NoError(t, err)
	assert.Equal(t, []repositories.GroupCount{{Name: "Tech", Total: 2}}, rows)
}

func Test_SkillDistribution_CountsDistinctActiveJobs(t *testing.T) {
	postings, seed := newPostings(t)

	seed.AddMany(3, testinfra.Posting{Skills: []string{"Go", "SQL"}, PostedAt: daysAgo(1)})
	seed.Add(testinfra.Posting{Skills: []string{"SQL"}, PostedAt: daysAgo(1)})
	seed.Add(testinfra.Posting{Skills: []string{"Rust"}, PostedAt: daysAgo(1)})
	seed.AddMany(2, testinfra.Posting{Skills: []string{"Rust"}, PostedAt: daysAgo(1), Inactive: true})

	rows, err := postings.SkillDistribution(context.Background(), 3, 15)

	require.NoError(t, err)
	assert.Equal(t, []repositories.SkillCount{
		{Name: "SQL", Category: "Technical", Total: 4},
		{Name: "Go", Category: "Technical", Total: 3},
	}, rows)
}

func Test_SalaryStats_ExcludesIncompleteSalaries(t *testing.T) {
	dbCtx := testinfra.NewDatabase(t)
	postings := repositories.NewPostingsRepository(dbCtx.DB)
	seed := testinfra.NewSeeder(t, dbCtx.DB)

	seed.Add(testinfra.Posting{SalaryMin: testinfra.Salary(4000), SalaryMax: testinfra.Salary(6000), PostedAt: daysAgo(1)})
	seed.Add(testinfra.Posting{SalaryMin: testinfra.Salary(5000), SalaryMax: testinfra.Salary(8001), PostedAt: daysAgo(1)})
	seed.Add(testinfra.Posting{SalaryMin: testinfra.Salary(0), SalaryMax: testinfra.Salary(90000), PostedAt: daysAgo(1)})
	seed.Add(testinfra.Posting{SalaryMin: testinfra.Salary(1000), PostedAt: daysAgo(1)})
	seed.Add(testinfra.Posting{SalaryMin: testinfra.Salary(99000), SalaryMax: testinfra.Salary(99000),
		PostedAt: daysAgo(1), Inactive: true})

	stats, err := postings.SalaryStats(context.Background())

	require.NoError(t, err)
	require.NotNil(t, stats.Average)
	assert.InDelta(t, 5750.25, *stats.Average, 0.001)
	assert.InDelta(t, 4000, *stats.Minimum, 0.001)
	assert.InDelta(t, 8001, *stats.Maximum, 0.001)
	assert.Equal(t, int64(2), stats.Total)

	var active []entities.Job
	require.NoError(t, dbCtx.DB.Where("is_active = ?", true).Find(&active).Error)
	withSalary := lo.Filter(active, func(job entities.Job, _ int) bool { return job.HasSalary() })
	midpoints := lo.Map(withSalary, func(job entities.Job, _ int) float64 { return (*job.SalaryMin + *job.SalaryMax) / 2 })

	assert.Len(t, withSalary, int(stats.Total))
	assert.InDelta(t, lo.Sum(midpoints)/float64(len(midpoints)), *stats.Average, 0.001)
}

func Test_SalaryStats_NoQualifyingPostings_ReturnsNilAggregates(t *testing.T) {
	postings, seed := newPostings(t)
	seed.Add(testinfra.Posting{PostedAt: daysAgo(1)})

	stats, err := postings.SalaryStats(context.Background())

	require.NoError(t, err)
	assert.Nil(t, stats.Average)
	assert.Equal(t, int64(0), stats.Total)
}

func Test_IndustrySalaries_RanksByAverageWithSupport(t *testing.T) {
	postings, seed := newPostings(t)

	seed.AddMany(3, testinfra.Posting{Industry: "Finance", SalaryMin: testinfra.Salary(9000),
		SalaryMax: testinfra.Salary(11000), PostedAt: daysAgo(1)})
	seed.AddMany(3, testinfra.Posting{Industry: "Tech", SalaryMin: testinfra.Salary(5000),
		SalaryMax: testinfra.Salary(7000), PostedAt: daysAgo(1)})
	seed.AddMany(2, testinfra.Posting{Industry: "Mining", SalaryMin: testinfra.Salary(50000),
		SalaryMax: testinfra.Salary(70000), PostedAt: daysAgo(1)})

	rows, err := postings.IndustrySalaries(context.Background(), 3, 8)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Finance", rows[0].Name)
	assert.InDelta(t, 10000, *rows[0].Average, 0.001)
	assert.Equal(t, int64(3), rows[0].Total)
	assert.Equal(t, "Tech", rows[1].Name)
}

func Test_DailyCounts_SameDayPostingsShareBucket(t *testing.T) {
	postings, seed := newPostings(t)

	day := time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC)
	seed.Add(testinfra.Posting{Company: "Acme", PostedAt: day.Add(9 * time.Hour)})
	seed.Add(testinfra.Posting{Company: "Globex", PostedAt: day.Add(17 * time.Hour)})
	seed.Add(testinfra.Posting{Company: "Acme", PostedAt: day.Add(-time.Hour)})
	seed.Add(testinfra.Posting{PostedAt: day.Add(10 * time.Hour), Inactive: true})

	rows, err := postings.DailyCounts(context.Background(), repositories.TrailingWindow(now, 7*repositories.Day), true)

	require.NoError(t, err)
	assert.Equal(t, []repositories.DailyCount{
		{PostingDate: "2025-06-27", JobsPosted: 1, CompaniesActive: 1},
		{PostingDate: "2025-06-28", JobsPosted: 2, CompaniesActive: 2},
	}, rows)
}

func Test_DailyCounts_IncludesInactiveWhenRequested(t *testing.T) {
	postings, seed := newPostings(t)

	seed.Add(testinfra.Posting{PostedAt: daysAgo(1)})
	seed.Add(testinfra.Posting{PostedAt: daysAgo(1), Inactive: true})
	seed.Add(testinfra.Posting{PostedAt: daysAgo(10)})

	rows, err := postings.DailyCounts(context.Background(), repositories.TrailingWindow(now, 7*repositories.Day), false)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].JobsPosted)
}

func Test_Recent_ReturnsNewestActiveFirst(t *testing.T) {
	postings, seed := newPostings(t)

	seed.Add(testinfra.Posting{Title: "Old", PostedAt: daysAgo(10)})
	seed.Add(testinfra.Posting{Title: "New", Company: "Globex", City: "Bandung", Industry: "Finance",
		EmploymentType: "Contract", JobLevel: "Senior", SalaryMin: testinfra.Salary(1000),
		SalaryMax: testinfra.Salary(2000), PostedAt: daysAgo(1)})
	seed.Add(testinfra.Posting{Title: "Hidden", PostedAt: daysAgo(0), Inactive: true})

	rows, err := postings.Recent(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "New", rows[0].Title)
	assert.Equal(t, "Globex", rows[0].CompanyName)
	assert.Equal(t, "Bandung", rows[0].Location)
	assert.Equal(t, "Finance", rows[0].Industry)
	assert.Equal(t, "Contract", rows[0].EmploymentType)
	assert.Equal(t, "Senior", rows[0].JobLevel)
	assert.InDelta(t, 2000, *rows[0].SalaryMax, 0.001)
	assert.True(t, daysAgo(1).Equal(rows[0].PostedAt))
	assert.Equal(t, "Old", rows[1].Title)
	assert.Nil(t, rows[1].SalaryMin)
}

func Test_CountActiveIn_UsesHalfOpenWindow(t *testing.T) {
	postings, seed := newPostings(t)

	seed.Add(testinfra.Posting{PostedAt: daysAgo(7)})
	seed.Add(testinfra.Posting{PostedAt: daysAgo(6)})
	seed.Add(testinfra.Posting{PostedAt: daysAgo(8)})

	count, err := postings.CountActiveIn(context.Background(), repositories.TrailingWindow(now, 7*repositories.Day))

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func Test_Queries_ClosedDatabase_ReturnsWrappedError(t *testing.T) {
	dbCtx := testinfra.NewDatabase(t)
	postings := repositories.NewPostingsRepository(dbCtx.DB)
	require.NoError(t, dbCtx.Close())

	_, err := postings.CountActive(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "count active postings")
}

func Test_Windows_CompareInstantsAcrossStoredOffsets(t *testing.T) {
	dbCtx := testinfra.NewDatabase(t)
	postings := repositories.NewPostingsRepository(dbCtx.DB)
	seed := testinfra.NewSeeder(t, dbCtx.DB)
	ctx := context.Background()

	utcID := seed.Add(testinfra.Posting{Title: "Written in UTC", PostedAt: now.Add(-time.Hour)})

	var job entities.Job
	require.NoError(t, dbCtx.DB.First(&job, utcID).Error)
	job.ID = 0
	job.Title = "Written in Jakarta"
	job.PostedAt = now.Add(-30 * time.Minute).In(time.FixedZone("WIB", 7*60*60))
	require.NoError(t, dbCtx.DB.Create(&job).Error)

	count, err := postings.CountActiveIn(ctx, repositories.TrailingWindow(now, 7*repositories.Day))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	counts, err := postings.PeriodTotals(ctx, repositories.TrailingPeriods(now, repositories.Month))
	require.NoError(t, err)
	assert.Equal(t, repositories.PeriodCounts{Total: 2, CurrentCount: 2}, counts)

	days, err := postings.DailyCounts(ctx, repositories.TrailingWindow(now, repositories.Day), false)
	require.NoError(t, err)
	assert.Equal(t, []repositories.DailyCount{{PostingDate: "2025-06-30", JobsPosted: 2, CompaniesActive: 1}}, days)

	recent, err := postings.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Written in Jakarta", recent[0].Title)
	assert.True(t, now.Add(-30*time.Minute).Equal(recent[0].PostedAt))
}
