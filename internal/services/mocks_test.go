package services

import (
	"context"
	"github.com/maxaizer/job-market-api/internal/repositories"
	"github.com/stretchr/testify/mock"
	"time"
)

type mockPostings struct {
	mock.Mock
}

func (m *mockPostings) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostings) CountActiveIn(ctx context.Context, window repositories.Window) (int64, error) {
	args := m.Called(ctx, window)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostings) PeriodTotals(ctx context.Context, periods repositories.Periods) (repositories.PeriodCounts, error) {
	args := m.Called(ctx, periods)
	return args.Get(0).(repositories.PeriodCounts), args.Error(1)
}

func (m *mockPostings) CompanyPeriodTotals(ctx context.Context, periods repositories.Periods) (repositories.PeriodCounts, error) {
	args := m.Called(ctx, periods)
	return args.Get(0).(repositories.PeriodCounts), args.Error(1)
}

func (m *mockPostings) IndustryPeriodCounts(ctx context.Context, periods repositories.Periods) ([]repositories.GroupPeriodCounts, error) {
	args := m.Called(ctx, periods)
	return args.Get(0).([]repositories.GroupPeriodCounts), args.Error(1)
}

func (m *mockPostings) IndustryCompanyCounts(ctx context.Context, window repositories.Window, limit int) ([]repositories.GroupCount, error) {
	args := m.Called(ctx, window, limit)
	return args.Get(0).([]repositories.GroupCount), args.Error(1)
}

func (m *mockPostings) Distribution(ctx context.Context, dimension repositories.Dimension,
	filter repositories.DistributionFilter) ([]repositories.GroupCount, error) {
	args := m.Called(ctx, dimension, filter)
	return args.Get(0).([]repositories.GroupCount), args.Error(1)
}

func (m *mockPostings) SkillDistribution(ctx context.Context, minSupport int64, limit int) ([]repositories.SkillCount, error) {
	args := m.Called(ctx, minSupport, limit)
	return args.Get(0).([]repositories.SkillCount), args.Error(1)
}

func (m *mockPostings) SalaryStats(ctx context.Context) (repositories.SalaryStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(repositories.SalaryStats), args.Error(1)
}

func (m *mockPostings) IndustrySalaries(ctx context.Context, minSupport int64, limit int) ([]repositories.GroupSalaryStats, error) {
	args := m.Called(ctx, minSupport, limit)
	return args.Get(0).([]repositories.GroupSalaryStats), args.Error(1)
}

func (m *mockPostings) DailyCounts(ctx context.Context, window repositories.Window, activeOnly bool) ([]repositories.DailyCount, error) {
	args := m.Called(ctx, window, activeOnly)
	return args.Get(0).([]repositories.DailyCount), args.Error(1)
}

func (m *mockPostings) Recent(ctx context.Context, limit int) ([]repositories.PostingSummary, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]repositories.PostingSummary), args.Error(1)
}

type mockCacheEntries struct {
	mock.Mock
}

func (m *mockCacheEntries) RemoveExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
