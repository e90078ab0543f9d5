package testinfra

import (
	"github.com/maxaizer/job-market-api/internal/entities"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"testing"
	"time"
)

// Posting describes a job to insert. Empty labels fall back to defaults.
type Posting struct {
	Title          string
	Company        string
	City           string
	Industry       string
	EmploymentType string
	JobLevel       string
	SalaryMin      *float64
	SalaryMax      *float64
	PostedAt       time.Time
	Inactive       bool
	Skills         []string
}

type Seeder struct {
	t      *testing.T
	db     *gorm.DB
	lookup map[string]map[string]int64
}

func NewSeeder(t *testing.T, db *gorm.DB) *Seeder {
	return &Seeder{t: t, db: db, lookup: map[string]map[string]int64{}}
}

func Salary(value float64) *float64 {
	return &value
}

func (s *Seeder) Add(p Posting) int64 {
	s.t.Helper()

	job := entities.Job{
		Title:            orDefault(p.Title, "Software Engineer"),
		CompanyID:        s.company(orDefault(p.Company, "Acme")),
		LocationID:       s.location(orDefault(p.City, "Jakarta")),
		IndustryID:       s.industry(orDefault(p.Industry, "Technology")),
		EmploymentTypeID: s.employmentType(orDefault(p.EmploymentType, "Full-time")),
		JobLevelID:       s.jobLevel(orDefault(p.JobLevel, "Mid Level")),
		SalaryMin:        p.SalaryMin,
		SalaryMax:        p.SalaryMax,
		PostedAt:         p.PostedAt.UTC().Truncate(time.Second),
		IsActive:         !p.Inactive,
	}
	require.NoError(s.t, s.db.Create(&job).Error)

	for _, skill := range p.Skills {
		require.NoError(s.t, s.db.Create(&entities.JobSkill{JobID: job.ID, SkillID: s.skill(skill)}).Error)
	}
	return job.ID
}

func (s *Seeder) AddMany(count int, p Posting) {
	s.t.Helper()
	for i := 0; i < count; i++ {
		s.Add(p)
	}
}

func (s *Seeder) company(name string) int64 {
	return s.reference("companies", name, func() (any, *int64) {
		c := &entities.Company{Name: name}
		return c, &c.ID
	})
}

func (s *Seeder) location(city string) int64 {
	return s.reference("locations", city, func() (any, *int64) {
		l := &entities.Location{City: city, Province: "Unknown"}
		return l, &l.ID
	})
}

func (s *Seeder) industry(name string) int64 {
	return s.reference("industries", name, func() (any, *int64) {
		i := &entities.Industry{Name: name}
		return i, &i.ID
	})
}

func (s *Seeder) employmentType(name string) int64 {
	return s.reference("employment_types", name, func() (any, *int64) {
		e := &entities.EmploymentType{Name: name}
		return e, &e.ID
	})
}

func (s *Seeder) jobLevel(name string) int64 {
	return s.reference("job_levels", name, func() (any, *int64) {
		l := &entities.JobLevel{Name: name}
		return l, &l.ID
	})
}

func (s *Seeder) skill(name string) int64 {
	return s.reference("skills", name, func() (any, *int64) {
		sk := &entities.Skill{Name: name, Category: "Technical"}
		return sk, &sk.ID
	})
}

func (s *Seeder) reference(table, name string, build func() (any, *int64)) int64 {
	s.t.Helper()

	ids, ok := s.lookup[table]
	if !ok {
		ids = map[string]int64{}
		s.lookup[table] = ids
	}
	if id, ok := ids[name]; ok {
		return id
	}

	model, id := build()
	require.NoError(s.t, s.db.Create(model).Error)
	ids[name] = *id
	return *id
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
