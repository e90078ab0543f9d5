package entities

import "time"

type Job struct {
	ID               int64 `gorm:"primaryKey"`
	Title            string
	CompanyID        int64     `gorm:"index;not null"`
	LocationID       int64     `gorm:"index;not null"`
	IndustryID       int64     `gorm:"index;not null"`
	EmploymentTypeID int64     `gorm:"index;not null"`
	JobLevelID       int64     `gorm:"index;not null"`
	SalaryMin        *float64  `gorm:"type:decimal(12,2)"`
	SalaryMax        *float64  `gorm:"type:decimal(12,2)"`
	PostedAt         time.Time `gorm:"index"`
	ScrapedAt        *time.Time
	IsActive         bool `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasSalary reports whether the posting takes part in salary aggregates.
func (j Job) HasSalary() bool {
	return j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > 0
}

type JobSkill struct {
	JobID   int64 `gorm:"primaryKey"`
	SkillID int64 `gorm:"primaryKey;index"`
}
