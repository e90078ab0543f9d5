package entities

type Company struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

type Location struct {
	ID       int64  `gorm:"primaryKey"`
	City     string `gorm:"index"`
	Province string
}

type Industry struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

type EmploymentType struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

type JobLevel struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

type Skill struct {
	ID       int64 `gorm:"primaryKey"`
	Name     string
	Category string
}
