// Package basics is the model basics drill: field types, choices, natural
// primary keys and automatic timestamps.
package basics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// Employee is a member of staff.
type Employee struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:30;not null" json:"name" validate:"required,max=30"`
	EmailAddress  string         `gorm:"size:254;not null" json:"email_address" validate:"email"`
	Photo         string         `gorm:"size:200;not null" json:"photo" validate:"url"`
	BirthDate     datatypes.Date `gorm:"not null" json:"birth_date"`
	WorksFullTime bool           `gorm:"not null" json:"works_full_time"`
	CreatedOn     time.Time      `gorm:"autoCreateTime" json:"created_on"`
}

func (e *Employee) BeforeSave(*gorm.DB) error { return validate.Struct(e, nil) }

// Department locations.
const (
	LocationSofia  = "CB"
	LocationSliven = "CH"
	LocationYambol = "Y"
)

var locationNames = map[string]string{
	LocationSofia:  "Sofia",
	LocationSliven: "Sliven",
	LocationYambol: "Yambol",
}

// Department is keyed by its short code. EmployeesCount defaults to 1 when
// left at zero.
type Department struct {
	Code           string    `gorm:"primaryKey;size:4" json:"code" validate:"required,max=4"`
	Name           string    `gorm:"size:50;not null;uniqueIndex" json:"name" validate:"required,max=50"`
	EmployeesCount uint      `gorm:"not null" json:"employees_count"`
	Location       *string   `gorm:"size:20" json:"location" validate:"omitempty,oneof=CB CH Y"`
	LastEditedOn   time.Time `gorm:"autoUpdateTime" json:"last_edited_on"`
}

func (d *Department) BeforeSave(*gorm.DB) error {
	if d.EmployeesCount == 0 {
		d.EmployeesCount = 1
	}
	return validate.Struct(d, nil)
}

// LocationName returns the city of the department, or "" when unset.
func (d *Department) LocationName() string {
	if d.Location == nil {
		return ""
	}
	return locationNames[*d.Location]
}

// Project is a budgeted piece of work. StartDate is set on creation.
type Project struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	Name           string              `gorm:"size:100;not null;uniqueIndex" json:"name" validate:"required,max=100"`
	Description    *string             `gorm:"type:text" json:"description"`
	Budget         decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"budget" validate:"omitempty,decimal=10:2"`
	DurationInDays *uint               `json:"duration_in_days"`
	EstimatedHours *float64            `json:"estimated_hours"`
	StartDate      *datatypes.Date     `json:"start_date"`
	CreatedOn      time.Time           `gorm:"autoCreateTime" json:"created_on"`
	LastEditedOn   time.Time           `gorm:"autoUpdateTime" json:"last_edited_on"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	today := exercise.Today()
	p.StartDate = &today
	return nil
}

func (p *Project) BeforeSave(*gorm.DB) error { return validate.Struct(p, nil) }

// ListDepartments lists departments by code.
func ListDepartments(ctx context.Context, db *gorm.DB) (string, error) {
	var ds []Department
	if err := db.WithContext(ctx).Order("code").Find(&ds).Error; err != nil {
		return "", fmt.Errorf("listing departments: %w", err)
	}
	lines := make([]string, 0, len(ds))
	for _, d := range ds {
		loc := d.LocationName()
		if loc == "" {
			loc = "no location"
		}
		lines = append(lines, fmt.Sprintf("%s %s (%s): %d employees", d.Code, d.Name, loc, d.EmployeesCount))
	}
	return exercise.Lines(lines), nil
}

// ListEmployees lists employees by name.
func ListEmployees(ctx context.Context, db *gorm.DB) (string, error) {
	var es []Employee
	if err := db.WithContext(ctx).Order("name").Find(&es).Error; err != nil {
		return "", fmt.Errorf("listing employees: %w", err)
	}
	lines := make([]string, 0, len(es))
	for _, e := range es {
		kind := "part time"
		if e.WorksFullTime {
			kind = "full time"
		}
		lines = append(lines, fmt.Sprintf("%s <%s>, born %s, %s", e.Name, e.EmailAddress, exercise.FormatDate(e.BirthDate), kind))
	}
	return exercise.Lines(lines), nil
}

// ListProjects lists projects by name with their optional budget.
func ListProjects(ctx context.Context, db *gorm.DB) (string, error) {
	var ps []Project
	if err := db.WithContext(ctx).Order("name").Find(&ps).Error; err != nil {
		return "", fmt.Errorf("listing projects: %w", err)
	}
	lines := make([]string, 0, len(ps))
	for _, p := range ps {
		budget := "no budget"
		if p.Budget.Valid {
			budget = "budget " + p.Budget.Decimal.StringFixed(2)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", p.Name, budget))
	}
	return exercise.Lines(lines), nil
}

// Exercise registers the basics drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:     "basics",
		Summary:  "Field types, choices, natural keys and timestamps",
		Models:   []any{&Employee{}, &Department{}, &Project{}},
		Populate: Populate,
		Callers: []exercise.Caller{
			{Name: "list_departments", Run: exercise.NoArgs(ListDepartments)},
			{Name: "list_employees", Run: exercise.NoArgs(ListEmployees)},
			{Name: "list_projects", Run: exercise.NoArgs(ListProjects)},
		},
	}
}

// Populate inserts a few rows of each model.
func Populate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	rows := []any{
		&[]*Employee{
			{Name: "Ivan Petrov", EmailAddress: "ivan@example.com", Photo: "https://example.com/ivan.png", BirthDate: exercise.Date(1990, time.April, 12), WorksFullTime: true},
			{Name: "Maria Ivanova", EmailAddress: "maria@example.com", Photo: "https://example.com/maria.png", BirthDate: exercise.Date(1995, time.September, 3)},
		},
		&[]*Department{
			{Code: "IT", Name: "Information Technology", EmployeesCount: 12, Location: exercise.Ptr(LocationSofia)},
			{Code: "HR", Name: "Human Resources", Location: exercise.Ptr(LocationYambol)},
			{Code: "OPS", Name: "Operations"},
		},
		&[]*Project{
			{Name: "Website", Description: exercise.Ptr("Company site"), Budget: decimal.NewNullDecimal(decimal.RequireFromString("15000.00")), DurationInDays: exercise.Ptr(uint(90))},
			{Name: "Research"},
		},
	}
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			return fmt.Errorf("populating basics: %w", err)
		}
	}
	return nil
}
