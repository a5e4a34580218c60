// Package students is the data operations lab: add, list, rewrite and
// truncate a students table.
package students

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/store"
	"github.com/mesh-intelligence/ormdrills/internal/validate"
)

// StudentsDomain replaces the domain of every address on update.
const StudentsDomain = "uni-students.com"

// Student is an enrolled student.
type Student struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	StudentID string          `gorm:"size:10;not null;uniqueIndex" json:"student_id" validate:"required,max=10"`
	FirstName string          `gorm:"size:30;not null" json:"first_name" validate:"required,max=30"`
	LastName  string          `gorm:"size:30;not null" json:"last_name" validate:"required,max=30"`
	BirthDate *datatypes.Date `json:"birth_date"`
	Email     string          `gorm:"size:254;not null;uniqueIndex" json:"email" validate:"email"`
}

func (s *Student) BeforeSave(*gorm.DB) error { return validate.Struct(s, nil) }

func birth(y int, m time.Month, d int) *datatypes.Date {
	return exercise.Ptr(exercise.Date(y, m, d))
}

// AddStudents inserts the four lab students.
func AddStudents(ctx context.Context, db *gorm.DB) error {
	students := []*Student{
		{StudentID: "FC5204", FirstName: "John", LastName: "Doe", BirthDate: birth(1995, time.May, 15), Email: "john.doe@university.com"},
		{StudentID: "FE0054", FirstName: "Jane", LastName: "Smith", Email: "jane.smith@university.com"},
		{StudentID: "FH2014", FirstName: "Alice", LastName: "Johnson", BirthDate: birth(1998, time.February, 10), Email: "alice.johnson@university.com"},
		{StudentID: "FH2015", FirstName: "Bob", LastName: "Wilson", BirthDate: birth(1996, time.November, 25), Email: "bob.wilson@university.com"},
	}
	if err := db.WithContext(ctx).Create(&students).Error; err != nil {
		return fmt.Errorf("adding students: %w", store.TranslateError(err))
	}
	return nil
}

// StudentsInfo lists every student.
func StudentsInfo(ctx context.Context, db *gorm.DB) (string, error) {
	var ss []Student
	if err := db.WithContext(ctx).Order("id").Find(&ss).Error; err != nil {
		return "", fmt.Errorf("listing students: %w", err)
	}
	lines := make([]string, 0, len(ss))
	for _, s := range ss {
		lines = append(lines, fmt.Sprintf("Student №%s: %s %s; Email: %s", s.StudentID, s.FirstName, s.LastName, s.Email))
	}
	return exercise.Lines(lines), nil
}

// ReplaceDomain swaps the domain part of email for domain.
func ReplaceDomain(email, domain string) string {
	local, _, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}
	return local + "@" + domain
}

// UpdateStudentsEmails moves every address to StudentsDomain.
func UpdateStudentsEmails(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ss []Student
		if err := tx.Order("id").Find(&ss).Error; err != nil {
			return err
		}
		for i := range ss {
			ss[i].Email = ReplaceDomain(ss[i].Email, StudentsDomain)
			if err := tx.Model(&ss[i]).Update("email", ss[i].Email).Error; err != nil {
				return fmt.Errorf("updating student %s: %w", ss[i].StudentID, store.TranslateError(err))
			}
		}
		return nil
	})
}

// TruncateStudents deletes every student.
func TruncateStudents(ctx context.Context, db *gorm.DB) (int64, error) {
	res := store.Bulk(db.WithContext(ctx)).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Student{})
	return res.RowsAffected, res.Error
}

// Exercise registers the students drill.
func Exercise() exercise.Exercise {
	return exercise.Exercise{
		Name:     "students",
		Summary:  "Basic create, read, update and delete of students",
		Models:   []any{&Student{}},
		Populate: AddStudents,
		Callers: []exercise.Caller{
			{Name: "add_students", Run: func(ctx context.Context, db *gorm.DB, _ []string) (string, error) {
				if err := AddStudents(ctx, db); err != nil {
					return "", err
				}
				return "Added 4 students", nil
			}},
			{Name: "get_students_info", Run: exercise.NoArgs(StudentsInfo)},
			{Name: "update_students_emails", Run: func(ctx context.Context, db *gorm.DB, _ []string) (string, error) {
				if err := UpdateStudentsEmails(ctx, db); err != nil {
					return "", err
				}
				return StudentsInfo(ctx, db)
			}},
			{Name: "truncate_students", Run: func(ctx context.Context, db *gorm.DB, _ []string) (string, error) {
				n, err := TruncateStudents(ctx, db)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted %d students", n), nil
			}},
		},
	}
}
