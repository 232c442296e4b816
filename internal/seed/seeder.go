package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/classhub/backend/internal/logger"
	"github.com/classhub/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	seedClasses  = []string{"7A", "7B", "8A", "8B", "9A", "9B"}
	seedSubjects = []string{"Math", "English", "Science", "History", "Geography"}
	seedTerms    = []string{"Term 1", "Term 2", "Term 3"}
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// SeedDev seeds the development database with realistic data
func (s *Seeder) SeedDev() error {
	log := func(msg string) {
		logger.Log.Info(msg)
	}

	log("Creating staff...")
	teachers, err := s.seedUsers(20)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	log("Creating schemes of work...")
	schemes, err := s.seedSchemes()
	if err != nil {
		return fmt.Errorf("failed to seed schemes: %w", err)
	}

	log("Creating lesson plans...")
	if err := s.seedLessonPlans(teachers, schemes, 120); err != nil {
		return fmt.Errorf("failed to seed lesson plans: %w", err)
	}

	log("Creating daily reports...")
	if err := s.seedDailyReports(teachers, 60); err != nil {
		return fmt.Errorf("failed to seed daily reports: %w", err)
	}

	log("Creating exams and marks...")
	if err := s.seedExams(15); err != nil {
		return fmt.Errorf("failed to seed exams: %w", err)
	}

	log("Creating substitutions...")
	if err := s.seedSubstitutions(teachers, 10); err != nil {
		return fmt.Errorf("failed to seed substitutions: %w", err)
	}

	log("Creating calendar events...")
	if err := s.seedCalendarEvents(12); err != nil {
		return fmt.Errorf("failed to seed calendar events: %w", err)
	}

	return nil
}

// SeedTest seeds the test database with a small fixed set of accounts.
func (s *Seeder) SeedTest() error {
	specs := []struct {
		email string
		name  string
		role  string
	}{
		{"teacher@example.com", "Test Teacher", models.RoleTeacher},
		{"reviewer@example.com", "Test Reviewer", models.RoleReviewer},
		{"admin@example.com", "Test Admin", models.RoleAdmin},
	}

	for _, spec := range specs {
		var existing models.User
		if err := s.db.Where("email = ?", spec.email).First(&existing).Error; err == nil {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)

		user := models.User{
			Email:        spec.email,
			Name:         spec.name,
			Role:         spec.role,
			PasswordHash: &hashStr,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create test user %s: %w", spec.email, err)
		}
	}

	return nil
}

// Clean removes all rows from every seeded table.
func (s *Seeder) Clean() error {
	tables := []interface{}{
		&models.Mark{},
		&models.Exam{},
		&models.LessonPlan{},
		&models.SchemeOfWork{},
		&models.DailyReport{},
		&models.Substitution{},
		&models.AttendanceRecord{},
		&models.CalendarEvent{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		role := models.RoleTeacher
		if i == 0 {
			role = models.RoleAdmin
		} else if i < 3 {
			role = models.RoleReviewer
		}

		user := models.User{
			Email:        fmt.Sprintf("staff%02d@school.test", i+1),
			Name:         gofakeit.Name(),
			Role:         role,
			PasswordHash: &hashStr,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedSchemes() ([]models.SchemeOfWork, error) {
	var schemes []models.SchemeOfWork
	for _, class := range seedClasses {
		for _, subject := range seedSubjects {
			scheme := models.SchemeOfWork{
				Class:   class,
				Subject: subject,
				Chapter: gofakeit.BookTitle(),
				Term:    seedTerms[rand.Intn(len(seedTerms))],
			}
			if err := s.db.Create(&scheme).Error; err != nil {
				return nil, err
			}
			schemes = append(schemes, scheme)
		}
	}
	return schemes, nil
}

func (s *Seeder) seedLessonPlans(teachers []models.User, schemes []models.SchemeOfWork, count int) error {
	for i := 0; i < count; i++ {
		scheme := schemes[rand.Intn(len(schemes))]
		teacher := teachers[rand.Intn(len(teachers))]

		status := models.StatusPendingReview
		switch rand.Intn(3) {
		case 0:
			status = models.StatusReady
		case 1:
			status = models.StatusPendingPreparation
		}

		plan := models.LessonPlan{
			TeacherEmail: teacher.Email,
			TeacherName:  teacher.Name,
			Class:        scheme.Class,
			Subject:      scheme.Subject,
			Chapter:      scheme.Chapter,
			Session:      i, // distinct sessions keep the business key unique
			Status:       status,
			Date:         gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 3, 0)).Format("2006-01-02"),
		}
		if status != models.StatusPendingPreparation {
			plan.Objectives = gofakeit.Sentence(8)
			plan.Activities = gofakeit.Sentence(12)
		}
		if err := s.db.Create(&plan).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedDailyReports(teachers []models.User, count int) error {
	for i := 0; i < count; i++ {
		teacher := teachers[rand.Intn(len(teachers))]
		report := models.DailyReport{
			TeacherEmail:      teacher.Email,
			TeacherName:       teacher.Name,
			Class:             seedClasses[rand.Intn(len(seedClasses))],
			Subject:           seedSubjects[rand.Intn(len(seedSubjects))],
			Date:              gofakeit.DateRange(time.Now().AddDate(0, -1, 0), time.Now()).Format("2006-01-02"),
			TopicCovered:      gofakeit.Sentence(6),
			AttendanceSummary: fmt.Sprintf("%d/%d present", 20+rand.Intn(10), 32),
		}
		if err := s.db.Create(&report).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedExams(count int) error {
	for i := 0; i < count; i++ {
		exam := models.Exam{
			Name:     fmt.Sprintf("%s %s Exam", seedTerms[rand.Intn(len(seedTerms))], gofakeit.RandomString([]string{"Midterm", "End of Term", "Mock"})),
			Class:    seedClasses[rand.Intn(len(seedClasses))],
			Subject:  seedSubjects[rand.Intn(len(seedSubjects))],
			Term:     seedTerms[rand.Intn(len(seedTerms))],
			MaxMarks: 100,
			Date:     gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 2, 0)).Format("2006-01-02"),
		}
		if err := s.db.Create(&exam).Error; err != nil {
			return err
		}

		for student := 1; student <= 25; student++ {
			mark := models.Mark{
				ExamID:      exam.ID,
				StudentID:   fmt.Sprintf("S%03d", student),
				StudentName: gofakeit.Name(),
				Score:       float64(30 + rand.Intn(70)),
			}
			if err := s.db.Create(&mark).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedSubstitutions(teachers []models.User, count int) error {
	for i := 0; i < count; i++ {
		absent := teachers[rand.Intn(len(teachers))]
		sub := models.Substitution{
			Date:          gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 0, 14)).Format("2006-01-02"),
			Period:        1 + rand.Intn(8),
			Class:         seedClasses[rand.Intn(len(seedClasses))],
			Subject:       seedSubjects[rand.Intn(len(seedSubjects))],
			AbsentTeacher: absent.Name,
			Status:        models.SubstitutionOpen,
		}
		if rand.Intn(2) == 0 {
			substitute := teachers[rand.Intn(len(teachers))]
			now := time.Now().UTC()
			sub.SubstituteTeacher = substitute.Name
			sub.Status = models.SubstitutionAssigned
			sub.AssignedAt = &now
		}
		if err := s.db.Create(&sub).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedCalendarEvents(count int) error {
	categories := []string{models.EventExam, models.EventHoliday, models.EventMeeting, models.EventActivity}
	for i := 0; i < count; i++ {
		start := gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 4, 0))
		event := models.CalendarEvent{
			Title:       gofakeit.Sentence(3),
			Category:    categories[rand.Intn(len(categories))],
			StartDate:   start.Format("2006-01-02"),
			EndDate:     start.AddDate(0, 0, rand.Intn(3)).Format("2006-01-02"),
			Description: gofakeit.Sentence(10),
		}
		if err := s.db.Create(&event).Error; err != nil {
			return err
		}
	}
	return nil
}
