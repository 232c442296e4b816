package database

import (
	"fmt"
	"os"
	"time"

	"github.com/classhub/backend/internal/logger"
	"github.com/classhub/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connection
var DB *gorm.DB

// Initialize creates and configures the database connection
func Initialize() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// Fallback to individual components
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "postgres")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "classhub")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		databaseURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	gormLogger := gormlogger.Default
	if os.Getenv("ENVIRONMENT") == "development" {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	registerMetricsCallbacks(db)

	DB = db
	logger.Log.Info("Database connected")

	return nil
}

// Migrate runs auto-migration for all models
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(
		&models.User{},
		&models.LessonPlan{},
		&models.SchemeOfWork{},
		&models.DailyReport{},
		&models.Exam{},
		&models.Mark{},
		&models.Substitution{},
		&models.AttendanceRecord{},
		&models.CalendarEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Log.Info("Database migrations completed")
	return nil
}

// createIndexes creates indexes AutoMigrate cannot express.
func createIndexes() error {
	// The lesson-plan business key is only unique for non-placeholder rows:
	// placeholders share the key with the submission that will fill them.
	// This partial unique index is the authoritative duplicate guard; the
	// resolver's scan is the friendly-error fast path in front of it.
	DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_lesson_plans_business_key
		ON lesson_plans (class, subject, session, chapter)
		WHERE status <> 'Pending Preparation'`)

	DB.Exec("CREATE INDEX IF NOT EXISTS idx_lesson_plans_teacher_status ON lesson_plans (teacher_email, status)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_substitutions_date_status ON substitutions (date, status)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_calendar_events_range ON calendar_events (start_date, end_date)")

	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Health checks database connectivity
func Health() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
