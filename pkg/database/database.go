package database

import (
	"fmt"
	"log"
	"os"

	"referee_training_backend/internal/config"
	"referee_training_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the connection and, unless skipped, migrates the schema and
// seeds the rows the application cannot run without.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Question{},
		&model.AnswerOption{},
		&model.TestSession{},
		&model.TestAnswer{},
		&model.MandatoryTest{},
		&model.MandatoryTestCompletion{},
		&model.TagCategory{},
		&model.Tag{},
		&model.VideoCategory{},
		&model.VideoClip{},
		&model.VideoTag{},
		&model.VideoTest{},
		&model.VideoTestClip{},
		&model.VideoTestSession{},
		&model.VideoTestAnswer{},
		&model.VideoTestCompletion{},
		&model.StudyProgress{},
		&model.QuestionFavorite{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// default question categories
	var catCount int64
	db.Model(&model.Category{}).Count(&catCount)
	if catCount == 0 {
		defaultCategories := []model.Category{
			{Name: "Laws of the Game", Slug: "laws-of-the-game", Type: model.CategoryLOTG, DisplayOrder: 1},
			{Name: "Video Decisions", Slug: "video-decisions", Type: model.CategoryVideo, DisplayOrder: 2},
			{Name: "Practice", Slug: "practice", Type: model.CategoryPractice, DisplayOrder: 3},
		}
		for _, c := range defaultCategories {
			db.Create(&c)
		}
	}

	// default tag categories; video scoring depends on restarts/sanction/criteria
	var tcCount int64
	db.Model(&model.TagCategory{}).Count(&tcCount)
	if tcCount == 0 {
		defaultTagCategories := []model.TagCategory{
			{Name: "Category", Slug: model.TagCategoryCategory, DisplayOrder: 1, IsActive: true},
			{Name: "Restarts", Slug: model.TagCategoryRestarts, DisplayOrder: 2, IsActive: true},
			{Name: "Sanction", Slug: model.TagCategorySanction, DisplayOrder: 3, IsActive: true},
			{Name: "Criteria", Slug: model.TagCategoryCriteria, DisplayOrder: 4, IsActive: true},
		}
		for _, tc := range defaultTagCategories {
			db.Create(&tc)
		}
	}

	// bootstrap admin; registration only creates regular users, so a fresh
	// install needs one privileged account to start from
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		email := os.Getenv("ADMIN_EMAIL")
		if email == "" {
			email = "admin@example.com"
		}
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "changeme"
			log.Println("ADMIN_PASSWORD not set, seeding admin with the default password")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := model.User{
			Name:     "Administrator",
			Email:    email,
			Password: string(hashed),
			Role:     model.RoleAdmin,
		}
		db.Create(&admin)
		log.Printf("Seeded admin account %s", email)
	}

	return db, nil
}
