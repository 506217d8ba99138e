package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Genre classes seeded on first start
var DefaultClasses = []models.Class{
	{Name: "Prose", Value: "prose"},
	{Name: "Poetry", Value: "poetry"},
	{Name: "Essay", Value: "essay"},
	{Name: "Short story", Value: "short-story"},
}

// InitDB initializes the database connection, migrates the models and
// populates the database with default values if needed
func InitDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC",
		config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Class{},
		&models.Contest{},
		&models.Entry{},
		&models.Review{},
	)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	Populate()
}

// Populate seeds the genre classes when the table is empty. Users are not
// seeded: the first registered user is promoted to super by the registration
// flow instead.
func Populate() {
	var countClass int64
	DB.Model(&models.Class{}).Count(&countClass)
	if countClass == 0 {
		for i := range DefaultClasses {
			class := DefaultClasses[i]
			if err := DB.Create(&class).Error; err != nil {
				log.Println("Failed to seed class: ", class.Name, err)
			}
		}
		log.Println("Default classes created")
	}
}

// IsUniqueViolation reports whether an error came from a UNIQUE constraint.
// The contest/author and entry/reviewer invariants are enforced by the
// database, not by application-level lookups, so concurrent duplicates
// surface here.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
