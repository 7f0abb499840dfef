package main

import (
	"log"
	"os"
	"time"

	"gradaid-be/internal/model"
	"gradaid-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding GradAid catalog and demo data\n")

	seedUniversities(db)
	seedDemoUser(db)

	color.Cyan("\nSeeding completed!")
}

func seedUniversities(db *gorm.DB) {
	color.Yellow("\n[1] University Catalog")

	deadline := func(month time.Month, day int) *time.Time {
		t := time.Date(time.Now().Year()+1, month, day, 23, 59, 0, 0, time.UTC)
		return &t
	}
	intPtr := func(n int) *int { return &n }
	strPtr := func(s string) *string { return &s }

	type seedEntry struct {
		university model.University
		programs   []model.Program
	}

	entries := []seedEntry{
		{
			university: model.University{Name: "Stanford University", Country: "USA", City: "Stanford", Ranking: intPtr(3), Website: strPtr("https://www.stanford.edu")},
			programs: []model.Program{
				{Name: "MS Computer Science", Degree: "MS", Department: "Computer Science", Deadline: deadline(time.December, 5)},
				{Name: "PhD Electrical Engineering", Degree: "PhD", Department: "Electrical Engineering", Deadline: deadline(time.December, 1)},
			},
		},
		{
			university: model.University{Name: "ETH Zurich", Country: "Switzerland", City: "Zurich", Ranking: intPtr(7), Website: strPtr("https://ethz.ch")},
			programs: []model.Program{
				{Name: "MSc Data Science", Degree: "MSc", Department: "Computer Science", Deadline: deadline(time.December, 15)},
			},
		},
		{
			university: model.University{Name: "University of Toronto", Country: "Canada", City: "Toronto", Ranking: intPtr(21), Website: strPtr("https://www.utoronto.ca")},
			programs: []model.Program{
				{Name: "MASc Machine Learning", Degree: "MASc", Department: "Electrical & Computer Engineering", Deadline: deadline(time.January, 15)},
				{Name: "MSc Applied Computing", Degree: "MSc", Department: "Computer Science", Deadline: deadline(time.February, 1)},
			},
		},
		{
			university: model.University{Name: "National University of Singapore", Country: "Singapore", City: "Singapore", Ranking: intPtr(8), Website: strPtr("https://www.nus.edu.sg")},
			programs: []model.Program{
				{Name: "MComp Artificial Intelligence", Degree: "MComp", Department: "School of Computing", Deadline: deadline(time.March, 1)},
			},
		},
	}

	for _, e := range entries {
		var existing model.University
		if err := db.Where("name = ?", e.university.Name).First(&existing).Error; err == nil {
			color.Yellow("University '%s' already exists, skipping...", e.university.Name)
			continue
		}

		if err := db.Create(&e.university).Error; err != nil {
			color.Red("Error creating university '%s': %v", e.university.Name, err)
			continue
		}
		for i := range e.programs {
			e.programs[i].UniversityId = e.university.Id
			if err := db.Create(&e.programs[i]).Error; err != nil {
				color.Red("Error creating program '%s': %v", e.programs[i].Name, err)
			}
		}
		color.Green("Created %s with %d programs", e.university.Name, len(e.programs))
	}
}

func seedDemoUser(db *gorm.DB) {
	color.Yellow("\n[2] Demo User & Credit Account")

	var existing model.User
	if err := db.Where("email = ?", "demo@gradaid.app").First(&existing).Error; err == nil {
		color.Yellow("Demo user already exists, skipping...")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error hashing demo password: %v", err)
		return
	}
	hashStr := string(hash)

	user := model.User{
		Email:        "demo@gradaid.app",
		PasswordHash: &hashStr,
		FullName:     "Demo Applicant",
		Role:         "user",
		Status:       "active",
	}
	if err := db.Create(&user).Error; err != nil {
		color.Red("Error creating demo user: %v", err)
		return
	}

	account := model.CreditAccount{
		UserId:       user.Id,
		TotalCredits: 100,
		UsedCredits:  0,
		LastUpdated:  time.Now(),
	}
	if err := db.Create(&account).Error; err != nil {
		color.Red("Error creating demo credit account: %v", err)
		return
	}

	color.Green("Created demo user %s with %d credits", user.Email, account.TotalCredits)
}
