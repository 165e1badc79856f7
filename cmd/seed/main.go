package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"booksy/internal/config"
	"booksy/internal/db"
	"booksy/internal/model"
	"booksy/internal/money"
	"booksy/internal/repository"
)

type seedBook struct {
	title     string
	author    string
	price     string
	condition model.Condition
}

var demoUsers = []struct {
	username string
	email    string
	password string
	books    []seedBook
}{
	{
		username: "frodo",
		email:    "frodo@shire.test",
		password: "password123",
		books: []seedBook{
			{"The Hobbit", "J.R.R. Tolkien", "3", model.ConditionGood},
			{"The Fellowship of the Ring", "J.R.R. Tolkien", "6", model.ConditionGood},
			{"The Two Towers", "J.R.R. Tolkien", "10", model.ConditionGood},
		},
	},
	{
		username: "case",
		email:    "case@sprawl.test",
		password: "password123",
		books: []seedBook{
			{"Neuromancer", "William Gibson", "15", model.ConditionGood},
			{"Count Zero", "William Gibson", "25", model.ConditionGood},
			{"Dune", "Frank Herbert", "12.50", model.ConditionVeryGood},
			{"Snow Crash", "Neal Stephenson", "8.99", model.ConditionAcceptable},
			{"The Left Hand of Darkness", "Ursula K. Le Guin", "14", model.ConditionLikeNew},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Book{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)

	var createdUsers, createdBooks, skipped int
	for _, du := range demoUsers {
		user, err := userRepo.FindByEmail(ctx, du.email)
		switch {
		case err == nil:
			log.Printf("User %s already exists, skipping", du.email)
			skipped++
		case errors.Is(err, gorm.ErrRecordNotFound):
			hashed, err := bcrypt.GenerateFromPassword([]byte(du.password), 10)
			if err != nil {
				log.Fatalf("Failed to hash password: %v", err)
			}
			user = &model.User{
				Username:     du.username,
				Email:        du.email,
				PasswordHash: string(hashed),
				Role:         model.RoleUser,
				Active:       true,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				log.Fatalf("Failed to create user %s: %v", du.email, err)
			}
			createdUsers++

			for _, sb := range du.books {
				cents, err := money.ToCents(sb.price)
				if err != nil {
					log.Fatalf("Bad seed price %q: %v", sb.price, err)
				}
				book := &model.Book{
					Title:      sb.title,
					Author:     sb.author,
					PriceCents: cents,
					Condition:  sb.condition,
					Status:     model.BookStatusActive,
					OwnerID:    user.ID,
				}
				if err := bookRepo.Create(ctx, book); err != nil {
					log.Fatalf("Failed to create book %q: %v", sb.title, err)
				}
				createdBooks++
			}
		default:
			log.Fatalf("Failed to look up user %s: %v", du.email, err)
		}
	}

	log.Printf("Seed complete: %d users and %d books created, %d users skipped",
		createdUsers, createdBooks, skipped)
}
