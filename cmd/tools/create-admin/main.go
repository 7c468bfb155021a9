package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hearthloaf/hearthloaf/internal/auth"
	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/repositories"
)

func main() {
	dbPath := flag.String("db", "./data/hearthloaf.db", "path to the SQLite database")
	username := flag.String("username", "admin", "username for the new admin account")
	password := flag.String("password", "", "password for the new admin account (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("the -password flag is required")
	}
	if err := auth.ValidatePasswordStrength(*password); err != nil {
		log.Fatalf("Password rejected: %v", err)
	}

	db, err := sql.Open("sqlite3", *dbPath+"?_foreign_keys=on")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	existing, err := users.GetByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("Failed to check existing users: %v", err)
	}
	if existing != nil {
		log.Fatalf("User %q already exists", *username)
	}

	hash, err := auth.NewPasswordHasher().HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     *username,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      true,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Admin user %q created (id %d)\n", user.Username, user.ID)
}
