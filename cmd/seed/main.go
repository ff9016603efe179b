// seed inserts development accounts for local testing.
// Idempotent: skips all inserts if the first seeded email already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"studyprep/backend/internal/config"
	"studyprep/backend/internal/db"
	"studyprep/backend/internal/security"
	"studyprep/backend/internal/user/domain"
	userrepo "studyprep/backend/internal/user/repository"

	"github.com/google/uuid"
)

const devPassword = "password123"

type seedUser struct {
	email       string
	password    string
	displayName string
	role        domain.Role
	firstLogin  bool
}

var seedUsers = []seedUser{
	// firstLogin makes the login response carry the password-change flag.
	{"student@studyprep.local", devPassword, "Sample Student", domain.RoleStudent, true},
	{"instructor@studyprep.local", devPassword, "Sample Instructor", domain.RoleInstructor, false},
	{"admin@studyprep.local", devPassword, "Sample Admin", domain.RoleAdmin, false},
	// Short password; set PASSWORD_MIN_LENGTH=6 to log in as this one.
	{"a@x.com", "secret", "Smoke Test", domain.RoleStudent, false},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	ctx := context.Background()

	existing, err := users.GetByEmail(ctx, seedUsers[0].email)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Printf("Seed already applied (%s exists). Skipping.", seedUsers[0].email)
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	now := time.Now().UTC()

	for _, su := range seedUsers {
		hash, err := hasher.Hash([]byte(su.password))
		if err != nil {
			log.Fatalf("hash password for %s: %v", su.email, err)
		}
		u := &domain.User{
			ID:           uuid.New().String(),
			Email:        su.email,
			PasswordHash: hash,
			DisplayName:  su.displayName,
			Role:         su.role,
			Active:       true,
			FirstLogin:   su.firstLogin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := u.Validate(); err != nil {
			log.Fatalf("seed user %s: %v", su.email, err)
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("create %s: %v", su.email, err)
		}
	}

	log.Println("Seed completed successfully.")
	for _, su := range seedUsers {
		fmt.Printf("Login: %s / %s\n", su.email, su.password)
	}
}
