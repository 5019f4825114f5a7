package main

import (
	"context"
	"log"
	"os"

	"todo_webapp/internal/db"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"
)

func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	auth := service.NewAuthService(userRepo)
	service.InitJWT()

	ctx := context.Background()

	const email = "tester@example.com"
	const password = "hunter22"

	existing, err := userRepo.GetByEmail(ctx, email)
	if err == nil {
		log.Printf("user already exists id=%d\n", existing.ID)
		token, err := service.GenerateJWT(existing.ID)
		if err != nil {
			log.Fatalf("failed to generate token: %v", err)
		}
		log.Printf("token=%s\n", token)
		return
	}

	u, token, err := auth.Register(ctx, email, password, "Tester")
	if err != nil {
		log.Fatalf("register failed: %v", err)
	}

	log.Printf("user created id=%d email=%s\n", u.ID, u.Email)
	log.Printf("token=%s\n", token)
}
