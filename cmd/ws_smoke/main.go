package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"todo_webapp/internal/db"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"
)

// Smoke test against a running server: subscribe over /ws, create a task
// through the REST API and verify that a fresh snapshot plus countdown
// frames arrive on the subscription.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	auth := service.NewAuthService(userRepo)
	service.InitJWT()

	ctx := context.Background()

	const email = "ws-smoke@example.com"
	u, err := userRepo.GetByEmail(ctx, email)
	var token string
	if err != nil {
		u, token, err = auth.Register(ctx, email, "hunter22", "Smoke")
		if err != nil {
			log.Fatalf("register: %v", err)
		}
	} else {
		token, err = service.GenerateJWT(u.ID)
		if err != nil {
			log.Fatalf("gen token: %v", err)
		}
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readFrame := func(wantType string) map[string]any {
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			conn.SetReadDeadline(time.Now().Add(time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				continue
			}
			var obj map[string]any
			_ = json.Unmarshal(msg, &obj)
			if t, ok := obj["type"].(string); ok && t == wantType {
				log.Printf("got %s frame: %s", wantType, string(msg))
				return obj
			}
		}
		log.Fatalf("no %s frame within deadline", wantType)
		return nil
	}

	// initial snapshot arrives right after subscribing
	readFrame("snapshot")

	// create a task through the API and expect a push
	body, _ := json.Marshal(map[string]string{
		"text":     "smoke task",
		"due_date": time.Now().Add(time.Hour).Format("2006-01-02T15:04"),
	})
	req, _ := http.NewRequest("POST", fmt.Sprintf("http://127.0.0.1:%s/api/v1/tasks", port), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("create task: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("create task status = %d", resp.StatusCode)
	}

	readFrame("snapshot")
	readFrame("countdown")

	log.Println("smoke test finished")
}
