package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func createUser(t *testing.T, db *pgxpool.Pool, tag string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        fmt.Sprintf("it-%s-%d@example.com", tag, time.Now().UnixNano()),
		PasswordHash: "x",
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestTaskRepository_CRUD(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db, "crud")
	repo := repository.NewTaskRepository(db)

	task := &domain.Task{
		UserID:  u.ID,
		Text:    "write report",
		DueDate: "2030-05-01T09:00",
	}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.ID == 0 {
		t.Fatal("id not assigned by the store")
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("created_at not assigned by the store")
	}

	// partial edit leaves completed and created_at alone
	if err := repo.SetCompleted(ctx, u.ID, task.ID, true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if err := repo.UpdateTextAndDue(ctx, u.ID, task.ID, "write report v2", "2030-06-01T09:00"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Text != "write report v2" || got.DueDate != "2030-06-01T09:00" {
		t.Fatalf("edit not applied: %+v", got)
	}
	if !got.Completed {
		t.Fatal("edit cleared the completed flag")
	}
	if !got.CreatedAt.Equal(task.CreatedAt) {
		t.Fatal("edit changed created_at")
	}

	if err := repo.Delete(ctx, u.ID, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID, task.ID); err != repository.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestTaskRepository_UserScoping(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	repo := repository.NewTaskRepository(db)

	task := &domain.Task{UserID: alice.ID, Text: "private", DueDate: "2030-01-01T00:00"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}

	// bob can't see, edit or delete alice's task
	list, err := repo.ListByUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, got := range list {
		if got.ID == task.ID {
			t.Fatal("task leaked across user collections")
		}
	}

	if err := repo.UpdateTextAndDue(ctx, bob.ID, task.ID, "stolen", "2030-01-01T00:00"); err != repository.ErrTaskNotFound {
		t.Fatalf("cross-user edit: expected ErrTaskNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, bob.ID, task.ID); err != repository.ErrTaskNotFound {
		t.Fatalf("cross-user delete: expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_SetCompletedTwice(t *testing.T) {
	db := connectDB(t)
	ctx := context.Background()

	u := createUser(t, db, "twice")
	repo := repository.NewTaskRepository(db)

	task := &domain.Task{UserID: u.ID, Text: "done soon", DueDate: "2030-01-01T00:00"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.SetCompleted(ctx, u.ID, task.ID, true); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if err := repo.SetCompleted(ctx, u.ID, task.ID, true); err != nil {
		t.Fatalf("second complete should be a harmless repeat: %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Completed {
		t.Fatal("completed flag not set")
	}
}
