// Command seed prepares a BigAko database outside the running service:
// creates the schema, inserts fixture accounts and welcome messages, and
// can register an extra account with an interactively prompted password.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/iudanet/bigako/internal/models"
	"github.com/iudanet/bigako/internal/server/auth"
	"github.com/iudanet/bigako/internal/server/files"
	"github.com/iudanet/bigako/internal/server/storage"
	"github.com/iudanet/bigako/internal/server/storage/sqlite"
)

// Фикстурные учетные записи (как в оригинальном скрипте инициализации)
var fixtureUsers = []struct {
	username string
	password string
}{
	{"admin", "admin123"},
	{"user1", "password1"},
	{"user2", "password2"},
	{"test", "test123"},
	{"demo", "demo123"},
}

// Фикстурные сообщения
var fixtureMessages = []struct {
	username string
	body     string
}{
	{"admin", "Добро пожаловать в BigAko Messenger! 🚀"},
	{"admin", "Это самый современный мессенджер с лучшим дизайном!"},
	{"user1", "Привет всем! Как дела?"},
	{"user2", "Отлично! Дизайн просто огонь! 🔥"},
	{"test", "Тестирую работу мессенджера"},
	{"demo", "Отличная работа! 👍"},
}

func main() {
	database := flag.String("database", "bigako.db", "path to SQLite database file")
	uploads := flag.String("uploads", "uploads", "directory for uploaded files")
	recreate := flag.Bool("recreate", false, "delete the existing database before seeding")
	addUser := flag.String("adduser", "", "register a single account with a prompted password and exit")
	flag.Parse()

	if err := run(*database, *uploads, *recreate, *addUser); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(database, uploads string, recreate bool, addUser string) error {
	ctx := context.Background()

	if recreate {
		// Удаляем файл БД вместе со вспомогательными файлами WAL
		for _, path := range []string{database, database + "-wal", database + "-shm"} {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
		}
		fmt.Println("Старая база данных удалена")
	}

	// Открытие прогоняет миграции и создает таблицы
	store, err := sqlite.New(ctx, database)
	if err != nil {
		return err
	}
	defer store.Close()

	authService := auth.NewService(store)

	if addUser != "" {
		return registerUser(ctx, authService, addUser)
	}

	fmt.Println("Добавляем тестовых пользователей...")
	for _, u := range fixtureUsers {
		err := authService.Register(ctx, u.username, u.password)
		switch {
		case errors.Is(err, storage.ErrUserAlreadyExists):
			fmt.Printf("  пользователь %s уже существует\n", u.username)
		case err != nil:
			return fmt.Errorf("failed to register %s: %w", u.username, err)
		default:
			fmt.Printf("  пользователь %s добавлен\n", u.username)
		}
	}

	fmt.Println("Добавляем тестовые сообщения...")
	for _, m := range fixtureMessages {
		msg := &models.Message{
			Username:  m.username,
			Body:      m.body,
			Kind:      models.KindText,
			CreatedAt: time.Now(),
		}
		if _, err := store.InsertMessage(ctx, msg); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
		fmt.Printf("  сообщение от %s добавлено\n", m.username)
	}

	// Каталог для вложений
	if _, err := files.NewStore(uploads); err != nil {
		return err
	}
	fmt.Printf("Каталог %s создан\n", uploads)

	fmt.Printf("База данных готова: %s\n", database)
	return nil
}

// registerUser регистрирует одну учетную запись, запрашивая пароль с
// терминала без эха
func registerUser(ctx context.Context, authService *auth.Service, username string) error {
	fmt.Printf("Пароль для %s: ", username)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := authService.Register(ctx, username, string(password)); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return fmt.Errorf("пользователь %s уже существует", username)
		}
		return err
	}

	fmt.Printf("Пользователь %s добавлен\n", username)
	return nil
}
