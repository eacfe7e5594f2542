// Package repository реализует хранилище данных на основе PostgreSQL:
// справочники клуба, заявки на визит, контрактные коды, участники,
// подписки и учётные записи identity-сервиса.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound возвращается, когда запрошенная запись отсутствует.
var ErrNotFound = errors.New("not found")

// ErrCodeConflict возвращается, когда контрактный код уже погашен
// конкурентной регистрацией: условный UPDATE не затронул ни одной строки.
var ErrCodeConflict = errors.New("contract code is no longer active")

// ErrEmailTaken возвращается при попытке создать аккаунт с занятым email.
var ErrEmailTaken = errors.New("email already in use")

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'contract_codes'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table contract_codes missing or query error: %w", err)
	}
	return nil
}
