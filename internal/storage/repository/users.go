package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/face-collection/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
//
// Уникальность имени обеспечивает ограничение users.username: при гонке
// двух регистраций ровно одна завершится успехом, вторая получит
// models.ErrUsernameTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"

	var newUID string
	query := `INSERT INTO users (username, password_hash)
			  VALUES ($1, $2)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, models.ErrUsernameTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"

	query := `SELECT uid, username, password_hash, created_at
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	if err := row.Scan(&u.UID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// AddFace атомарно добавляет смайлик в категорию пользователя и возвращает
// полную коллекцию после обновления.
//
// Категория и смайлик — обычные bind-параметры строки (username, category, face),
// а не часть ключа запроса: никакой интерполяции значений в синтаксис запроса.
// Повторное добавление существующего смайлика — no-op за счет
// ON CONFLICT DO NOTHING по первичному ключу.
func (s *Storage) AddFace(ctx context.Context, username, category, face string) (models.Preferences, error) {
	const op = "storage.AddFace"

	query := `INSERT INTO preferences (username, category, face)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (username, category, face) DO NOTHING;`
	if _, err := s.DB.ExecContext(ctx, query, username, category, face); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.ListFaces(ctx, username)
}

// RemoveFace удаляет смайлик из категории пользователя и возвращает полную
// коллекцию после обновления. Удаление отсутствующего смайлика или из
// несуществующей категории — no-op, не ошибка.
func (s *Storage) RemoveFace(ctx context.Context, username, category, face string) (models.Preferences, error) {
	const op = "storage.RemoveFace"

	query := `DELETE FROM preferences
			  WHERE username = $1 AND category = $2 AND face = $3;`
	if _, err := s.DB.ExecContext(ctx, query, username, category, face); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.ListFaces(ctx, username)
}

// ListFaces возвращает всю коллекцию смайликов пользователя.
// У нового пользователя коллекция пуста: возвращается пустая карта, не nil.
func (s *Storage) ListFaces(ctx context.Context, username string) (models.Preferences, error) {
	const op = "storage.ListFaces"

	query := `SELECT category, face
			  FROM preferences
			  WHERE username = $1
			  ORDER BY category, face;`
	rows, err := s.DB.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(models.Preferences)
	for rows.Next() {
		var category, face string
		if err = rows.Scan(&category, &face); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[category] = append(result[category], face)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
