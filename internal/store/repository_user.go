package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/models"
)

// userRepository is the SQL implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	*conn
}

// CreateUser persists a new user record and returns it with the
// creation time set. The caller generates user.UserID.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.AppUser) (models.AppUser, error) {
	log := logger.FromContext(ctx)

	user.CreatedAt = now()

	query, args, err := r.sb.Insert(usersTable).
		Columns("user_id", "email", "password_hash", "first_name", "last_name", "created_at").
		Values(user.UserID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt).
		ToSql()
	if err != nil {
		return models.AppUser{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// create user in db
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		if r.ec.IsUniqueViolation(err) {
			log.Warn().Str("func", "*userRepository.CreateUser").Msg("email is already registered")
			return models.AppUser{}, ErrEmailAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.AppUser{}, r.wrap(ErrExecutingQuery, err)
	}

	user.Password = ""
	return user, nil
}

// FindUserByEmail retrieves the user registered with email.
// Returns [ErrUserNotFound] when no such user exists.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.AppUser, error) {
	return r.findUser(ctx, "email", email)
}

// FindUserByID retrieves the user with the given id.
// Returns [ErrUserNotFound] when no such user exists.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.AppUser, error) {
	return r.findUser(ctx, "user_id", userID)
}

func (r *userRepository) findUser(ctx context.Context, column, value string) (models.AppUser, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.sb, column, value)
	if err != nil {
		return models.AppUser{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.AppUser
	err = r.q.QueryRowContext(ctx, query, args...).Scan(
		&found.UserID,
		&found.Email,
		&found.PasswordHash,
		&found.FirstName,
		&found.LastName,
		&found.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AppUser{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Str("by", column).Msg("error reading user")
		return models.AppUser{}, r.wrap(ErrExecutingQuery, err)
	}

	return found, nil
}
