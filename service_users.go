package realworld

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// UsersService wraps the user repository with registration and password flows
type UsersService struct {
	repo   RepositoryManager
	logger Logger
}

func NewUsersService(repo RepositoryManager) *UsersService {
	return &UsersService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *UsersService) WithLogger(l Logger) *UsersService {
	s.logger = l
	return s
}

func (s *UsersService) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Users().Get(ctx, id)
}

// List returns matching users, reporting empty results through ErrNoContent.
func (s *UsersService) List(ctx context.Context, limit int, filters UserFilters) ([]*User, error) {
	records, err := s.repo.Users().List(ctx, limit, filters)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoContent
	}

	return records, nil
}

// CreateWithPerson registers a user and its person row in one transaction.
// The person is matched by name pair first so repeated registrations reuse
// the same row, and a failure at any step rolls the whole write back.
func (s *UsersService) CreateWithPerson(ctx context.Context, username, password, firstName, lastName string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	var created *User
	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		person, err := s.repo.People().GetOrCreateTx(ctx, tx, firstName, lastName)
		if err != nil {
			return err
		}

		created, err = s.repo.Users().CreateTx(ctx, tx, &User{
			Username:     username,
			PasswordHash: hash,
			Active:       true,
			PersonID:     &person.ID,
		})
		if err != nil {
			return err
		}

		created.Person = person
		return nil
	})
	if err != nil {
		s.logger.Error("CreateWithPerson transaction failed", "error", err)
		return nil, err
	}

	return created, nil
}

func (s *UsersService) Update(ctx context.Context, id int64, username string, active bool, personID *int64) (*User, error) {
	return s.repo.Users().Update(ctx, &User{
		ID:       id,
		Username: username,
		Active:   active,
		PersonID: personID,
	})
}

func (s *UsersService) Patch(ctx context.Context, id int64, patch UserPatch) (*User, error) {
	return s.repo.Users().Patch(ctx, id, patch)
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	return s.repo.Users().Delete(ctx, id)
}

// UpdatePassword swaps the stored hash after checking the current password.
// A wrong current password surfaces as a validation error rather than an
// auth error, the caller already holds a valid session.
func (s *UsersService) UpdatePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	user, err := s.repo.Users().Get(ctx, id)
	if err != nil {
		return err
	}

	if err := ComparePasswordAndHash(currentPassword, user.PasswordHash); err != nil {
		return errors.New("current password does not match", errors.CategoryValidation).
			WithTextCode("PASSWORD_MISMATCH")
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.repo.Users().UpdatePasswordTx(ctx, tx, user.ID, hash)
	})
}
