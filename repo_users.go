package realworld

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the user repository
type Users interface {
	Get(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, limit int, filters UserFilters) ([]*User, error)
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	Update(ctx context.Context, record *User) (*User, error)
	Patch(ctx context.Context, id int64, patch UserPatch) (*User, error)
	Delete(ctx context.Context, id int64) error
	UpdatePasswordTx(ctx context.Context, tx bun.IDB, id int64, passwordHash string) error
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) Get(ctx context.Context, id int64) (*User, error) {
	record := new(User)
	err := r.db.NewSelect().
		Model(record).
		Relation("Person").
		Where("usr.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewRecordNotFound(map[string]any{"user_id": id})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch user")
	}
	return record, nil
}

func (r *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	record := new(User)
	err := r.db.NewSelect().
		Model(record).
		Where("usr.username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewRecordNotFound(map[string]any{"username": username})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch user by username")
	}
	return record, nil
}

func (r *users) List(ctx context.Context, limit int, filters UserFilters) ([]*User, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var records []*User
	q := r.db.NewSelect().
		Model(&records).
		Relation("Person").
		Order("usr.id ASC").
		Limit(limit)

	if filters.Username != "" {
		q = q.Where("usr.username = ?", filters.Username)
	}
	if filters.Active != nil {
		q = q.Where("usr.active = ?", *filters.Active)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}

	return records, nil
}

func (r *users) Create(ctx context.Context, record *User) (*User, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if _, err := tx.NewInsert().Model(record).Returning("*").Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("username already taken", errors.CategoryConflict).
				WithCode(errors.CodeConflict).
				WithMetadata(map[string]any{"username": record.Username})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create user")
	}
	return record, nil
}

func (r *users) Update(ctx context.Context, record *User) (*User, error) {
	now := time.Now()
	record.UpdatedAt = &now

	res, err := r.db.NewUpdate().
		Model(record).
		Column("username", "active", "person_id", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("username already taken", errors.CategoryConflict).
				WithCode(errors.CodeConflict).
				WithMetadata(map[string]any{"username": record.Username})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update user")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, NewRecordNotFound(map[string]any{"user_id": record.ID})
	}

	return r.Get(ctx, record.ID)
}

func (r *users) Patch(ctx context.Context, id int64, patch UserPatch) (*User, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, id)
	}

	now := time.Now()
	q := r.db.NewUpdate().
		Model((*User)(nil)).
		Set("updated_at = ?", now).
		Where("id = ?", id)

	if patch.Username != nil {
		q = q.Set("username = ?", *patch.Username)
	}
	if patch.Active != nil {
		q = q.Set("active = ?", *patch.Active)
	}
	if patch.PersonID != nil {
		q = q.Set("person_id = ?", *patch.PersonID)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("username already taken", errors.CategoryConflict).
				WithCode(errors.CodeConflict)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to patch user")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, NewRecordNotFound(map[string]any{"user_id": id})
	}

	return r.Get(ctx, id)
}

func (r *users) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return NewRecordNotFound(map[string]any{"user_id": id})
	}

	return nil
}

// UpdatePasswordTx swaps the stored hash. It participates in the caller's
// transaction so password changes can be grouped with other writes.
func (r *users) UpdatePasswordTx(ctx context.Context, tx bun.IDB, id int64, passwordHash string) error {
	now := time.Now()
	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update password")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return NewRecordNotFound(map[string]any{"user_id": id})
	}

	return nil
}

// isUniqueViolation sniffs driver error text, sqlite and postgres both
// mention the constraint kind.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
