package realworld

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// DefaultListLimit caps listings when the caller does not set a limit.
var DefaultListLimit = 250

// People is the person repository
type People interface {
	Get(ctx context.Context, id int64) (*Person, error)
	List(ctx context.Context, limit int, filters PersonFilters) ([]*Person, error)
	Create(ctx context.Context, record *Person) (*Person, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Person) (*Person, error)
	Update(ctx context.Context, record *Person) (*Person, error)
	Patch(ctx context.Context, id int64, patch PersonPatch) (*Person, error)
	Delete(ctx context.Context, id int64) error
	GetOrCreate(ctx context.Context, firstName, lastName string) (*Person, error)
	GetOrCreateTx(ctx context.Context, tx bun.IDB, firstName, lastName string) (*Person, error)
}

type people struct {
	db *bun.DB
}

var _ People = (*people)(nil)

func NewPeopleRepository(db *bun.DB) People {
	return &people{db: db}
}

func (r *people) Get(ctx context.Context, id int64) (*Person, error) {
	record := new(Person)
	err := r.db.NewSelect().
		Model(record).
		Where("ppl.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewRecordNotFound(map[string]any{"person_id": id})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch person")
	}
	return record, nil
}

func (r *people) List(ctx context.Context, limit int, filters PersonFilters) ([]*Person, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var records []*Person
	q := r.db.NewSelect().
		Model(&records).
		Order("ppl.id ASC").
		Limit(limit)

	if filters.FirstName != "" {
		q = q.Where("ppl.first_name = ?", filters.FirstName)
	}
	if filters.LastName != "" {
		q = q.Where("ppl.last_name = ?", filters.LastName)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list people")
	}

	return records, nil
}

func (r *people) Create(ctx context.Context, record *Person) (*Person, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *people) CreateTx(ctx context.Context, tx bun.IDB, record *Person) (*Person, error) {
	if _, err := tx.NewInsert().Model(record).Returning("*").Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create person")
	}
	return record, nil
}

func (r *people) Update(ctx context.Context, record *Person) (*Person, error) {
	now := time.Now()
	record.UpdatedAt = &now

	res, err := r.db.NewUpdate().
		Model(record).
		Column("first_name", "last_name", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update person")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, NewRecordNotFound(map[string]any{"person_id": record.ID})
	}

	return r.Get(ctx, record.ID)
}

func (r *people) Patch(ctx context.Context, id int64, patch PersonPatch) (*Person, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, id)
	}

	now := time.Now()
	q := r.db.NewUpdate().
		Model((*Person)(nil)).
		Set("updated_at = ?", now).
		Where("id = ?", id)

	if patch.FirstName != nil {
		q = q.Set("first_name = ?", *patch.FirstName)
	}
	if patch.LastName != nil {
		q = q.Set("last_name = ?", *patch.LastName)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to patch person")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, NewRecordNotFound(map[string]any{"person_id": id})
	}

	return r.Get(ctx, id)
}

func (r *people) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*Person)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete person")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return NewRecordNotFound(map[string]any{"person_id": id})
	}

	return nil
}

func (r *people) GetOrCreate(ctx context.Context, firstName, lastName string) (*Person, error) {
	return r.GetOrCreateTx(ctx, r.db, firstName, lastName)
}

// GetOrCreateTx returns the person matching the given name pair, creating
// the row when no match exists.
func (r *people) GetOrCreateTx(ctx context.Context, tx bun.IDB, firstName, lastName string) (*Person, error) {
	record := new(Person)
	err := tx.NewSelect().
		Model(record).
		Where("ppl.first_name = ?", firstName).
		Where("ppl.last_name = ?", lastName).
		Limit(1).
		Scan(ctx)
	if err == nil {
		return record, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up person")
	}

	return r.CreateTx(ctx, tx, &Person{
		FirstName: firstName,
		LastName:  lastName,
	})
}
