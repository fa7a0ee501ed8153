package realworld

import (
	"context"
)

// PeopleService wraps the person repository with collection semantics
type PeopleService struct {
	repo   RepositoryManager
	logger Logger
}

func NewPeopleService(repo RepositoryManager) *PeopleService {
	return &PeopleService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *PeopleService) WithLogger(l Logger) *PeopleService {
	s.logger = l
	return s
}

func (s *PeopleService) Get(ctx context.Context, id int64) (*Person, error) {
	return s.repo.People().Get(ctx, id)
}

// List returns matching people. An empty result is reported through
// ErrNoContent so callers can render it without a body.
func (s *PeopleService) List(ctx context.Context, limit int, filters PersonFilters) ([]*Person, error) {
	records, err := s.repo.People().List(ctx, limit, filters)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoContent
	}

	return records, nil
}

func (s *PeopleService) Create(ctx context.Context, firstName, lastName string) (*Person, error) {
	return s.repo.People().Create(ctx, &Person{
		FirstName: firstName,
		LastName:  lastName,
	})
}

func (s *PeopleService) GetOrCreate(ctx context.Context, firstName, lastName string) (*Person, error) {
	return s.repo.People().GetOrCreate(ctx, firstName, lastName)
}

func (s *PeopleService) Update(ctx context.Context, id int64, firstName, lastName string) (*Person, error) {
	return s.repo.People().Update(ctx, &Person{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
	})
}

func (s *PeopleService) Patch(ctx context.Context, id int64, patch PersonPatch) (*Person, error) {
	return s.repo.People().Patch(ctx, id, patch)
}

func (s *PeopleService) Delete(ctx context.Context, id int64) error {
	return s.repo.People().Delete(ctx, id)
}
