package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/repositories"
)

// SeedSize is the number of placeholder people a new collection gets.
const SeedSize = 20

// Row is a person as shown on the dashboard.
type Row struct {
	models.Person
	Age int
}

// PeopleService implements the dashboard operations on one user's
// collection. Every mutation builds the new collection on a copy, persists
// it and only then reports success, so a failed write leaves the stored
// collection as it was.
type PeopleService struct {
	store  repositories.Store
	logger logging.Logger
	seed   bool
	now    func() time.Time
}

func NewPeopleService(store repositories.Store, logger logging.Logger, seed bool) *PeopleService {
	return &PeopleService{
		store:  store,
		logger: logger.With("module", "people"),
		seed:   seed,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for ages.
func (s *PeopleService) WithClock(now func() time.Time) *PeopleService {
	s.now = now
	return s
}

// Now returns the service clock's current time.
func (s *PeopleService) Now() time.Time { return s.now() }

// SeedPeople returns the placeholder collection: Person 1 born 1980-01-01
// up to Person 20 born 1999-01-01.
func SeedPeople() []models.Person {
	out := make([]models.Person, 0, SeedSize)
	for i := 0; i < SeedSize; i++ {
		out = append(out, models.Person{
			ID:          int64(i + 1),
			Name:        fmt.Sprintf("Person %d", i+1),
			DateOfBirth: models.NewDate(1980+i, time.January, 1),
		})
	}
	return out
}

// List returns the collection in storage order. A user without a
// collection gets the seed (persisted) when seeding is on and an empty
// list otherwise.
func (s *PeopleService) List(ctx context.Context, email string) ([]models.Person, error) {
	people, err := s.store.ListPeople(ctx, email)
	if err == nil {
		return people, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "list people", "email", email, "error", err)
		return nil, common.ErrorInternal
	}
	if !s.seed {
		return []models.Person{}, nil
	}

	seed := SeedPeople()
	if err := s.store.SavePeople(ctx, email, seed); err != nil {
		s.logger.Error(ctx, "save seed", "email", email, "error", err)
		return nil, common.ErrorInternal
	}
	s.logger.Info(ctx, "seeded collection", "email", email, "count", len(seed))
	return repositories.ClonePeople(seed), nil
}

// Rows returns the collection sorted by name then id with ages computed
// for the service clock.
func (s *PeopleService) Rows(ctx context.Context, email string) ([]Row, error) {
	people, err := s.List(ctx, email)
	if err != nil {
		return nil, err
	}
	return ToRows(people, s.now()), nil
}

// ToRows sorts people for display and derives ages at now.
func ToRows(people []models.Person, now time.Time) []Row {
	rows := make([]Row, 0, len(people))
	for _, p := range people {
		rows = append(rows, Row{Person: p, Age: p.Age(now)})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

// Get returns one person or common.ErrorNotFound.
func (s *PeopleService) Get(ctx context.Context, email string, id int64) (models.Person, error) {
	people, err := s.List(ctx, email)
	if err != nil {
		return models.Person{}, err
	}
	if i := indexOf(people, id); i >= 0 {
		return people[i], nil
	}
	return models.Person{}, common.ErrorNotFound
}

// Add validates in and appends a person with id max(id)+1.
func (s *PeopleService) Add(ctx context.Context, email string, in models.PersonInput) (models.Person, error) {
	name, dob, err := in.Validate()
	if err != nil {
		return models.Person{}, err
	}

	people, err := s.List(ctx, email)
	if err != nil {
		return models.Person{}, err
	}

	p := models.Person{ID: NextID(people), Name: name, DateOfBirth: dob}
	next := append(repositories.ClonePeople(people), p)

	if err := s.save(ctx, email, next); err != nil {
		return models.Person{}, err
	}
	s.logger.Info(ctx, "person added", "email", email, "id", p.ID)
	return p, nil
}

// Update replaces the name and date of birth of person id. The id itself
// never changes.
func (s *PeopleService) Update(ctx context.Context, email string, id int64, in models.PersonInput) (models.Person, error) {
	name, dob, err := in.Validate()
	if err != nil {
		return models.Person{}, err
	}

	people, err := s.List(ctx, email)
	if err != nil {
		return models.Person{}, err
	}
	i := indexOf(people, id)
	if i < 0 {
		return models.Person{}, common.ErrorNotFound
	}

	next := repositories.ClonePeople(people)
	next[i] = models.Person{ID: id, Name: name, DateOfBirth: dob}

	if err := s.save(ctx, email, next); err != nil {
		return models.Person{}, err
	}
	s.logger.Info(ctx, "person updated", "email", email, "id", id)
	return next[i], nil
}

// Delete removes person id. It reports false, and writes nothing, when no
// such person exists.
func (s *PeopleService) Delete(ctx context.Context, email string, id int64) (bool, error) {
	people, err := s.List(ctx, email)
	if err != nil {
		return false, err
	}
	i := indexOf(people, id)
	if i < 0 {
		return false, nil
	}

	next := make([]models.Person, 0, len(people)-1)
	next = append(next, people[:i]...)
	next = append(next, people[i+1:]...)

	if err := s.save(ctx, email, next); err != nil {
		return false, err
	}
	s.logger.Info(ctx, "person deleted", "email", email, "id", id)
	return true, nil
}

func (s *PeopleService) save(ctx context.Context, email string, people []models.Person) error {
	if err := s.store.SavePeople(ctx, email, people); err != nil {
		s.logger.Error(ctx, "save people", "email", email, "error", err)
		return common.ErrorInternal
	}
	return nil
}

// NextID returns max(id)+1, or 1 for an empty collection.
func NextID(people []models.Person) int64 {
	var top int64
	for _, p := range people {
		if p.ID > top {
			top = p.ID
		}
	}
	return top + 1
}

func indexOf(people []models.Person, id int64) int {
	for i, p := range people {
		if p.ID == id {
			return i
		}
	}
	return -1
}
