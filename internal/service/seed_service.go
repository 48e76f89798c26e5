package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/repository"
)

// DBTestResult is the payload of the relational connectivity probe.
type DBTestResult struct {
	Message      string          `json:"message"`
	Schools      []models.School `json:"schools"`
	ProfileCount int64           `json:"profile_count"`
}

// SeedService provisions demo reference data and probes database connectivity.
type SeedService interface {
	InitDemoSchools(ctx context.Context) ([]models.School, error)
	ListSchools(ctx context.Context) ([]models.School, error)
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	DBTest(ctx context.Context) (DBTestResult, error)
}

type seedService struct {
	schools  repository.SchoolRepository
	subjects repository.SubjectRepository
	profiles repository.ProfileRepository
	logger   zerolog.Logger
}

// NewSeedService builds a new seed service.
func NewSeedService(
	schools repository.SchoolRepository,
	subjects repository.SubjectRepository,
	profiles repository.ProfileRepository,
	logger zerolog.Logger,
) SeedService {
	return &seedService{
		schools:  schools,
		subjects: subjects,
		profiles: profiles,
		logger:   logger.With().Str("component", "seed_service").Logger(),
	}
}

func demoSchools() []models.School {
	return []models.School{
		{
			Name:    "Delhi Public School Hyderabad",
			Address: "Khajaguda, Nanakramguda Road, Hyderabad",
			Phone:   "+91-40-12345678",
			Email:   "info@dpshyderabad.com",
		},
		{
			Name:    "Oakridge International School",
			Address: "Gachibowli, Hyderabad",
			Phone:   "+91-40-87654321",
			Email:   "admissions@oakridge.in",
		},
		{
			Name:    "Gitanjali School",
			Address: "Begumpet, Hyderabad",
			Phone:   "+91-40-11223344",
			Email:   "contact@gitanjalischool.edu",
		},
	}
}

// InitDemoSchools inserts the demo school fixtures. Existing rows make the
// call a no-op so repeated seeding cannot duplicate them.
func (s *seedService) InitDemoSchools(ctx context.Context) ([]models.School, error) {
	existing, err := s.schools.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return s.schools.List(ctx, 0)
	}

	schools := demoSchools()
	if err := s.schools.CreateBatch(ctx, schools); err != nil {
		return nil, err
	}

	s.logger.Info().Int("count", len(schools)).Msg("demo schools seeded")
	return schools, nil
}

func (s *seedService) ListSchools(ctx context.Context) ([]models.School, error) {
	return s.schools.List(ctx, 0)
}

func (s *seedService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return s.subjects.List(ctx)
}

// DBTest exercises two relational reads and reports the outcome.
func (s *seedService) DBTest(ctx context.Context) (DBTestResult, error) {
	schools, err := s.schools.List(ctx, 5)
	if err != nil {
		return DBTestResult{}, err
	}

	count, err := s.profiles.Count(ctx)
	if err != nil {
		return DBTestResult{}, err
	}

	return DBTestResult{
		Message:      "Database connection successful",
		Schools:      schools,
		ProfileCount: count,
	}, nil
}
