package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/outrun/memeverse/internal/repository"
)

// Service is the project store. The collection is loaded from the repository
// once and shared read-only by every catalog query.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu     sync.RWMutex
	loaded bool
	cache  []Project
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Create validates and stores a project. Missing ids are generated and a
// missing mode defaults to normal.
func (s *Service) Create(ctx context.Context, proj *Project) (*Project, error) {
	if proj == nil {
		return nil, ErrInvalidInput
	}
	p := *proj
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	if p.Mode == "" {
		p.Mode = ModeNormal
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.mu.Lock()
	s.loaded = false
	s.cache = nil
	s.mu.Unlock()

	return &p, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// All returns the full collection, loading it on first use. Callers must not
// modify the returned slice.
func (s *Service) All(ctx context.Context) ([]Project, error) {
	s.mu.RLock()
	if s.loaded {
		cached := s.cache
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.cache, nil
	}

	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	s.cache = projects
	s.loaded = true
	s.logger.Info("project catalog loaded", "count", len(projects))
	return s.cache, nil
}

// Summarize counts the collection per stage and per chain.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	projects, err := s.All(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{
		Total:   len(projects),
		ByStage: make(map[string]int, len(Stages)),
		ByChain: make(map[string]int),
	}
	for _, st := range Stages {
		sum.ByStage[st.ID()] = 0
	}
	for _, p := range projects {
		sum.ByStage[p.Stage.ID()]++
		sum.ByChain[strings.ToLower(p.Chain)]++
	}
	return sum, nil
}
