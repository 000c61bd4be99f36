// Package seed loads the launch-project catalog from a YAML file.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/outrun/memeverse/internal/domain/project"
	"gopkg.in/yaml.v3"
)

//go:embed projects.yaml
var defaultSeed []byte

// File is the seed file layout.
type File struct {
	Projects []Entry `yaml:"projects"`
}

// Entry is one project as written in a seed file. Timestamps are RFC 3339.
type Entry struct {
	ID              string             `yaml:"id"`
	Name            string             `yaml:"name"`
	Symbol          string             `yaml:"symbol"`
	Description     string             `yaml:"description"`
	Stage           string             `yaml:"stage"`
	Mode            string             `yaml:"mode"`
	Chain           string             `yaml:"chain"`
	ListedOnOutSwap bool               `yaml:"listedOnOutSwap"`
	MarketCap       float64            `yaml:"marketCap"`
	RaisedAmount    float64            `yaml:"raisedAmount"`
	Population      int64              `yaml:"population"`
	Progress        float64            `yaml:"progress"`
	CreatedAt       string             `yaml:"createdAt"`
	GenesisEndTime  string             `yaml:"genesisEndTime"`
	UnlockTime      string             `yaml:"unlockTime"`
	VaultData       *project.VaultData `yaml:"vaultData"`
	DAOData         *project.DAOData   `yaml:"daoData"`
}

// Store is where seeded projects are written.
type Store interface {
	Create(ctx context.Context, proj *project.Project) (*project.Project, error)
}

// Counter reports how many projects are already stored.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Parse decodes a seed file.
func Parse(r io.Reader) ([]project.Project, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return []project.Project{}, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	projects := make([]project.Project, 0, len(f.Projects))
	for i, e := range f.Projects {
		p, err := e.toProject()
		if err != nil {
			return nil, fmt.Errorf("seed project %d (%s): %w", i, e.Name, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Load parses the seed file at path, or the embedded catalog when path is
// empty.
func Load(path string) ([]project.Project, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultSeed))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Apply writes projects into store when counter reports an empty catalog.
// It returns the number of projects written.
func Apply(ctx context.Context, counter Counter, store Store, projects []project.Project, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	n, err := counter.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Debug("catalog already seeded", "projects", n)
		return 0, nil
	}
	for i := range projects {
		if _, err := store.Create(ctx, &projects[i]); err != nil {
			return i, fmt.Errorf("seed project %q: %w", projects[i].Name, err)
		}
	}
	logger.Info("catalog seeded", "projects", len(projects))
	return len(projects), nil
}

func (e Entry) toProject() (project.Project, error) {
	p := project.Project{
		ID:              e.ID,
		Name:            e.Name,
		Symbol:          e.Symbol,
		Description:     e.Description,
		Stage:           project.Stage(e.Stage),
		Mode:            project.Mode(e.Mode),
		Chain:           e.Chain,
		ListedOnOutSwap: e.ListedOnOutSwap,
		MarketCap:       e.MarketCap,
		RaisedAmount:    e.RaisedAmount,
		Population:      e.Population,
		Progress:        e.Progress,
		VaultData:       e.VaultData,
		DAOData:         e.DAOData,
	}
	var err error
	if p.CreatedAt, err = parseTime(e.CreatedAt); err != nil {
		return p, fmt.Errorf("createdAt: %w", err)
	}
	if p.GenesisEndTime, err = parseTime(e.GenesisEndTime); err != nil {
		return p, fmt.Errorf("genesisEndTime: %w", err)
	}
	if p.UnlockTime, err = parseTime(e.UnlockTime); err != nil {
		return p, fmt.Errorf("unlockTime: %w", err)
	}
	return p, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
