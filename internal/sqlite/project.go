package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/outrun/memeverse/internal/domain/project"
	"github.com/outrun/memeverse/internal/repository"
)

const projectColumns = `
	id, name, symbol, description, stage, mode, chain, listed_on_outswap,
	market_cap, raised_amount, population, progress,
	created_at, genesis_end_time, unlock_time, staking_apy, treasury_value`

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var stakingAPY, treasuryValue sql.NullFloat64
	if proj.VaultData != nil {
		stakingAPY = sql.NullFloat64{Float64: proj.VaultData.StakingAPY, Valid: true}
	}
	if proj.DAOData != nil {
		treasuryValue = sql.NullFloat64{Float64: proj.DAOData.TreasuryValue, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Symbol,
		proj.Description,
		string(proj.Stage),
		string(proj.Mode),
		proj.Chain,
		proj.ListedOnOutSwap,
		proj.MarketCap,
		proj.RaisedAmount,
		proj.Population,
		proj.Progress,
		formatTime(proj.CreatedAt),
		nullTime(proj.GenesisEndTime),
		nullTime(proj.UnlockTime),
		stakingAPY,
		treasuryValue,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return proj, nil
}

// List returns every project in insertion order
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY rowid ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Count returns the number of stored projects
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var (
		proj                    project.Project
		stage, mode, createdAt  string
		genesisEnd, unlock      sql.NullString
		stakingAPY, treasuryVal sql.NullFloat64
	)
	err := row.Scan(
		&proj.ID,
		&proj.Name,
		&proj.Symbol,
		&proj.Description,
		&stage,
		&mode,
		&proj.Chain,
		&proj.ListedOnOutSwap,
		&proj.MarketCap,
		&proj.RaisedAmount,
		&proj.Population,
		&proj.Progress,
		&createdAt,
		&genesisEnd,
		&unlock,
		&stakingAPY,
		&treasuryVal,
	)
	if err != nil {
		return nil, err
	}

	proj.Stage = project.Stage(stage)
	proj.Mode = project.Mode(mode)
	if proj.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if proj.GenesisEndTime, err = scanNullTime(genesisEnd); err != nil {
		return nil, err
	}
	if proj.UnlockTime, err = scanNullTime(unlock); err != nil {
		return nil, err
	}
	if stakingAPY.Valid {
		proj.VaultData = &project.VaultData{StakingAPY: stakingAPY.Float64}
	}
	if treasuryVal.Valid {
		proj.DAOData = &project.DAOData{TreasuryValue: treasuryVal.Float64}
	}
	return &proj, nil
}
