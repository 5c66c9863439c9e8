package store

import (
	"context"
	"errors"
	"fmt"

	"talentgigs/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates and verifies a pgxpool connection pool.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return pool, nil
}

type PostgresPositionSource struct {
	pool *pgxpool.Pool
}

func NewPostgresPositionSource(pool *pgxpool.Pool) *PostgresPositionSource {
	return &PostgresPositionSource{pool: pool}
}

func (s *PostgresPositionSource) GetPage(ctx context.Context, page, pageSize int) ([]models.InternalPosition, error) {
	if page < 1 {
		page = 1
	}
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.title, d.name, p.description, p.created_at
		 FROM positions p
		 JOIN departments d ON d.id = p.department_id
		 ORDER BY p.created_at DESC
		 LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	defer rows.Close()

	var positions []models.InternalPosition
	for rows.Next() {
		var p models.InternalPosition
		if err := rows.Scan(&p.ID, &p.Title, &p.DepartmentName, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (s *PostgresPositionSource) GetByID(ctx context.Context, id string) (*models.InternalPosition, error) {
	var p models.InternalPosition
	err := s.pool.QueryRow(ctx,
		`SELECT p.id, p.title, d.name, p.description, p.created_at
		 FROM positions p
		 JOIN departments d ON d.id = p.department_id
		 WHERE p.id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &p.DepartmentName, &p.Description, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query position %s: %w", id, err)
	}
	return &p, nil
}

type PostgresEmployeeSource struct {
	pool *pgxpool.Pool
}

func NewPostgresEmployeeSource(pool *pgxpool.Pool) *PostgresEmployeeSource {
	return &PostgresEmployeeSource{pool: pool}
}

func (s *PostgresEmployeeSource) GetPage(ctx context.Context, page, pageSize int) ([]models.Employee, error) {
	if page < 1 {
		page = 1
	}
	rows, err := s.pool.Query(ctx,
		`SELECT e.id, e.first_name, e.last_name, e.email, p.title, d.name
		 FROM employees e
		 JOIN positions p ON p.id = e.position_id
		 JOIN departments d ON d.id = p.department_id
		 ORDER BY e.last_name, e.first_name
		 LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.PositionTitle, &e.DepartmentName); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *PostgresEmployeeSource) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	var e models.Employee
	err := s.pool.QueryRow(ctx,
		`SELECT e.id, e.first_name, e.last_name, e.email, p.title, d.name
		 FROM employees e
		 JOIN positions p ON p.id = e.position_id
		 JOIN departments d ON d.id = p.department_id
		 WHERE e.id = $1`,
		id,
	).Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.PositionTitle, &e.DepartmentName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query employee %s: %w", id, err)
	}
	return &e, nil
}
