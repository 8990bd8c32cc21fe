package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andy/salesdesk/internal/db"
	"github.com/andy/salesdesk/internal/domain"
	"github.com/google/uuid"
)

const clientColumns = `id, company_name, contact_person, email, phone, address, industry, notes, created_by, created_at, updated_at`

// ClientRepo is a SQLite implementation of ClientRepository
type ClientRepo struct {
	db          *db.DB
	searchLimit int
}

// NewClientRepo creates a new ClientRepo. searchLimit <= 0 uses SearchLimit.
func NewClientRepo(database *db.DB, searchLimit int) *ClientRepo {
	if searchLimit <= 0 {
		searchLimit = SearchLimit
	}
	return &ClientRepo{db: database, searchLimit: searchLimit}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	client := &domain.Client{}
	var createdAt, updatedAt string

	err := row.Scan(
		&client.ID,
		&client.CompanyName,
		&client.ContactPerson,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.Industry,
		&client.Notes,
		&client.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if client.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if client.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return client, nil
}

func (r *ClientRepo) queryClients(ctx context.Context, op, query string, args ...any) ([]*domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, storeErr(op, fmt.Errorf("failed to scan client: %w", err))
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(op, fmt.Errorf("error iterating clients: %w", err))
	}

	return clients, nil
}

// Search returns up to searchLimit clients whose company name or contact
// person contains term, newest first. Matching is on the Go-lowercased
// columns so non-ASCII letters compare case-insensitively too.
func (r *ClientRepo) Search(ctx context.Context, term string) ([]*domain.Client, error) {
	term = domain.NormalizeName(term)
	if term == "" {
		return []*domain.Client{}, nil
	}

	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE normalized_name LIKE ? ESCAPE '\' OR normalized_contact LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	pattern := containsPattern(term)
	return r.queryClients(ctx, "search clients", query, pattern, pattern, r.searchLimit)
}

// FindByName returns the oldest client with the same normalized name, or nil
func (r *ClientRepo) FindByName(ctx context.Context, name string) (*domain.Client, error) {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return nil, nil
	}

	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE normalized_name = ?
		ORDER BY created_at, rowid
		LIMIT 1
	`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, normalized))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("find client by name", err)
	}
	return client, nil
}

// Insert stores a new client, assigning its ID
func (r *ClientRepo) Insert(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return storeErr("insert client", fmt.Errorf("invalid client: %w", err))
	}

	now := time.Now().UTC()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = client.CreatedAt

	id := uuid.NewString()

	query := `
		INSERT INTO clients (id, company_name, normalized_name, contact_person, normalized_contact, email, phone, address, industry, notes, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		client.CompanyName,
		domain.NormalizeName(client.CompanyName),
		client.ContactPerson,
		domain.NormalizeName(client.ContactPerson),
		client.Email,
		client.Phone,
		client.Address,
		client.Industry,
		client.Notes,
		client.CreatedBy,
		formatTime(client.CreatedAt),
		formatTime(client.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storeErr("insert client", fmt.Errorf("%w: %v", ErrDuplicateName, err))
		}
		return storeErr("insert client", err)
	}

	client.ID = id
	return nil
}

// Update applies patch to the client with the given ID and returns the result
func (r *ClientRepo) Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	client, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(client)
	if err := client.Validate(); err != nil {
		return nil, storeErr("update client", fmt.Errorf("invalid client: %w", err))
	}
	client.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE clients
		SET company_name = ?, normalized_name = ?, contact_person = ?, normalized_contact = ?, email = ?, phone = ?,
		    address = ?, industry = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		client.CompanyName,
		domain.NormalizeName(client.CompanyName),
		client.ContactPerson,
		domain.NormalizeName(client.ContactPerson),
		client.Email,
		client.Phone,
		client.Address,
		client.Industry,
		client.Notes,
		formatTime(client.UpdatedAt),
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, storeErr("update client", fmt.Errorf("%w: %v", ErrDuplicateName, err))
		}
		return nil, storeErr("update client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, storeErr("update client", fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rows == 0 {
		return nil, storeErr("update client", ErrNotFound)
	}

	return client, nil
}

// GetByID retrieves a client by ID
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storeErr("get client", ErrNotFound)
		}
		return nil, storeErr("get client", err)
	}
	return client, nil
}

// List returns the most recently created clients. limit <= 0 returns all.
func (r *ClientRepo) List(ctx context.Context, limit int) ([]*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	if limit <= 0 {
		limit = -1
	}
	return r.queryClients(ctx, "list clients", query, limit)
}

// Stats counts clients overall, since a point in time, and by industry
func (r *ClientRepo) Stats(ctx context.Context, since time.Time) (*ClientStats, error) {
	stats := &ClientStats{}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		FROM clients
	`, formatTime(since)).Scan(&stats.Total, &stats.AddedSince)
	if err != nil {
		return nil, storeErr("client stats", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT industry, COUNT(*) AS n
		FROM clients
		WHERE industry != ''
		GROUP BY lower(industry)
		ORDER BY n DESC, industry
	`)
	if err != nil {
		return nil, storeErr("client stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ic IndustryCount
		if err := rows.Scan(&ic.Industry, &ic.Count); err != nil {
			return nil, storeErr("client stats", err)
		}
		stats.Industries = append(stats.Industries, ic)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("client stats", err)
	}

	return stats, nil
}
