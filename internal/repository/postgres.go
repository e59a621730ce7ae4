package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"estatecore/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// propertyColumns is the shared SELECT list for catalog rows.
const propertyColumns = `
	id, title, developer, price, bedrooms, bathrooms, area_sqft, unit_type,
	status, location, latitude, longitude, cover_image, images, description,
	listed_date, created_at, updated_at`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// GetProperties performs a filtered catalog search and returns one page of
// rows plus the total match count.
func (r *PostgresRepository) GetProperties(
	ctx context.Context,
	filters *model.SearchFilters,
	limit, offset int,
) ([]model.Property, int, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filters != nil {
		if filters.Type != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("unit_type ILIKE $%d", argIndex))
			args = append(args, "%"+*filters.Type+"%")
			argIndex++
		}
		if filters.Bedrooms != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("bedrooms = $%d", argIndex))
			args = append(args, *filters.Bedrooms)
			argIndex++
		}
		if filters.MinPrice != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
			args = append(args, *filters.MinPrice)
			argIndex++
		}
		if filters.MaxPrice != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
			args = append(args, *filters.MaxPrice)
			argIndex++
		}
		if filters.Location != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("location ILIKE $%d", argIndex))
			args = append(args, "%"+*filters.Location+"%")
			argIndex++
		}
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count results: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE %s
		ORDER BY listed_date DESC NULLS LAST, id
		LIMIT $%d OFFSET $%d
	`, propertyColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	var properties []model.Property
	if err := r.db.SelectContext(ctx, &properties, selectQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch properties: %w", err)
	}

	return properties, total, nil
}

// GetPropertyByID retrieves a single property. Returns nil without error
// when the id is unknown.
func (r *PostgresRepository) GetPropertyByID(ctx context.Context, id int64) (*model.Property, error) {
	var property model.Property
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = $1", propertyColumns)
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// SimilarProperties returns the nearest catalog neighbours of the given
// property by embedding distance. Rows without an embedding are skipped;
// an unembedded anchor yields an empty result.
func (r *PostgresRepository) SimilarProperties(ctx context.Context, id int64, limit int) ([]model.Property, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE id <> $1
		  AND embedding IS NOT NULL
		ORDER BY embedding <=> (SELECT embedding FROM properties WHERE id = $1)
		LIMIT $2
	`, propertyColumns)

	var properties []model.Property
	if err := r.db.SelectContext(ctx, &properties, query, id, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch similar properties: %w", err)
	}
	return properties, nil
}

// UpdateEmbedding updates the embedding vector for a property
func (r *PostgresRepository) UpdateEmbedding(ctx context.Context, propertyID int64, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	query := `UPDATE properties SET embedding = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, vec, propertyID)
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return nil
}

// BatchUpdateEmbeddings updates embeddings for multiple properties
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE properties SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		_, err := stmt.ExecContext(ctx, vec, item.PropertyID)
		if err != nil {
			errors = append(errors, fmt.Sprintf("property_id %d: %v", item.PropertyID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// LogChat records a routed chat turn for the audit trail. Callers treat
// failures as non-fatal.
func (r *PostgresRepository) LogChat(
	ctx context.Context,
	message string,
	language string,
	intent model.Intent,
	resultCount int,
	responseTimeMs int,
) error {
	query := `
		INSERT INTO chat_logs (message, language, intent, result_count, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, message, language, string(intent), resultCount, responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log chat: %w", err)
	}
	return nil
}

// LogInterest records a "set interest" lead from the map popup.
func (r *PostgresRepository) LogInterest(ctx context.Context, req *model.InterestRequest) error {
	query := `
		INSERT INTO interest_leads (property_id, name, phone, email, source)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, req.PropertyID, req.Name, req.Phone, req.Email, req.Source)
	if err != nil {
		return fmt.Errorf("failed to log interest: %w", err)
	}
	return nil
}
