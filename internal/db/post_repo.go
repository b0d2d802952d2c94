package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/diogenes-ai-code/timeago/internal/models"
)

// DefaultPostLimit is used by List when no positive limit is given.
const DefaultPostLimit = 50

// PostRepo provides database operations for feed posts.
type PostRepo struct {
	db *sql.DB
}

// NewPostRepo creates a new PostRepo.
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

// Create inserts a post. An empty CreatedAt is filled with the current time
// in the feed's SQL form; any other value is stored verbatim. inserted_at is
// RFC 3339 UTC so it sorts lexically.
func (r *PostRepo) Create(p *models.Post) error {
	now := time.Now()
	if p.CreatedAt == "" {
		p.CreatedAt = models.DefaultCreatedAt(now)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	query := `
		INSERT INTO posts (author, body, created_at, inserted_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.Exec(query, p.Author, p.Body, p.CreatedAt, now.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get post id: %w", err)
	}

	p.ID = id
	p.InsertedAt = now.UTC().Truncate(time.Second)
	return nil
}

// GetByID retrieves a post by ID. Returns nil if it does not exist.
func (r *PostRepo) GetByID(id int64) (*models.Post, error) {
	query := `SELECT id, author, body, created_at, inserted_at FROM posts WHERE id = ?`
	return r.scanOne(r.db.QueryRow(query, id))
}

// List retrieves the most recently inserted posts, newest first.
func (r *PostRepo) List(limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = DefaultPostLimit
	}

	query := `
		SELECT id, author, body, created_at, inserted_at
		FROM posts
		ORDER BY inserted_at DESC, id DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// Count returns the number of posts.
func (r *PostRepo) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var p models.Post
	var insertedAt string
	if err := row.Scan(&p.ID, &p.Author, &p.Body, &p.CreatedAt, &insertedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, insertedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid inserted_at for post %d: %w", p.ID, err)
	}
	p.InsertedAt = t
	return &p, nil
}

func (r *PostRepo) scanOne(row *sql.Row) (*models.Post, error) {
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return p, nil
}

func (r *PostRepo) scanMany(rows *sql.Rows) ([]*models.Post, error) {
	var posts []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}
