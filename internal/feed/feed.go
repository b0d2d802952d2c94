// Package feed renders stored posts into the HTML page whose timestamps the
// refresher keeps current.
package feed

import (
	"bytes"
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/diogenes-ai-code/timeago/internal/db"
	"github.com/diogenes-ai-code/timeago/internal/models"
)

// DefaultTitle is the page heading when none is configured.
const DefaultTitle = "Feed"

//go:embed templates/feed.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/feed.html"))

type pageData struct {
	Title string
	Posts []*models.Post
}

// Render writes the page for posts. Each post's raw timestamp is the text of
// a ".timestamp" element.
func Render(w io.Writer, title string, posts []*models.Post) error {
	if title == "" {
		title = DefaultTitle
	}
	if err := pageTemplate.ExecuteTemplate(w, "feed.html", pageData{Title: title, Posts: posts}); err != nil {
		return fmt.Errorf("failed to render feed: %w", err)
	}
	return nil
}

// Source builds the feed page from the database on demand.
type Source struct {
	repo  *db.PostRepo
	title string
	limit int
}

// NewSource creates a Source listing up to limit posts.
func NewSource(database *sql.DB, title string, limit int) *Source {
	return &Source{
		repo:  db.NewPostRepo(database),
		title: title,
		limit: limit,
	}
}

// Open renders the current feed and returns it as a reader.
func (s *Source) Open() (io.Reader, error) {
	posts, err := s.repo.List(s.limit)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Render(&buf, s.title, posts); err != nil {
		return nil, err
	}
	return &buf, nil
}
