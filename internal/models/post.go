// Package models defines the data types stored in the feed database.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxPostBodyLength caps the body of a post in characters.
const MaxPostBodyLength = 2000

// SQLTimestampLayout is the zone-less form the feed stores by default.
const SQLTimestampLayout = "2006-01-02 15:04:05"

// Post is a feed entry. CreatedAt holds the timestamp exactly as it was
// supplied; it is never normalised so that every accepted encoding can
// round-trip through the feed.
type Post struct {
	ID         int64     `json:"id"`
	Author     string    `json:"author"`
	Body       string    `json:"body"`
	CreatedAt  string    `json:"created_at"`
	InsertedAt time.Time `json:"inserted_at"`
}

// DefaultCreatedAt formats t the way the feed stores new posts.
func DefaultCreatedAt(t time.Time) string {
	return t.UTC().Format(SQLTimestampLayout)
}

// Validate validates the post fields.
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Author) == "" {
		return fmt.Errorf("post author cannot be empty")
	}
	if strings.TrimSpace(p.Body) == "" {
		return fmt.Errorf("post body cannot be empty")
	}
	if utf8.RuneCountInString(p.Body) > MaxPostBodyLength {
		return fmt.Errorf("post body exceeds %d characters", MaxPostBodyLength)
	}
	if strings.TrimSpace(p.CreatedAt) == "" {
		return fmt.Errorf("post timestamp cannot be empty")
	}
	return nil
}
