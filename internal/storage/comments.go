package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Comment is a free-text note, weakly linked to a person and/or source.
type Comment struct {
	CommentID string  `json:"comment_id"`
	PersonID  *string `json:"person_id"`
	SourceID  *string `json:"source_id"`
	Author    *string `json:"author"`
	Text      string  `json:"text"`
	CreatedAt string  `json:"created_at"`
}

// CommentInput carries the add_comment fields.
type CommentInput struct {
	CommentID string
	PersonID  string
	SourceID  string
	Author    string
	Text      string
}

// InsertComment creates a comment row.
func (db *DB) InsertComment(ctx context.Context, in CommentInput) error {
	query, args, err := db.sb.Insert("comments").
		Columns("comment_id", "person_id", "source_id", "author", "text", "created_at").
		Values(in.CommentID, nullString(in.PersonID), nullString(in.SourceID),
			nullString(in.Author), in.Text, now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for comment: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert comment %s: %w", in.CommentID, err)
	}
	return nil
}

// ListPersonComments returns all comments for a person in creation order.
func (db *DB) ListPersonComments(ctx context.Context, personID string) ([]Comment, error) {
	query, args, err := db.sb.Select("comment_id", "person_id", "source_id",
		"author", "text", "created_at").
		From("comments").
		Where(sq.Eq{"person_id": personID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comment list: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for %s: %w", personID, err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		var personID, sourceID, author sql.NullString
		err := rows.Scan(&c.CommentID, &personID, &sourceID, &author,
			&c.Text, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		c.PersonID = strPtr(personID)
		c.SourceID = strPtr(sourceID)
		c.Author = strPtr(author)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
