package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"interview-stories/internal/domain"
)

// StoryRepository define el contrato de persistencia para historias.
type StoryRepository interface {
	Create(ctx context.Context, story domain.Story) error
	GetByID(ctx context.Context, id string) (domain.Story, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Story, error)
	Update(ctx context.Context, story domain.Story) (domain.Story, error)
	Delete(ctx context.Context, id string) error
}

type PgStoryRepository struct {
	db DBTX
}

func NewPgStoryRepository(db DBTX) *PgStoryRepository {
	return &PgStoryRepository{db: db}
}

const storyColumns = `id, title, short_description, content, published, author_id, created_at, updated_at`

func (r *PgStoryRepository) Create(ctx context.Context, story domain.Story) error {
	const query = `
		INSERT INTO stories (` + storyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		story.ID,
		story.Title,
		story.ShortDescription,
		story.Content,
		story.Published,
		story.AuthorID,
		story.CreatedAt,
		story.UpdatedAt,
	)
	return err
}

func (r *PgStoryRepository) GetByID(ctx context.Context, id string) (domain.Story, error) {
	const query = `
		SELECT ` + storyColumns + `
		FROM stories
		WHERE id = $1
	`
	return scanStory(r.db.QueryRow(ctx, query, id))
}

func (r *PgStoryRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Story, error) {
	const query = `
		SELECT ` + storyColumns + `
		FROM stories
		WHERE author_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stories := make([]domain.Story, 0)
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stories, nil
}

// Update reescribe los campos editables; author_id y created_at no cambian.
func (r *PgStoryRepository) Update(ctx context.Context, story domain.Story) (domain.Story, error) {
	const query = `
		UPDATE stories
		SET title = $2, short_description = $3, content = $4, published = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + storyColumns
	return scanStory(r.db.QueryRow(ctx, query,
		story.ID,
		story.Title,
		story.ShortDescription,
		story.Content,
		story.Published,
		story.UpdatedAt,
	))
}

func (r *PgStoryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM stories WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanStory(row pgx.Row) (domain.Story, error) {
	var s domain.Story
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.ShortDescription,
		&s.Content,
		&s.Published,
		&s.AuthorID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.Story{}, err
	}
	return s, nil
}
