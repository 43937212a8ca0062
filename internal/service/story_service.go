package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"interview-stories/internal/domain"
	"interview-stories/internal/repository"
)

// Operation identifica que se quiere hacer sobre una historia existente.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// AccessDecision es el resultado del control de acceso por propiedad.
type AccessDecision int

const (
	AccessGranted AccessDecision = iota
	AccessNotFound
	AccessForbidden
)

func (d AccessDecision) String() string {
	switch d {
	case AccessGranted:
		return "granted"
	case AccessNotFound:
		return "not_found"
	case AccessForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// StoryService aplica la regla de propiedad sobre el repositorio de historias.
type StoryService struct {
	stories repository.StoryRepository
	now     func() time.Time
}

// NewStoryService trunca los timestamps a microsegundos, la precision de Postgres.
func NewStoryService(stories repository.StoryRepository) *StoryService {
	return &StoryService{
		stories: stories,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

type StoryInput struct {
	Title            string
	ShortDescription string
	Content          string
	// Published nil conserva el valor actual (update) o usa true (create).
	Published *bool
}

// Authorize se evalua en cada request; nunca se cachea. La existencia se
// chequea antes que la propiedad. Un id que no es uuid no puede existir.
func (s *StoryService) Authorize(ctx context.Context, identity domain.Identity, storyID string, op Operation) (AccessDecision, domain.Story, error) {
	if _, err := uuid.Parse(storyID); err != nil {
		return AccessNotFound, domain.Story{}, nil
	}
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AccessNotFound, domain.Story{}, nil
		}
		return AccessNotFound, domain.Story{}, fmt.Errorf("%s story %s: %w", op, storyID, err)
	}
	if identity.ID == "" || story.AuthorID != identity.ID {
		return AccessForbidden, domain.Story{}, nil
	}
	return AccessGranted, story, nil
}

func (s *StoryService) List(ctx context.Context, identity domain.Identity, ownerID string) ([]domain.Story, error) {
	ownerID = strings.TrimSpace(ownerID)
	if identity.ID == "" || ownerID != identity.ID {
		return nil, ErrForbidden
	}
	stories, err := s.stories.ListByAuthor(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return stories, nil
}

func (s *StoryService) Create(ctx context.Context, identity domain.Identity, input StoryInput) (domain.Story, error) {
	if identity.ID == "" {
		return domain.Story{}, ErrUnauthenticated
	}
	input = trimStoryInput(input)
	if err := validateStoryInput(input); err != nil {
		return domain.Story{}, err
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}
	now := s.now()
	story := domain.Story{
		ID:               uuid.NewString(),
		Title:            input.Title,
		ShortDescription: input.ShortDescription,
		Content:          input.Content,
		Published:        published,
		AuthorID:         identity.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.stories.Create(ctx, story); err != nil {
		return domain.Story{}, fmt.Errorf("create story: %w", err)
	}
	return story, nil
}

func (s *StoryService) Get(ctx context.Context, identity domain.Identity, storyID string) (domain.Story, error) {
	return s.authorized(ctx, identity, storyID, OpRead)
}

// Update valida la propiedad y despues escribe; no hay transaccion entre ambos pasos.
func (s *StoryService) Update(ctx context.Context, identity domain.Identity, storyID string, input StoryInput) (domain.Story, error) {
	current, err := s.authorized(ctx, identity, storyID, OpUpdate)
	if err != nil {
		return domain.Story{}, err
	}
	input = trimStoryInput(input)
	if err := validateStoryInput(input); err != nil {
		return domain.Story{}, err
	}

	current.Title = input.Title
	current.ShortDescription = input.ShortDescription
	current.Content = input.Content
	if input.Published != nil {
		current.Published = *input.Published
	}
	current.UpdatedAt = s.now()

	updated, err := s.stories.Update(ctx, current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Story{}, ErrStoryNotFound
		}
		return domain.Story{}, fmt.Errorf("update story: %w", err)
	}
	return updated, nil
}

func (s *StoryService) Delete(ctx context.Context, identity domain.Identity, storyID string) error {
	if _, err := s.authorized(ctx, identity, storyID, OpDelete); err != nil {
		return err
	}
	if err := s.stories.Delete(ctx, storyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStoryNotFound
		}
		return fmt.Errorf("delete story: %w", err)
	}
	return nil
}

func (s *StoryService) authorized(ctx context.Context, identity domain.Identity, storyID string, op Operation) (domain.Story, error) {
	decision, story, err := s.Authorize(ctx, identity, storyID, op)
	if err != nil {
		return domain.Story{}, err
	}
	switch decision {
	case AccessGranted:
		return story, nil
	case AccessForbidden:
		return domain.Story{}, ErrForbidden
	default:
		return domain.Story{}, ErrStoryNotFound
	}
}

func trimStoryInput(input StoryInput) StoryInput {
	input.Title = strings.TrimSpace(input.Title)
	input.ShortDescription = strings.TrimSpace(input.ShortDescription)
	input.Content = strings.TrimSpace(input.Content)
	return input
}

func validateStoryInput(input StoryInput) error {
	if verr := missingFields(
		"title", input.Title,
		"shortDescription", input.ShortDescription,
		"content", input.Content,
	); verr != nil {
		return verr
	}
	if utf8.RuneCountInString(input.ShortDescription) > domain.ShortDescriptionMaxLen {
		return &ValidationError{
			Fields: []string{"shortDescription"},
			Reason: fmt.Sprintf("must be at most %d characters", domain.ShortDescriptionMaxLen),
		}
	}
	return nil
}
