package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"interview-stories/internal/domain"
	"interview-stories/internal/llm"
)

// RewriteMode selecciona el tipo de reescritura.
type RewriteMode string

const (
	RewriteStar     RewriteMode = "star"
	RewriteKeywords RewriteMode = "keywords"
)

const (
	starSystemPrompt     = "You are an assistant that optimizes interview stories."
	keywordsSystemPrompt = "You are an assistant that highlights key words in interview stories."

	starUserPrompt = "Optimize the following interview story using the STAR method. " +
		"Ensure the optimized story is about 5-10 sentences long. " +
		"Please write the optimized story in the first person and present it as a single paragraph. " +
		"Here's the story:\n\n"
	keywordsUserPrompt = "For the following interview story, identify key impactful words or short phrases " +
		"that help tell the story powerfully. Make these words/phrases bold using markdown (e.g., **word**). " +
		"Return ONLY the full story with these words highlighted, with no introductory text. " +
		"Ensure the final output is in the first person and presented as a single paragraph. " +
		"Here's the story:\n\n"
)

// RewriteService transforma texto con el LLM. Nunca escribe en el store.
type RewriteService struct {
	logger  *zap.Logger
	client  llm.Client
	stories *StoryService
}

func NewRewriteService(logger *zap.Logger, client llm.Client, stories *StoryService) *RewriteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RewriteService{
		logger:  logger,
		client:  client,
		stories: stories,
	}
}

func ParseRewriteMode(raw string) (RewriteMode, error) {
	switch RewriteMode(strings.ToLower(strings.TrimSpace(raw))) {
	case RewriteStar:
		return RewriteStar, nil
	case RewriteKeywords:
		return RewriteKeywords, nil
	default:
		return "", ErrInvalidRewriteMode
	}
}

// BuildRewritePrompt arma el prompt para el modo dado.
func BuildRewritePrompt(content string, mode RewriteMode) (llm.Prompt, error) {
	switch mode {
	case RewriteStar:
		return llm.Prompt{System: starSystemPrompt, User: starUserPrompt + content}, nil
	case RewriteKeywords:
		return llm.Prompt{System: keywordsSystemPrompt, User: keywordsUserPrompt + content}, nil
	default:
		return llm.Prompt{}, ErrInvalidRewriteMode
	}
}

func (s *RewriteService) Rewrite(ctx context.Context, content, rawMode string) (string, error) {
	if verr := missingFields("storyContent", content, "optimizationType", rawMode); verr != nil {
		return "", verr
	}
	mode, err := ParseRewriteMode(rawMode)
	if err != nil {
		return "", err
	}
	prompt, err := BuildRewritePrompt(content, mode)
	if err != nil {
		return "", err
	}
	if s.client == nil {
		return "", llm.ErrDisabled
	}

	out, err := s.client.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrDisabled) {
			return "", llm.ErrDisabled
		}
		s.logger.Error("llm rewrite failed", zap.String("mode", string(mode)), zap.Error(err))
		return "", ErrRewriteFailed
	}
	return strings.TrimSpace(out), nil
}

// RewriteStory reescribe el contenido de una historia propia sin modificarla.
// La propiedad se valida antes que el modo.
func (s *RewriteService) RewriteStory(ctx context.Context, identity domain.Identity, storyID, rawMode string) (string, error) {
	if s.stories == nil {
		return "", errors.New("rewrite service not configured")
	}
	story, err := s.stories.Get(ctx, identity, storyID)
	if err != nil {
		return "", err
	}
	if verr := missingFields("optimizationType", rawMode); verr != nil {
		return "", verr
	}
	return s.Rewrite(ctx, story.Content, rawMode)
}
