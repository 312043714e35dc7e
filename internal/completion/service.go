package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/providers/openai"
	"github.com/feral-file/ff-gallery-indexer/internal/types"
)

// maxMarkdownRunes bounds the page text sent to the model
const maxMarkdownRunes = 60000

// Service turns page markdown into typed, validated results.
// It never retries; retries belong to the calling workflow.
//
//go:generate mockgen -source=service.go -destination=../mocks/completion.go -package=mocks -mock_names=Service=MockCompletionService
type Service interface {
	// Classify returns the kind of a page
	Classify(ctx context.Context, markdown string, url string) (domain.PageKind, error)

	// ExtractPage returns the kind of a page and, for event details, the event payload
	ExtractPage(ctx context.Context, markdown string, url string) (domain.Extraction, error)

	// ExtractGallery returns the gallery facts stated on one of its own pages
	ExtractGallery(ctx context.Context, markdown string, url string) (*domain.GalleryPayload, error)

	// ExtractOpeningHours parses free-form opening hours into weekly ranges
	ExtractOpeningHours(ctx context.Context, text string) ([]domain.OpeningHours, error)

	// Embed returns the embedding of text together with the model name
	Embed(ctx context.Context, text string) ([]float32, string, error)
}

type service struct {
	client   openai.Client
	validate *validator.Validate
}

// NewService creates a completion service backed by client
func NewService(client openai.Client) Service {
	return &service{
		client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type classifyResult struct {
	Kind domain.PageKind `json:"kind"`
}

type extractPageResult struct {
	Kind  domain.PageKind      `json:"kind"`
	Event *domain.EventPayload `json:"event"`
}

type openingHoursResult struct {
	Hours []domain.OpeningHours `json:"hours" validate:"dive"`
}

func pageInput(markdown string, url string) string {
	if utf8.RuneCountInString(markdown) > maxMarkdownRunes {
		markdown = string([]rune(markdown)[:maxMarkdownRunes])
	}
	return fmt.Sprintf("URL: %s\n\n%s", url, markdown)
}

func (s *service) generate(ctx context.Context, system string, user string, schemaName string, schema map[string]any, out interface{}) error {
	raw, err := s.client.GenerateJSON(ctx, system, user, schemaName, schema)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s is not valid json: %v", domain.ErrInvalidExtraction, schemaName, err)
	}
	return nil
}

func (s *service) Classify(ctx context.Context, markdown string, url string) (domain.PageKind, error) {
	var result classifyResult
	if err := s.generate(ctx, classifySystemPrompt, pageInput(markdown, url), "page_kind", classifySchema(), &result); err != nil {
		return "", err
	}

	if !result.Kind.Valid() || result.Kind.Provisional() {
		return "", fmt.Errorf("%w: unexpected kind %q", domain.ErrInvalidExtraction, result.Kind)
	}
	return result.Kind, nil
}

func (s *service) ExtractPage(ctx context.Context, markdown string, url string) (domain.Extraction, error) {
	var result extractPageResult
	if err := s.generate(ctx, extractPageSystemPrompt, pageInput(markdown, url), "page_extraction", extractPageSchema(), &result); err != nil {
		return nil, err
	}

	if result.Kind != domain.PageKindEventDetail {
		return domain.NewKindOnly(result.Kind)
	}

	if result.Event == nil {
		return nil, fmt.Errorf("%w: event_detail without event payload", domain.ErrInvalidExtraction)
	}

	payload := normalizeEvent(*result.Event)
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExtraction, err)
	}
	return domain.EventDetail{Payload: payload}, nil
}

func (s *service) ExtractGallery(ctx context.Context, markdown string, url string) (*domain.GalleryPayload, error) {
	var payload domain.GalleryPayload
	if err := s.generate(ctx, extractGallerySystemPrompt, pageInput(markdown, url), "gallery", gallerySchema(), &payload); err != nil {
		return nil, err
	}

	payload = normalizeGallery(payload)
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExtraction, err)
	}
	return &payload, nil
}

func (s *service) ExtractOpeningHours(ctx context.Context, text string) ([]domain.OpeningHours, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []domain.OpeningHours{}, nil
	}

	var result openingHoursResult
	if err := s.generate(ctx, openingHoursSystemPrompt, text, "opening_hours", openingHoursSchema(), &result); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExtraction, err)
	}
	if result.Hours == nil {
		return []domain.OpeningHours{}, nil
	}
	return result.Hours, nil
}

func (s *service) Embed(ctx context.Context, text string) ([]float32, string, error) {
	vector, err := s.client.Embed(ctx, text)
	if err != nil {
		return nil, "", err
	}
	return vector, s.client.EmbeddingModel(), nil
}

func normalizeEvent(p domain.EventPayload) domain.EventPayload {
	p.Title = strings.TrimSpace(p.Title)
	p.StartAt = types.TrimmedPtr(p.StartAt)
	p.EndAt = types.TrimmedPtr(p.EndAt)
	p.Timezone = types.TrimmedPtr(p.Timezone)
	p.TicketURL = types.TrimmedPtr(p.TicketURL)
	p.Description = types.TrimmedPtr(p.Description)
	p.Artists = types.UniqueStrings(p.Artists)
	p.Tags = types.UniqueStrings(p.Tags)
	p.Images = types.UniqueStrings(p.Images)
	for i := range p.Occurrences {
		p.Occurrences[i].StartAt = types.TrimmedPtr(p.Occurrences[i].StartAt)
		p.Occurrences[i].EndAt = types.TrimmedPtr(p.Occurrences[i].EndAt)
		p.Occurrences[i].Timezone = types.TrimmedPtr(p.Occurrences[i].Timezone)
	}
	for i := range p.Prices {
		p.Prices[i].Label = types.TrimmedPtr(p.Prices[i].Label)
		if c := types.TrimmedPtr(p.Prices[i].Currency); c != nil {
			upper := strings.ToUpper(*c)
			p.Prices[i].Currency = &upper
		} else {
			p.Prices[i].Currency = nil
		}
	}
	if p.Prices == nil {
		p.Prices = []domain.Price{}
	}
	if p.Occurrences == nil {
		p.Occurrences = []domain.Occurrence{}
	}
	return p
}

func normalizeGallery(p domain.GalleryPayload) domain.GalleryPayload {
	p.Name = types.TrimmedPtr(p.Name)
	p.About = types.TrimmedPtr(p.About)
	p.Address = types.TrimmedPtr(p.Address)
	p.District = types.TrimmedPtr(p.District)
	p.Instagram = types.TrimmedPtr(p.Instagram)
	p.Email = types.TrimmedPtr(p.Email)
	p.Phone = types.TrimmedPtr(p.Phone)
	p.Website = types.TrimmedPtr(p.Website)
	p.OpeningHoursText = types.TrimmedPtr(p.OpeningHoursText)
	p.Tags = types.UniqueStrings(p.Tags)
	return p
}
