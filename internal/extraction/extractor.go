package extraction

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/completion"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
	"github.com/feral-file/ff-gallery-indexer/internal/metrics"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
)

const defaultConcurrency = 4

// ClassifyResult reports the outcome of triaging init pages
type ClassifyResult struct {
	// Kinds is the kind assigned to every classified page
	Kinds map[uuid.UUID]domain.PageKind `json:"kinds"`
	// EventCandidates lists pages classified as a probable event detail
	EventCandidates []uuid.UUID `json:"event_candidates"`
	// Skipped lists pages that are not init or have no markdown yet
	Skipped []uuid.UUID `json:"skipped"`
	// Failed maps pages whose classification failed to the error message
	Failed map[uuid.UUID]string `json:"failed"`
}

// ExtractResult reports the outcome of extracting a batch of pages
type ExtractResult struct {
	// Extracted lists pages that ended with parse status ok
	Extracted []uuid.UUID `json:"extracted"`
	// EventDetails lists the extracted pages that carry an event payload
	EventDetails []uuid.UUID `json:"event_details"`
	// Failed maps pages that ended with parse status error to the recorded message
	Failed map[uuid.UUID]string `json:"failed"`
	// Missing lists requested IDs that are not registered
	Missing []uuid.UUID `json:"missing"`
}

// GalleryResult reports the outcome of gallery level extraction
type GalleryResult struct {
	// Sources is the number of gallery pages the facts were merged from
	Sources  int      `json:"sources"`
	Warnings []string `json:"warnings"`
}

// Extractor turns stored page markdown into classified and structured rows
//
//go:generate mockgen -source=extractor.go -destination=../mocks/extractor.go -package=mocks -mock_names=Extractor=MockExtractor
type Extractor interface {
	// ClassifyPages assigns a kind to pages still in kind init.
	// A probable event detail is recorded as event_candidate until extraction confirms it.
	ClassifyPages(ctx context.Context, pageIDs []uuid.UUID) (*ClassifyResult, error)

	// ExtractPages extracts every page independently and records the outcome in page_structured.
	// A failed page never aborts the batch.
	ExtractPages(ctx context.Context, pageIDs []uuid.UUID) (*ExtractResult, error)

	// ExtractGallery merges facts from the gallery's own pages into gallery_info
	// without overwriting values that are already set
	ExtractGallery(ctx context.Context, galleryID uuid.UUID) (*GalleryResult, error)

	// ExtractOpeningHours parses the stored opening hours text of a gallery and replaces its
	// structured hours. It returns the number of stored ranges.
	ExtractOpeningHours(ctx context.Context, galleryID uuid.UUID) (int, error)
}

type extractor struct {
	store       store.Store
	completion  completion.Service
	json        adapter.JSON
	jcs         adapter.JCS
	clock       adapter.Clock
	concurrency int
}

// NewExtractor creates a new extractor
func NewExtractor(store store.Store, completion completion.Service, json adapter.JSON, jcs adapter.JCS, clock adapter.Clock, concurrency int) Extractor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &extractor{
		store:       store,
		completion:  completion,
		json:        json,
		jcs:         jcs,
		clock:       clock,
		concurrency: concurrency,
	}
}

// loadPages returns the registered pages among ids, the missing IDs and the markdown by page
func (e *extractor) loadPages(ctx context.Context, pageIDs []uuid.UUID) ([]schema.Page, []uuid.UUID, map[uuid.UUID]string, error) {
	pages, err := e.store.GetPagesByIDs(ctx, pageIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get pages: %w", err)
	}

	found := make(map[uuid.UUID]struct{}, len(pages))
	for _, p := range pages {
		found[p.ID] = struct{}{}
	}
	missing := []uuid.UUID{}
	for _, id := range pageIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}

	markdown := make(map[uuid.UUID]string, len(pages))
	if len(pages) == 0 {
		return pages, missing, markdown, nil
	}

	ids := make([]uuid.UUID, 0, len(pages))
	for _, p := range pages {
		ids = append(ids, p.ID)
	}
	contents, err := e.store.GetPageContents(ctx, ids)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get page contents: %w", err)
	}
	for _, c := range contents {
		if c.Markdown != nil {
			markdown[c.PageID] = *c.Markdown
		}
	}

	return pages, missing, markdown, nil
}

func (e *extractor) ClassifyPages(ctx context.Context, pageIDs []uuid.UUID) (*ClassifyResult, error) {
	result := &ClassifyResult{
		Kinds:           make(map[uuid.UUID]domain.PageKind),
		EventCandidates: []uuid.UUID{},
		Skipped:         []uuid.UUID{},
		Failed:          make(map[uuid.UUID]string),
	}
	if len(pageIDs) == 0 {
		return result, nil
	}

	pages, _, markdown, err := e.loadPages(ctx, pageIDs)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	pool := pond.NewPool(e.concurrency, pond.WithContext(ctx))
	for _, page := range pages {
		text := markdown[page.ID]
		if page.Kind != domain.PageKindInit || strings.TrimSpace(text) == "" {
			result.Skipped = append(result.Skipped, page.ID)
			continue
		}

		pool.Submit(func() {
			kind, err := e.classifyPage(ctx, page, text)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[page.ID] = err.Error()
				return
			}
			result.Kinds[page.ID] = kind
			if kind == domain.PageKindEventCandidate {
				result.EventCandidates = append(result.EventCandidates, page.ID)
			}
		})
	}
	pool.StopAndWait()

	logger.InfoCtx(ctx, "Classified pages",
		zap.Int("classified", len(result.Kinds)),
		zap.Int("eventCandidates", len(result.EventCandidates)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

func (e *extractor) classifyPage(ctx context.Context, page schema.Page, markdown string) (domain.PageKind, error) {
	kind, err := e.completion.Classify(ctx, markdown, page.NormalizedURL)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to classify page",
			zap.String("pageID", page.ID.String()),
			zap.Error(err))
		return "", err
	}

	// Only extraction may confirm an event detail
	if kind == domain.PageKindEventDetail {
		kind = domain.PageKindEventCandidate
	}

	if _, err := e.store.PromotePageKind(ctx, page.ID, kind); err != nil {
		return "", fmt.Errorf("failed to update page kind: %w", err)
	}
	return kind, nil
}

func (e *extractor) ExtractPages(ctx context.Context, pageIDs []uuid.UUID) (*ExtractResult, error) {
	result := &ExtractResult{
		Extracted:    []uuid.UUID{},
		EventDetails: []uuid.UUID{},
		Failed:       make(map[uuid.UUID]string),
		Missing:      []uuid.UUID{},
	}
	if len(pageIDs) == 0 {
		return result, nil
	}

	pages, missing, markdown, err := e.loadPages(ctx, pageIDs)
	if err != nil {
		return nil, err
	}
	result.Missing = missing
	if len(pages) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(pages))
	for _, p := range pages {
		ids = append(ids, p.ID)
	}
	if err := e.store.MarkPagesQueued(ctx, ids); err != nil {
		return nil, fmt.Errorf("failed to mark pages queued: %w", err)
	}

	var mu sync.Mutex
	pool := pond.NewPool(e.concurrency, pond.WithContext(ctx))
	for _, page := range pages {
		pool.Submit(func() {
			extraction, err := e.extractPage(ctx, page, markdown[page.ID])

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[page.ID] = err.Error()
				return
			}
			result.Extracted = append(result.Extracted, page.ID)
			if extraction.Kind() == domain.PageKindEventDetail {
				result.EventDetails = append(result.EventDetails, page.ID)
			}
		})
	}
	pool.StopAndWait()

	logger.InfoCtx(ctx, "Extracted pages",
		zap.Int("requested", len(pageIDs)),
		zap.Int("extracted", len(result.Extracted)),
		zap.Int("eventDetails", len(result.EventDetails)),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

// extractPage runs the completion service on one page and persists the outcome.
// The returned error is the message recorded on the page.
func (e *extractor) extractPage(ctx context.Context, page schema.Page, markdown string) (domain.Extraction, error) {
	if strings.TrimSpace(markdown) == "" {
		e.saveFailure(ctx, page.ID, domain.ErrNoMarkdown)
		return nil, domain.ErrNoMarkdown
	}

	extraction, err := e.completion.ExtractPage(ctx, markdown, page.NormalizedURL)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to extract page",
			zap.String("pageID", page.ID.String()),
			zap.String("url", page.NormalizedURL),
			zap.Error(err))
		e.saveFailure(ctx, page.ID, err)
		return nil, err
	}

	var (
		payload     []byte
		payloadHash *string
	)
	if detail, ok := extraction.(domain.EventDetail); ok {
		payload, err = e.json.Marshal(detail.Payload)
		if err != nil {
			err = fmt.Errorf("failed to marshal payload: %w", err)
			e.saveFailure(ctx, page.ID, err)
			return nil, err
		}
		hash, err := adapter.CanonicalHash(e.jcs, payload)
		if err != nil {
			err = fmt.Errorf("failed to hash payload: %w", err)
			e.saveFailure(ctx, page.ID, err)
			return nil, err
		}
		payloadHash = &hash
	}

	kind := extraction.Kind()
	now := e.clock.Now()
	if err := e.store.SavePageStructured(ctx, store.SavePageStructuredInput{
		PageID:            page.ID,
		ParseStatus:       domain.ParseStatusOK,
		ExtractedPageKind: &kind,
		Payload:           payload,
		PayloadHash:       payloadHash,
		ParsedAt:          &now,
	}); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to save page structured: %w", err), zap.String("pageID", page.ID.String()))
		return nil, err
	}
	metrics.ObserveExtraction(string(domain.ParseStatusOK))

	if page.Kind.Provisional() {
		if _, err := e.store.PromotePageKind(ctx, page.ID, kind); err != nil {
			logger.WarnCtx(ctx, "Failed to promote page kind",
				zap.String("pageID", page.ID.String()),
				zap.String("kind", kind.String()),
				zap.Error(err))
		}
	}

	return extraction, nil
}

// saveFailure records parse status error with the failure message verbatim
func (e *extractor) saveFailure(ctx context.Context, pageID uuid.UUID, cause error) {
	message := cause.Error()
	now := e.clock.Now()
	if err := e.store.SavePageStructured(ctx, store.SavePageStructuredInput{
		PageID:          pageID,
		ParseStatus:     domain.ParseStatusError,
		ExtractionError: &message,
		ParsedAt:        &now,
	}); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to save extraction failure: %w", err), zap.String("pageID", pageID.String()))
	}
	metrics.ObserveExtraction(string(domain.ParseStatusError))
}

func (e *extractor) ExtractGallery(ctx context.Context, galleryID uuid.UUID) (*GalleryResult, error) {
	gallery, err := e.store.GetGalleryByID(ctx, galleryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	if gallery == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGalleryNotFound, galleryID)
	}

	pages, err := e.store.GetPagesByGalleryID(ctx, galleryID, domain.PageKindGalleryMain, domain.PageKindGalleryAbout)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery pages: %w", err)
	}
	// Facts from the main page take precedence over the about page
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Kind == domain.PageKindGalleryMain && pages[j].Kind != domain.PageKindGalleryMain
	})

	result := &GalleryResult{Warnings: []string{}}
	if len(pages) == 0 {
		result.Warnings = append(result.Warnings, "no gallery pages registered")
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(pages))
	for _, p := range pages {
		ids = append(ids, p.ID)
	}
	contents, err := e.store.GetPageContents(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get page contents: %w", err)
	}
	markdown := make(map[uuid.UUID]string, len(contents))
	for _, c := range contents {
		if c.Markdown != nil {
			markdown[c.PageID] = *c.Markdown
		}
	}

	merged := store.GalleryInfoInput{GalleryID: galleryID}
	for _, page := range pages {
		text := markdown[page.ID]
		if strings.TrimSpace(text) == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", page.NormalizedURL, domain.NO_MARKDOWN_REASON))
			continue
		}

		payload, err := e.completion.ExtractGallery(ctx, text, page.NormalizedURL)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to extract gallery facts",
				zap.String("galleryID", galleryID.String()),
				zap.String("url", page.NormalizedURL),
				zap.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", page.NormalizedURL, err.Error()))
			continue
		}

		mergeGalleryPayload(&merged, payload)
		result.Sources++
	}

	if result.Sources == 0 {
		return result, nil
	}

	if err := e.store.FillGalleryInfo(ctx, merged, e.clock.Now()); err != nil {
		return nil, fmt.Errorf("failed to fill gallery info: %w", err)
	}

	logger.InfoCtx(ctx, "Extracted gallery facts",
		zap.String("galleryID", galleryID.String()),
		zap.Int("sources", result.Sources),
		zap.Int("warnings", len(result.Warnings)))

	return result, nil
}

// mergeGalleryPayload fills the empty fields of dst from p and unions the tags
func mergeGalleryPayload(dst *store.GalleryInfoInput, p *domain.GalleryPayload) {
	fill := func(field **string, value *string) {
		if *field == nil && value != nil {
			*field = value
		}
	}
	fill(&dst.Name, p.Name)
	fill(&dst.About, p.About)
	fill(&dst.Address, p.Address)
	fill(&dst.District, p.District)
	fill(&dst.Instagram, p.Instagram)
	fill(&dst.Email, p.Email)
	fill(&dst.Phone, p.Phone)
	fill(&dst.Website, p.Website)
	fill(&dst.OpeningHoursText, p.OpeningHoursText)

	for _, tag := range p.Tags {
		if !containsFold(dst.Tags, tag) {
			dst.Tags = append(dst.Tags, tag)
		}
	}
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func (e *extractor) ExtractOpeningHours(ctx context.Context, galleryID uuid.UUID) (int, error) {
	info, err := e.store.GetGalleryInfo(ctx, galleryID)
	if err != nil {
		return 0, fmt.Errorf("failed to get gallery info: %w", err)
	}
	if info == nil || info.OpeningHoursText == nil || strings.TrimSpace(*info.OpeningHoursText) == "" {
		return 0, nil
	}

	hours, err := e.completion.ExtractOpeningHours(ctx, *info.OpeningHoursText)
	if err != nil {
		return 0, fmt.Errorf("failed to extract opening hours: %w", err)
	}

	inputs := make([]store.GalleryHoursInput, 0, len(hours))
	for _, h := range hours {
		inputs = append(inputs, store.GalleryHoursInput{
			Weekday:     h.Weekday,
			OpenMinute:  h.OpenMinute,
			CloseMinute: h.CloseMinute,
		})
	}
	if err := e.store.ReplaceGalleryHours(ctx, galleryID, inputs); err != nil {
		return 0, fmt.Errorf("failed to replace gallery hours: %w", err)
	}

	logger.InfoCtx(ctx, "Stored opening hours",
		zap.String("galleryID", galleryID.String()),
		zap.Int("ranges", len(inputs)))

	return len(inputs), nil
}
