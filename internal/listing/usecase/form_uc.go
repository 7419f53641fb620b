package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/kotsioskl2/vehicle-market/internal/listing/domain"
	"go.uber.org/zap"
)

// Draft holds the post-a-listing form exactly as the user typed it. Numeric
// fields stay raw text until Submit parses them; nothing is coerced on
// keystroke.
type Draft struct {
	Name         string
	Price        string
	Engine       string
	EngineSize   string
	Mileage      string
	Transmission string
	Color        string
	Year         string
	Description  string
	Location     string
}

type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is the structured result of a failed parse-and-validate pass.
// It unwraps to domain.ErrValidation so callers can branch on the taxonomy
// without losing the per-field detail.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Field + ": " + e.Message
	}
	return "invalid draft: " + strings.Join(msgs, "; ")
}

func (fe FieldErrors) Unwrap() error { return domain.ErrValidation }

// Parse coerces the raw draft into a listing without an id. It returns every
// field error at once rather than stopping at the first.
func (d Draft) Parse() (*domain.Listing, FieldErrors) {
	var errs FieldErrors

	fail := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(d.Name) == "" {
		fail("name", "brand and model are required")
	}
	price, err := strconv.ParseFloat(d.Price, 64)
	if err != nil {
		fail("price", "must be a number")
	} else if price < 0 {
		fail("price", "must not be negative")
	}
	engine := domain.Engine(d.Engine)
	if !engine.Valid() {
		fail("engine", "must be one of Petrol, Diesel, Electric, Hybrid")
	}
	engineSize, err := strconv.ParseFloat(d.EngineSize, 64)
	if err != nil {
		fail("engineSize", "must be a number")
	}
	mileage, err := strconv.Atoi(d.Mileage)
	if err != nil {
		fail("mileage", "must be a whole number")
	} else if mileage < 0 {
		fail("mileage", "must not be negative")
	}
	transmission := domain.Transmission(d.Transmission)
	if !transmission.Valid() {
		fail("transmission", "must be one of Automatic, Manual, Semi-Automatic")
	}
	year, err := strconv.Atoi(d.Year)
	if err != nil {
		fail("year", "must be a whole number")
	} else if year <= 0 {
		fail("year", "must be positive")
	}

	if errs != nil {
		return nil, errs
	}

	return &domain.Listing{
		Name:         strings.TrimSpace(d.Name),
		Price:        price,
		Engine:       engine,
		EngineSize:   engineSize,
		Mileage:      mileage,
		Transmission: transmission,
		Color:        d.Color,
		Year:         year,
		Description:  d.Description,
		Location:     d.Location,
	}, nil
}

// Uploader is the slice of PhotoUsecase the form needs.
type Uploader interface {
	UploadAll(ctx context.Context, files []File) ([]string, error)
}

// Mailer sends the best-effort moderation notification after a successful
// post.
type Mailer interface {
	SendListingPosted(toEmail, listingName string) error
}

type FormState int

const (
	StateEditing FormState = iota
	StateSubmitting
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not finished. A running submission is never cancelled.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// FormController owns one draft listing and drives the
// Editing -> Submitting -> Editing cycle. On success the draft and selected
// files are cleared; on any failure they are kept so the user can retry
// without re-entering data.
type FormController struct {
	photos         Uploader
	repo           domain.ListingRepository
	publisher      EventPublisher
	mailer         Mailer
	moderationAddr string
	logger         *zap.Logger

	mu    sync.Mutex
	state FormState
	draft Draft
	files []File
}

func NewFormController(photos Uploader, repo domain.ListingRepository, publisher EventPublisher, mailer Mailer, moderationAddr string, logger *zap.Logger) *FormController {
	return &FormController{
		photos:         photos,
		repo:           repo,
		publisher:      publisher,
		mailer:         mailer,
		moderationAddr: moderationAddr,
		logger:         logger,
	}
}

func (c *FormController) SetDraft(d Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

func (c *FormController) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *FormController) SetFiles(files []File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = files
}

func (c *FormController) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit validates the draft, uploads the selected images and creates the
// record, strictly in that order. The upload always completes before the
// insert, so a stored listing's images field covers every selected file.
// Submit rejects re-entry while a submission is in flight instead of
// queueing or cancelling.
func (c *FormController) Submit(ctx context.Context) (*domain.Listing, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	c.state = StateSubmitting
	draft := c.draft
	files := c.files
	c.mu.Unlock()

	listing, err := c.submit(ctx, draft, files)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateEditing
	if err != nil {
		return nil, err
	}
	c.draft = Draft{}
	c.files = nil
	return listing, nil
}

func (c *FormController) submit(ctx context.Context, draft Draft, files []File) (*domain.Listing, error) {
	parsed, fieldErrs := draft.Parse()
	if fieldErrs != nil {
		c.logger.Warn("draft rejected", zap.Int("field_errors", len(fieldErrs)))
		return nil, fieldErrs
	}

	urls, err := c.photos.UploadAll(ctx, files)
	if err != nil {
		return nil, err
	}
	parsed.Images = urls

	created, err := c.repo.Create(ctx, parsed)
	if err != nil {
		c.logger.Error("create listing failed", zap.String("name", parsed.Name), zap.Error(err))
		return nil, fmt.Errorf("create listing: %w", err)
	}
	c.logger.Info("listing created",
		zap.String("listing_id", created.ID),
		zap.Int("images", len(created.Images)))

	if c.publisher != nil {
		if pubErr := c.publisher.PublishListingCreated(ctx, created); pubErr != nil {
			c.logger.Warn("publish listing.created failed", zap.String("listing_id", created.ID), zap.Error(pubErr))
		}
	}
	if c.mailer != nil && c.moderationAddr != "" {
		if mailErr := c.mailer.SendListingPosted(c.moderationAddr, created.Name); mailErr != nil {
			c.logger.Warn("moderation mail failed", zap.String("listing_id", created.ID), zap.Error(mailErr))
		}
	}
	return created, nil
}
