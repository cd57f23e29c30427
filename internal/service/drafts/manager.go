package drafts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/mamadbah2/recipecalc/internal/domain/models"
	"github.com/mamadbah2/recipecalc/internal/service/pricing"
)

var (
	// ErrDraftNotFound indicates the draft does not exist or has expired.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrUnexpectedIngredient indicates the submitted ingredient is not the
	// one the draft is waiting for.
	ErrUnexpectedIngredient = errors.New("unexpected ingredient")
)

// Catalogue is the part of the pricing service a draft needs.
type Catalogue interface {
	CheckMissing(lines []models.IngredientLine) []string
	AddIngredient(ctx context.Context, src models.IngredientSource) (models.IngredientSource, error)
	Recipe(name string) (models.Recipe, error)
	AddRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error)
}

// Manager runs the missing-ingredient workflow: a recipe that references
// unknown ingredients is parked as a draft, the user supplies one ingredient
// at a time, and the recipe is saved once nothing is missing.
//
//	awaiting_ingredient --Resolve--> awaiting_ingredient (queue not empty)
//	awaiting_ingredient --Resolve--> completed           (queue empty)
//	awaiting_ingredient --Cancel---> cancelled
//
// Drafts nobody touches for the TTL are dropped.
type Manager struct {
	catalogue Catalogue
	drafts    *gocache.Cache
	mu        sync.Mutex
	logger    *zap.Logger
	now       func() time.Time
}

// NewManager creates a draft manager. ttl must be positive.
func NewManager(catalogue Catalogue, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		catalogue: catalogue,
		drafts:    gocache.New(ttl, 2*ttl),
		logger:    logger,
		now:       time.Now,
	}
}

// Start validates r and saves it straight away when every ingredient is
// known. Otherwise it returns a draft waiting for the first missing
// ingredient.
func (m *Manager) Start(ctx context.Context, r models.Recipe) (models.RecipeDraft, error) {
	recipe, err := pricing.NormalizeRecipe(r)
	if err != nil {
		return models.RecipeDraft{}, err
	}
	if _, err := m.catalogue.Recipe(recipe.Name); err == nil {
		return models.RecipeDraft{}, fmt.Errorf("%w: %s", pricing.ErrDuplicateRecipe, recipe.Name)
	}

	now := m.now()
	draft := models.RecipeDraft{
		ID:        uuid.NewString(),
		Recipe:    recipe,
		CreatedAt: now,
		UpdatedAt: now,
	}

	missing := m.catalogue.CheckMissing(recipe.Ingredients)
	if len(missing) == 0 {
		saved, err := m.catalogue.AddRecipe(ctx, recipe)
		if err != nil {
			return models.RecipeDraft{}, err
		}
		draft.Recipe = saved
		draft.State = models.DraftCompleted
		return copyDraft(draft), nil
	}

	draft.State = models.DraftAwaitingIngredient
	draft.Current = missing[0]
	draft.Pending = append([]string(nil), missing[1:]...)

	m.mu.Lock()
	m.drafts.SetDefault(draft.ID, draft)
	m.mu.Unlock()

	m.logger.Info("recipe draft opened",
		zap.String("draft_id", draft.ID),
		zap.String("recipe", recipe.Name),
		zap.Strings("missing", missing))
	return copyDraft(draft), nil
}

// Get returns the draft with the given id.
func (m *Manager) Get(id string) (models.RecipeDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft, ok := m.load(id)
	if !ok {
		return models.RecipeDraft{}, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	return copyDraft(draft), nil
}

// Resolve adds src to the catalogue as the ingredient the draft is waiting
// for and advances the queue. Names that were added by someone else in the
// meantime are skipped. When the queue runs dry the recipe is saved and the
// draft completes; if saving fails the draft is dropped and the error
// returned, while the ingredients already added stay in the catalogue.
func (m *Manager) Resolve(ctx context.Context, id string, src models.IngredientSource) (models.RecipeDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft, ok := m.load(id)
	if !ok {
		return models.RecipeDraft{}, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}

	if strings.TrimSpace(src.Name) != draft.Current {
		return models.RecipeDraft{}, fmt.Errorf("%w: waiting for %q, got %q", ErrUnexpectedIngredient, draft.Current, src.Name)
	}

	if _, err := m.catalogue.AddIngredient(ctx, src); err != nil {
		return models.RecipeDraft{}, err
	}
	draft.Resolved = append(draft.Resolved, draft.Current)
	draft.Current = ""
	draft.UpdatedAt = m.now()

	for len(draft.Pending) > 0 {
		next := draft.Pending[0]
		draft.Pending = draft.Pending[1:]
		if len(m.catalogue.CheckMissing([]models.IngredientLine{{Name: next, Quantity: 1}})) == 0 {
			draft.Resolved = append(draft.Resolved, next)
			continue
		}
		draft.Current = next
		break
	}

	if draft.Current != "" {
		m.drafts.SetDefault(draft.ID, draft)
		m.logger.Debug("recipe draft advanced", zap.String("draft_id", draft.ID), zap.String("current", draft.Current))
		return copyDraft(draft), nil
	}

	m.drafts.Delete(draft.ID)

	saved, err := m.catalogue.AddRecipe(ctx, draft.Recipe)
	if err != nil {
		m.logger.Warn("recipe draft could not be saved", zap.String("draft_id", draft.ID), zap.Error(err))
		return models.RecipeDraft{}, fmt.Errorf("finalize draft %s: %w", draft.ID, err)
	}

	draft.Recipe = saved
	draft.State = models.DraftCompleted
	m.logger.Info("recipe draft completed", zap.String("draft_id", draft.ID), zap.String("recipe", saved.Name))
	return copyDraft(draft), nil
}

// Cancel discards the draft. Ingredients already added stay.
func (m *Manager) Cancel(id string) (models.RecipeDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft, ok := m.load(id)
	if !ok {
		return models.RecipeDraft{}, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	m.drafts.Delete(id)

	draft.State = models.DraftCancelled
	draft.UpdatedAt = m.now()
	m.logger.Info("recipe draft cancelled", zap.String("draft_id", id))
	return copyDraft(draft), nil
}

func (m *Manager) load(id string) (models.RecipeDraft, bool) {
	v, ok := m.drafts.Get(id)
	if !ok {
		return models.RecipeDraft{}, false
	}
	return copyDraft(v.(models.RecipeDraft)), true
}

func copyDraft(d models.RecipeDraft) models.RecipeDraft {
	d.Recipe = d.Recipe.Clone()
	d.Pending = append([]string{}, d.Pending...)
	d.Resolved = append([]string{}, d.Resolved...)
	return d
}
