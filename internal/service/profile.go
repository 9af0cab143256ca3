package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shree6791/gramvana/internal/models"
	"github.com/shree6791/gramvana/internal/types"
)

// Body weight is collected in pounds and domain-restricted.
const (
	MinBodyWeight = 50
	MaxBodyWeight = 400
)

// ErrInvalidBodyWeight is a user-visible validation error; it blocks the
// update rather than being absorbed.
var ErrInvalidBodyWeight = errors.New("body weight must be between 50 and 400 pounds")

// ProfileService owns user preference state. Updates are two-phase: the new
// state is applied to an in-memory overlay immediately, then persisted; if
// persistence fails the overlay stays authoritative for the session, the row
// is marked dirty, and the caller is told the change is not yet synced.
type ProfileService struct {
	db *gorm.DB

	mu      sync.Mutex
	overlay map[uuid.UUID]*types.ProfileContext

	onWeightChange func(ctx context.Context, userID uuid.UUID)
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db:      db,
		overlay: make(map[uuid.UUID]*types.ProfileContext),
	}
}

// OnWeightChange registers a hook run whenever a profile update changes body
// weight. Used to mark stored meal plans stale.
func (s *ProfileService) OnWeightChange(fn func(ctx context.Context, userID uuid.UUID)) {
	s.onWeightChange = fn
}

// GetProfile retrieves the stored profile row.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetContext assembles the generation-relevant slice of the profile. A dirty
// overlay from a failed sync wins over the stored row.
func (s *ProfileService) GetContext(ctx context.Context, userID uuid.UUID) (types.ProfileContext, error) {
	s.mu.Lock()
	if local, ok := s.overlay[userID]; ok {
		pc := *local
		s.mu.Unlock()
		return pc, nil
	}
	s.mu.Unlock()

	return s.loadContext(ctx, userID)
}

func (s *ProfileService) loadContext(ctx context.Context, userID uuid.UUID) (types.ProfileContext, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return types.ProfileContext{}, err
	}

	var prefs []models.DietaryPreference
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&prefs).Error; err != nil {
		return types.ProfileContext{}, err
	}
	prefList := make([]string, 0, len(prefs))
	for _, p := range prefs {
		if p.PreferenceType == "custom" && p.CustomName != "" {
			prefList = append(prefList, p.CustomName)
		} else {
			prefList = append(prefList, p.PreferenceType)
		}
	}

	var allergens []models.Allergen
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&allergens).Error; err != nil {
		return types.ProfileContext{}, err
	}
	allergyList := make([]string, 0, len(allergens))
	for _, a := range allergens {
		allergyList = append(allergyList, a.AllergenName)
	}

	return types.ProfileContext{
		DietaryPreferences: prefList,
		HealthGoal:         profile.HealthGoal,
		Allergies:          allergyList,
		BodyWeight:         profile.BodyWeight,
		EnableMealPlanning: profile.EnableMealPlanning,
	}, nil
}

// UpdateProfile applies a profile edit. Validation failures return an error
// and change nothing. Persistence failures do not roll back the local view:
// the updated context is returned with synced=false and retried on the next
// successful update.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (types.ProfileContext, bool, error) {
	if req.BodyWeight != nil && (*req.BodyWeight < MinBodyWeight || *req.BodyWeight > MaxBodyWeight) {
		return types.ProfileContext{}, false, ErrInvalidBodyWeight
	}

	current, err := s.GetContext(ctx, userID)
	if err != nil {
		return types.ProfileContext{}, false, err
	}

	updated := current
	if req.DietaryPreferences != nil {
		updated.DietaryPreferences = req.DietaryPreferences
	}
	if req.HealthGoal != nil {
		updated.HealthGoal = *req.HealthGoal
	}
	if req.Allergies != nil {
		updated.Allergies = req.Allergies
	}
	if req.EnableMealPlanning != nil {
		updated.EnableMealPlanning = *req.EnableMealPlanning
	}
	weightChanged := false
	if req.BodyWeight != nil && *req.BodyWeight != current.BodyWeight {
		updated.BodyWeight = *req.BodyWeight
		weightChanged = true
	}

	// Phase one: the local view updates immediately.
	s.mu.Lock()
	s.overlay[userID] = &updated
	s.mu.Unlock()

	// Existing meal plans were split against the old weight either way.
	if weightChanged && s.onWeightChange != nil {
		s.onWeightChange(ctx, userID)
	}

	// Phase two: best-effort remote sync.
	if err := s.persist(ctx, userID, updated); err != nil {
		log.Printf("[profile] sync failed for %s, keeping local state: %v", userID, err)
		s.markDirty(ctx, userID)
		return updated, false, nil
	}

	s.mu.Lock()
	delete(s.overlay, userID)
	s.mu.Unlock()

	return updated, true, nil
}

func (s *ProfileService) persist(ctx context.Context, userID uuid.UUID, pc types.ProfileContext) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"health_goal":          pc.HealthGoal,
			"body_weight":          pc.BodyWeight,
			"enable_meal_planning": pc.EnableMealPlanning,
			"dirty":                false,
		}
		if err := tx.Model(&models.UserProfile{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.DietaryPreference{}).Error; err != nil {
			return err
		}
		for _, pref := range pc.DietaryPreferences {
			dp := models.DietaryPreference{ID: uuid.New(), UserID: userID, PreferenceType: pref}
			if err := tx.Create(&dp).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Allergen{}).Error; err != nil {
			return err
		}
		for _, allergy := range pc.Allergies {
			al := models.Allergen{ID: uuid.New(), UserID: userID, AllergenName: allergy}
			if err := tx.Create(&al).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ProfileService) markDirty(ctx context.Context, userID uuid.UUID) {
	// Best effort; if even this fails the overlay still protects the session.
	if err := s.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Update("dirty", true).Error; err != nil {
		log.Printf("[profile] failed to mark %s dirty: %v", userID, err)
	}
}
