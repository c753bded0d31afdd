package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
	"github.com/vladimiradmaev/medscan/internal/storage"
)

func profileKey(userID int64) string {
	return fmt.Sprintf("medscan_profile:%d", userID)
}

type ProfileService struct {
	store storage.Store
}

func NewProfileService(store storage.Store) *ProfileService {
	return &ProfileService{store: store}
}

// Get returns the stored profile; found is false when the user never saved one.
func (s *ProfileService) Get(ctx context.Context, userID int64) (domain.UserProfile, bool, error) {
	key := profileKey(userID)
	data, found, err := s.store.Get(ctx, key)
	if err != nil {
		return domain.UserProfile{}, false, apperrors.NewStorageError("get", key, err)
	}
	if !found {
		return domain.UserProfile{}, false, nil
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return domain.UserProfile{}, false, apperrors.NewStorageError("get", key, err)
	}
	return profile, true, nil
}

// GetOrDefault returns the stored profile or DefaultProfile(name).
func (s *ProfileService) GetOrDefault(ctx context.Context, userID int64, name string) (domain.UserProfile, error) {
	profile, found, err := s.Get(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !found {
		return domain.DefaultProfile(name), nil
	}
	return profile, nil
}

// Save replaces the user's profile.
func (s *ProfileService) Save(ctx context.Context, userID int64, profile domain.UserProfile) error {
	key := profileKey(userID)
	data, err := json.Marshal(profile)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		return apperrors.NewStorageError("save", key, err)
	}
	return nil
}
