package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/favfood/internal/client/client"
	"github.com/dmitrijs2005/favfood/internal/client/models"
	"github.com/dmitrijs2005/favfood/internal/common"
)

// ProfileService reads and writes the signed-in user's profile document.
type ProfileService interface {
	// Load returns client.ErrNotFound when no profile exists yet.
	Load(ctx context.Context) (*models.Profile, error)
	// Save overwrites the whole profile.
	Save(ctx context.Context, p *models.Profile) error
}

type profileService struct {
	client client.Client
	auth   AuthService
}

func NewProfileService(c client.Client, auth AuthService) ProfileService {
	return &profileService{client: c, auth: auth}
}

func (s *profileService) Load(ctx context.Context) (*models.Profile, error) {
	userID := s.auth.CurrentUserID()
	if userID == "" {
		return nil, client.ErrUnauthorized
	}

	body, err := s.client.ReadDocument(ctx, common.ProfileCollection, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return models.UnmarshalProfile(body)
}

func (s *profileService) Save(ctx context.Context, p *models.Profile) error {
	userID := s.auth.CurrentUserID()
	if userID == "" {
		return client.ErrUnauthorized
	}

	body, err := p.Marshal()
	if err != nil {
		return err
	}

	if err := s.client.WriteDocument(ctx, common.ProfileCollection, userID, body); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
