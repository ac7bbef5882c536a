package apiclient

import (
	"context"

	"nutrirec-web/models"
)

// UserService covers /users
type UserService struct {
	c *Client
}

// UpdateProfile saves profile fields; the reply carries recomputed BMR and calories
func (s *UserService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.ProfileUpdateResponse, error) {
	var out models.ProfileUpdateResponse
	if err := s.c.Put(ctx, "/users/profile", update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MedicalConditions lists the condition catalog
func (s *UserService) MedicalConditions(ctx context.Context) ([]models.MedicalCondition, error) {
	var out models.MedicalConditionsResponse
	if err := s.c.Get(ctx, "/users/medical-conditions", nil, &out); err != nil {
		return nil, err
	}
	return out.Conditions, nil
}

// UpdateMedicalConditions replaces the user's conditions
func (s *UserService) UpdateMedicalConditions(ctx context.Context, req models.UpdateMedicalConditionsRequest) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := s.c.Post(ctx, "/users/medical-conditions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyMedicalConditions lists the user's own conditions
func (s *UserService) MyMedicalConditions(ctx context.Context) (*models.MyMedicalConditionsResponse, error) {
	var out models.MyMedicalConditionsResponse
	if err := s.c.Get(ctx, "/users/my-medical-conditions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
