package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sangkips/billcraft-api/internal/domain/entity"
	"github.com/sangkips/billcraft-api/internal/domain/enum"
	"github.com/sangkips/billcraft-api/internal/domain/repository"
	"github.com/sangkips/billcraft-api/pkg/apperror"
)

// ProfileService handles company profiles and payment methods
type ProfileService struct {
	profileRepo repository.CompanyProfileRepository
	methodRepo  repository.PaymentMethodRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.CompanyProfileRepository, methodRepo repository.PaymentMethodRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		methodRepo:  methodRepo,
	}
}

// CreateProfileInput represents the input for creating a company profile
type CreateProfileInput struct {
	OwnerID      uuid.UUID
	Name         string
	Email        string
	Address      *string
	LogoURL      *string
	Tagline      *string
	CustomFields []entity.NamedField
}

// UpdateProfileInput represents the input for updating a company profile
type UpdateProfileInput struct {
	Name         *string
	Email        *string
	Address      *string
	LogoURL      *string
	Tagline      *string
	CustomFields []entity.NamedField
}

// CreateProfile creates a new company profile
func (s *ProfileService) CreateProfile(ctx context.Context, input *CreateProfileInput) (*entity.CompanyProfile, error) {
	if input.Name == "" || input.Email == "" {
		return nil, apperror.NewValidationError("Company name and email are required")
	}

	profile := &entity.CompanyProfile{
		OwnerID:      input.OwnerID,
		Name:         input.Name,
		Email:        input.Email,
		Address:      input.Address,
		LogoURL:      input.LogoURL,
		Tagline:      input.Tagline,
		CustomFields: input.CustomFields,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListProfiles returns all company profiles for an owner
func (s *ProfileService) ListProfiles(ctx context.Context, ownerID uuid.UUID) ([]entity.CompanyProfile, error) {
	profiles, err := s.profileRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []entity.CompanyProfile{}
	}
	return profiles, nil
}

// GetProfile returns a company profile by ID, scoped to the owner
func (s *ProfileService) GetProfile(ctx context.Context, ownerID, id uuid.UUID) (*entity.CompanyProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.OwnerID != ownerID {
		return nil, apperror.NewNotFoundError("Company profile")
	}
	return profile, nil
}

// UpdateProfile updates a company profile
func (s *ProfileService) UpdateProfile(ctx context.Context, ownerID, id uuid.UUID, input *UpdateProfileInput) (*entity.CompanyProfile, error) {
	profile, err := s.GetProfile(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewValidationError("Company name is required")
		}
		profile.Name = *input.Name
	}
	if input.Email != nil {
		profile.Email = *input.Email
	}
	if input.Address != nil {
		profile.Address = input.Address
	}
	if input.LogoURL != nil {
		profile.LogoURL = input.LogoURL
	}
	if input.Tagline != nil {
		profile.Tagline = input.Tagline
	}
	if input.CustomFields != nil {
		profile.CustomFields = input.CustomFields
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile deletes a company profile. Invoices referencing it
// render a placeholder afterwards.
func (s *ProfileService) DeleteProfile(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetProfile(ctx, ownerID, id); err != nil {
		return err
	}
	return s.profileRepo.Delete(ctx, id)
}

// CreatePaymentMethodInput represents the input for creating a payment method
type CreatePaymentMethodInput struct {
	OwnerID uuid.UUID
	Type    enum.PaymentMethodType
	Name    string
	Fields  map[string]string
}

// UpdatePaymentMethodInput represents the input for updating a payment method
type UpdatePaymentMethodInput struct {
	Type   *enum.PaymentMethodType
	Name   *string
	Fields map[string]string
}

// CreatePaymentMethod creates a new payment method. Fields default to
// the type's preset names with empty values when none are provided.
func (s *ProfileService) CreatePaymentMethod(ctx context.Context, input *CreatePaymentMethodInput) (*entity.PaymentMethod, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Payment method name is required")
	}
	if !input.Type.IsValid() {
		return nil, apperror.NewValidationError("Unknown payment method type")
	}

	fields := input.Fields
	if len(fields) == 0 {
		fields = make(map[string]string)
		for _, name := range input.Type.PresetFields() {
			fields[name] = ""
		}
	}

	method := &entity.PaymentMethod{
		OwnerID: input.OwnerID,
		Type:    input.Type,
		Name:    input.Name,
		Fields:  fields,
	}
	if err := s.methodRepo.Create(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// ListPaymentMethods returns all payment methods for an owner
func (s *ProfileService) ListPaymentMethods(ctx context.Context, ownerID uuid.UUID) ([]entity.PaymentMethod, error) {
	methods, err := s.methodRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if methods == nil {
		methods = []entity.PaymentMethod{}
	}
	return methods, nil
}

// GetPaymentMethod returns a payment method by ID, scoped to the owner
func (s *ProfileService) GetPaymentMethod(ctx context.Context, ownerID, id uuid.UUID) (*entity.PaymentMethod, error) {
	method, err := s.methodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil || method.OwnerID != ownerID {
		return nil, apperror.NewNotFoundError("Payment method")
	}
	return method, nil
}

// UpdatePaymentMethod updates a payment method
func (s *ProfileService) UpdatePaymentMethod(ctx context.Context, ownerID, id uuid.UUID, input *UpdatePaymentMethodInput) (*entity.PaymentMethod, error) {
	method, err := s.GetPaymentMethod(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, apperror.NewValidationError("Unknown payment method type")
		}
		method.Type = *input.Type
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewValidationError("Payment method name is required")
		}
		method.Name = *input.Name
	}
	if input.Fields != nil {
		method.Fields = input.Fields
	}

	if err := s.methodRepo.Update(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// DeletePaymentMethod deletes a payment method. Invoices referencing
// it omit the payment block afterwards.
func (s *ProfileService) DeletePaymentMethod(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetPaymentMethod(ctx, ownerID, id); err != nil {
		return err
	}
	return s.methodRepo.Delete(ctx, id)
}
