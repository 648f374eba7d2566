package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
)

// propertyService implements the PropertyService interface for listing
// management and search
type propertyService struct {
	propertyRepository properties.PropertyRepository
	leaseRepository    leases.LeaseRepository
	recorder           activity.Recorder
	logger             logger.Logger
}

// NewPropertyService creates a new instance of PropertyService
func NewPropertyService(propertyRepository properties.PropertyRepository, leaseRepository leases.LeaseRepository, recorder activity.Recorder, logger logger.Logger) (properties.PropertyService, error) {
	return &propertyService{
		propertyRepository: propertyRepository,
		leaseRepository:    leaseRepository,
		recorder:           recorder,
		logger:             logger,
	}, nil
}

func (s *propertyService) Create(ctx context.Context, landlordID string, input properties.CreateInput) (*properties.Property, error) {
	now := time.Now().UTC()
	property := &properties.Property{
		ID:              uuid.New().String(),
		LandlordID:      landlordID,
		Title:           input.Title,
		Description:     input.Description,
		PropertyType:    input.PropertyType,
		Status:          properties.StatusAvailable,
		Address:         input.Address,
		City:            input.City,
		State:           input.State,
		Country:         input.Country,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		Bedrooms:        input.Bedrooms,
		Bathrooms:       input.Bathrooms,
		AreaSqm:         input.AreaSqm,
		RentPriceCents:  input.RentPriceCents,
		DepositCents:    input.DepositCents,
		Currency:        input.Currency,
		Amenities:       input.Amenities,
		ImageURLs:       input.ImageURLs,
		PetsAllowed:     input.PetsAllowed,
		Furnished:       input.Furnished,
		AvailableFrom:   now,
		DateTimeCreated: now,
	}

	if err := s.propertyRepository.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.record(ctx, &activity.RecordInput{UserID: landlordID, Action: activity.ActionPropertyCreate, TargetID: property.ID})
	s.logger.Info("Created property with id ", property.ID)
	return property, nil
}

func (s *propertyService) GetByID(ctx context.Context, propertyID string) (*properties.Property, error) {
	property, err := s.propertyRepository.GetByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return property, nil
}

func (s *propertyService) List(ctx context.Context, query *properties.PropertyQuery) ([]*properties.Property, error) {
	propertyList, err := s.propertyRepository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return propertyList, nil
}

func (s *propertyService) Update(ctx context.Context, landlordID, propertyID string, input properties.UpdateInput) (*properties.Property, error) {
	property, err := s.propertyRepository.GetByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if property.LandlordID != landlordID {
		return nil, fmt.Errorf("%w", properties.ErrNotOwner)
	}

	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.Status != nil {
		property.Status = *input.Status
	}
	if input.RentPriceCents != nil {
		property.RentPriceCents = *input.RentPriceCents
	}
	if input.DepositCents != nil {
		property.DepositCents = *input.DepositCents
	}
	if input.Amenities != nil {
		property.Amenities = *input.Amenities
	}
	if input.ImageURLs != nil {
		property.ImageURLs = *input.ImageURLs
	}
	if input.PetsAllowed != nil {
		property.PetsAllowed = *input.PetsAllowed
	}
	if input.Furnished != nil {
		property.Furnished = *input.Furnished
	}
	property.DateTimeUpdated = time.Now().UTC()

	if err := s.propertyRepository.UpdateByID(ctx, property); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.record(ctx, &activity.RecordInput{UserID: landlordID, Action: activity.ActionPropertyUpdate, TargetID: property.ID})
	return property, nil
}

func (s *propertyService) Delete(ctx context.Context, landlordID, propertyID string) error {
	property, err := s.propertyRepository.GetByID(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if property.LandlordID != landlordID {
		return fmt.Errorf("%w", properties.ErrNotOwner)
	}

	if _, err := s.leaseRepository.GetLiveByPropertyID(ctx, propertyID); err == nil {
		return fmt.Errorf("%w", properties.ErrHasActiveLease)
	} else if !errors.Is(err, leases.ErrNotFound) {
		return fmt.Errorf("%w", err)
	}

	if err := s.propertyRepository.DeleteByID(ctx, propertyID); err != nil {
		return fmt.Errorf("%w", err)
	}

	s.record(ctx, &activity.RecordInput{UserID: landlordID, Action: activity.ActionPropertyDelete, TargetID: propertyID})
	return nil
}

func (s *propertyService) SetStatus(ctx context.Context, propertyID, status string) error {
	property, err := s.propertyRepository.GetByID(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	property.Status = status
	property.DateTimeUpdated = time.Now().UTC()
	if err := s.propertyRepository.UpdateByID(ctx, property); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (s *propertyService) record(ctx context.Context, input *activity.RecordInput) {
	if s.recorder != nil {
		s.recorder.Record(ctx, input)
	}
}
