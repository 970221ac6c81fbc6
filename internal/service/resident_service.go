package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sidesa-dev/sidesa-api/internal/dto"
	"github.com/sidesa-dev/sidesa-api/internal/models"
	appErrors "github.com/sidesa-dev/sidesa-api/pkg/errors"
)

type residentStore interface {
	Create(ctx context.Context, resident *models.Resident) error
	GetByID(ctx context.Context, id string) (*models.Resident, error)
	GetByNIK(ctx context.Context, nik string) (*models.Resident, error)
	Update(ctx context.Context, resident *models.Resident) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ResidentFilter) ([]models.Resident, int, error)
}

// ResidentService orchestrates the village resident register.
type ResidentService struct {
	repo      residentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResidentService constructs the service.
func NewResidentService(repo residentStore, validate *validator.Validate, logger *zap.Logger) *ResidentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResidentService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new resident.
func (s *ResidentService) Create(ctx context.Context, req dto.ResidentRequest) (*models.Resident, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resident payload")
	}
	if existing, err := s.repo.GetByNIK(ctx, req.NIK); err == nil && existing != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nik already registered")
	}
	resident := residentFromRequest(req)
	if err := s.repo.Create(ctx, resident); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create resident")
	}
	return resident, nil
}

// Get returns one resident.
func (s *ResidentService) Get(ctx context.Context, id string) (*models.Resident, error) {
	resident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch resident")
	}
	return resident, nil
}

// Update replaces a resident's record.
func (s *ResidentService) Update(ctx context.Context, id string, req dto.ResidentRequest) (*models.Resident, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resident payload")
	}
	resident := residentFromRequest(req)
	resident.ID = id
	if err := s.repo.Update(ctx, resident); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update resident")
	}
	return resident, nil
}

// Delete removes a resident.
func (s *ResidentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete resident")
	}
	return nil
}

// List returns residents with pagination metadata.
func (s *ResidentService) List(ctx context.Context, query dto.ResidentQuery) ([]models.Resident, *models.Pagination, error) {
	filter := models.ResidentFilter{
		Search:   strings.TrimSpace(query.Search),
		RT:       query.RT,
		RW:       query.RW,
		Page:     query.Page,
		PageSize: query.Limit,
	}
	residents, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list residents")
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 20
	}
	return residents, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

func residentFromRequest(req dto.ResidentRequest) *models.Resident {
	resident := &models.Resident{
		NIK:           req.NIK,
		FullName:      strings.TrimSpace(req.FullName),
		Gender:        req.Gender,
		BirthPlace:    req.BirthPlace,
		Religion:      req.Religion,
		MaritalStatus: req.MaritalStatus,
		Occupation:    req.Occupation,
		Address:       req.Address,
		RT:            req.RT,
		RW:            req.RW,
	}
	if req.BirthDate != "" {
		if date, err := time.Parse("2006-01-02", req.BirthDate); err == nil {
			resident.BirthDate = &date
		}
	}
	return resident
}
