package campus

import (
	"context"
	"fmt"

	"github.com/campushq/attendance-backend-go/internal/domain/campus"
	"github.com/campushq/attendance-backend-go/internal/domain/user"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
)

type CampusServiceImpl struct {
	db *database.DB
	campus.CampusRepository
	userRepo user.UserRepository
}

func NewCampusService(
	db *database.DB,
	campusRepo campus.CampusRepository,
	userRepo user.UserRepository,
) *CampusServiceImpl {
	return &CampusServiceImpl{
		db:               db,
		CampusRepository: campusRepo,
		userRepo:         userRepo,
	}
}

// Create implements campus.CampusService.
func (s *CampusServiceImpl) Create(ctx context.Context, req campus.CreateCampusRequest) (campus.CampusResponse, error) {
	if err := req.Validate(); err != nil {
		return campus.CampusResponse{}, err
	}

	existing, err := s.CampusRepository.GetByName(ctx, req.Name)
	if err != nil {
		return campus.CampusResponse{}, fmt.Errorf("failed to check campus name: %w", err)
	}
	if existing != nil {
		return campus.CampusResponse{}, campus.ErrCampusNameExists
	}

	created, err := s.CampusRepository.Create(ctx, campus.Campus{
		Name:     req.Name,
		Address:  req.Address,
		Boundary: req.ToBoundary(),
	})
	if err != nil {
		return campus.CampusResponse{}, fmt.Errorf("failed to create campus: %w", err)
	}

	return campus.ToResponse(created), nil
}

// GetByID implements campus.CampusService.
func (s *CampusServiceImpl) GetByID(ctx context.Context, id string) (campus.CampusResponse, error) {
	c, err := s.CampusRepository.GetByID(ctx, id)
	if err != nil {
		return campus.CampusResponse{}, fmt.Errorf("failed to get campus: %w", err)
	}
	if c == nil {
		return campus.CampusResponse{}, campus.ErrCampusNotFound
	}

	return campus.ToResponse(*c), nil
}

// List implements campus.CampusService.
func (s *CampusServiceImpl) List(ctx context.Context) ([]campus.CampusResponse, error) {
	campuses, err := s.CampusRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campuses: %w", err)
	}

	responses := make([]campus.CampusResponse, 0, len(campuses))
	for _, c := range campuses {
		responses = append(responses, campus.ToResponse(c))
	}

	return responses, nil
}

// Update implements campus.CampusService.
func (s *CampusServiceImpl) Update(ctx context.Context, id string, req campus.UpdateCampusRequest) (campus.CampusResponse, error) {
	if err := req.Validate(); err != nil {
		return campus.CampusResponse{}, err
	}

	c, err := s.CampusRepository.GetByID(ctx, id)
	if err != nil {
		return campus.CampusResponse{}, fmt.Errorf("failed to get campus: %w", err)
	}
	if c == nil {
		return campus.CampusResponse{}, campus.ErrCampusNotFound
	}

	if req.Name != nil && *req.Name != c.Name {
		existing, err := s.CampusRepository.GetByName(ctx, *req.Name)
		if err != nil {
			return campus.CampusResponse{}, fmt.Errorf("failed to check campus name: %w", err)
		}
		if existing != nil && existing.ID != c.ID {
			return campus.CampusResponse{}, campus.ErrCampusNameExists
		}
		c.Name = *req.Name
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Boundary != nil {
		c.Boundary = req.ToBoundary()
	}

	if err := s.CampusRepository.Update(ctx, *c); err != nil {
		return campus.CampusResponse{}, fmt.Errorf("failed to update campus: %w", err)
	}

	return campus.ToResponse(*c), nil
}

// Delete implements campus.CampusService.
func (s *CampusServiceImpl) Delete(ctx context.Context, id string) error {
	c, err := s.CampusRepository.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get campus: %w", err)
	}
	if c == nil {
		return campus.ErrCampusNotFound
	}

	workers, err := s.userRepo.ListByCampus(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list campus workers: %w", err)
	}
	if len(workers) > 0 {
		return campus.ErrCampusHasWorkers
	}

	return s.CampusRepository.Delete(ctx, id)
}
