package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/attendance-backend-go/internal/domain/campus"
	"github.com/campushq/attendance-backend-go/internal/domain/user"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
	campusRepo campus.CampusRepository
}

func NewUserService(
	db *database.DB,
	userRepo user.UserRepository,
	campusRepo campus.CampusRepository,
) *UserServiceImpl {
	return &UserServiceImpl{
		db:             db,
		UserRepository: userRepo,
		campusRepo:     campusRepo,
	}
}

type caller struct {
	ID       string
	Role     user.Role
	CampusID string
}

func callerFromContext(ctx context.Context) (caller, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return caller{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return caller{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	role, _ := claims["role"].(string)
	campusID, _ := claims["campus_id"].(string)

	return caller{ID: id, Role: user.Role(role), CampusID: campusID}, nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	who, err := callerFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	// Only a super admin may mint another privileged account. Campus admins
	// onboard employees into their own campus.
	if who.Role != user.RoleSuperAdmin {
		if user.Role(req.Role) != user.RoleEmployee {
			return user.ProfileResponse{}, user.ErrRoleNotAllowed
		}
		req.CampusID = &who.CampusID
	}

	if req.CampusID != nil {
		c, err := s.campusRepo.GetByID(ctx, *req.CampusID)
		if err != nil {
			return user.ProfileResponse{}, fmt.Errorf("failed to load campus: %w", err)
		}
		if c == nil {
			return user.ProfileResponse{}, campus.ErrCampusNotFound
		}
	}

	existing, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return user.ProfileResponse{}, user.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         user.Role(req.Role),
		CampusID:     req.CampusID,
		IsActive:     true,
	})
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user.ToResponse(created), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.ProfileResponse, error) {
	who, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var users []user.User
	if who.Role == user.RoleSuperAdmin {
		users, err = s.UserRepository.List(ctx)
	} else {
		users, err = s.UserRepository.ListByCampus(ctx, who.CampusID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.ProfileResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	return responses, nil
}
