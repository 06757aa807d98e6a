package user

import (
	"io"

	"github.com/campushq/attendance-backend-go/internal/pkg/validator"
)

type ProfileResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	CampusID   *string `json:"campus_id,omitempty"`
	PictureURL *string `json:"picture_url,omitempty"`
}

func ToResponse(u User) ProfileResponse {
	return ProfileResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		CampusID:   u.CampusID,
		PictureURL: u.PictureURL,
	}
}

type CreateUserRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Role     string  `json:"role"`
	CampusID *string `json:"campus_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email address is required",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsInSlice(r.Role, []string{
		string(RoleSuperAdmin), string(RoleAdmin), string(RoleEmployee),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: super_admin, admin, employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PictureUpload carries the multipart file through to the storage layer.
type PictureUpload struct {
	FileName string
	Size     int64
	Reader   io.Reader
}
