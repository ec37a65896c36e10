package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ApplicationStatus is the cached projection of a user's latest provider application.
type ApplicationStatus string

const (
	ApplicationStatusNone     ApplicationStatus = "none"
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// User represents a customer or provider account. Providers are users with IsVerified set.
type User struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	PasswordHash      string            `json:"-"`
	Phone             null.String       `json:"phone"`
	Location          null.String       `json:"location"`
	Bio               null.String       `json:"bio"`
	IsVerified        bool              `json:"is_verified"`
	ApplicationStatus ApplicationStatus `json:"application_status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// CanApply reports whether the user may submit a new provider application.
func (u *User) CanApply() bool {
	return !u.IsVerified && u.ApplicationStatus != ApplicationStatusPending
}

// Profile is a user joined with their profile picture.
type Profile struct {
	User
	ProfilePicture null.String `json:"profile_picture"`
}

// ProfilePicture stores one picture URL per user.
type ProfilePicture struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate carries only the fields present in the request; nil means untouched.
type ProfileUpdate struct {
	Name     *string
	Phone    *string
	Location *string
	Bio      *string
}

// IsEmpty reports whether no field was supplied.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Location == nil && p.Bio == nil
}

// UpdateProfileInput is the PUT /profile body. Address and details are the public names of location and bio.
type UpdateProfileInput struct {
	Name    *string `json:"name" binding:"omitempty,notblank,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Details *string `json:"details" binding:"omitempty,max=1000"`
}

// ToUpdate maps the request onto storage fields.
func (in UpdateProfileInput) ToUpdate() ProfileUpdate {
	return ProfileUpdate{
		Name:     in.Name,
		Phone:    in.Phone,
		Location: in.Address,
		Bio:      in.Details,
	}
}

// UploadPictureInput carries an already-hosted picture URL.
type UploadPictureInput struct {
	Path string `json:"path" binding:"required,notblank,max=2048"`
}

// UpdateEmailInput represents input for changing the account email.
type UpdateEmailInput struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// ChangePasswordInput represents input for changing the account password.
type ChangePasswordInput struct {
	CurrentPassword         string `json:"current_password" binding:"required"`
	NewPassword             string `json:"new_password" binding:"required,min=8"`
	NewPasswordConfirmation string `json:"new_password_confirmation" binding:"required,eqfield=NewPassword"`
}
