package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/usecases"
	"appointme.backend/pkg/crypto"
)

func strPtr(s string) *string { return &s }

func TestProfileUsecase_UpdateMapsPublicFieldNames(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecases.NewProfileUsecase(users, new(MockProfilePictureRepository))
	userID := uuid.New()

	users.On("UpdateProfile", mock.Anything, userID, mock.MatchedBy(func(u entities.ProfileUpdate) bool {
		return *u.Name == "Nadia" && *u.Location == "Dhanmondi" && u.Bio == nil && u.Phone == nil
	})).Return(nil)
	users.On("GetProfile", mock.Anything, userID).Return(&entities.Profile{
		User: entities.User{ID: userID, Name: "Nadia", Location: null.StringFrom("Dhanmondi")},
	}, nil)

	profile, err := uc.Update(context.Background(), userID, &entities.UpdateProfileInput{
		Name:    strPtr("  Nadia "),
		Address: strPtr("Dhanmondi"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dhanmondi", profile.Location.String)
	users.AssertExpectations(t)
}

func TestProfileUsecase_UpdateRejectsBlankName(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecases.NewProfileUsecase(users, new(MockProfilePictureRepository))

	_, err := uc.Update(context.Background(), uuid.New(), &entities.UpdateProfileInput{Name: strPtr("   ")})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileUsecase_Picture(t *testing.T) {
	users := new(MockUserRepository)
	pictures := new(MockProfilePictureRepository)
	uc := usecases.NewProfileUsecase(users, pictures)
	userID := uuid.New()

	users.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID}, nil)
	pictures.On("Upsert", mock.Anything, userID, "https://cdn.example.com/me.png").
		Return(&entities.ProfilePicture{UserID: userID, Path: "https://cdn.example.com/me.png"}, nil)
	pictures.On("GetByUserID", mock.Anything, userID).Return(nil, domainerrors.ErrNotFound)

	pic, err := uc.UploadPicture(context.Background(), userID, &entities.UploadPictureInput{Path: " https://cdn.example.com/me.png "})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/me.png", pic.Path)

	_, err = uc.GetPicture(context.Background(), userID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileUsecase_UpdateEmailConflict(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecases.NewProfileUsecase(users, new(MockProfilePictureRepository))
	userID := uuid.New()
	users.On("UpdateEmail", mock.Anything, userID, "taken@example.com").Return(domainerrors.ErrAlreadyExists)

	_, err := uc.UpdateEmail(context.Background(), userID, &entities.UpdateEmailInput{Email: "Taken@Example.com"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestProfileUsecase_ChangePassword(t *testing.T) {
	hash, err := crypto.HashPassword("old-password")
	require.NoError(t, err)
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := usecases.NewProfileUsecase(users, new(MockProfilePictureRepository))
		users.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID, PasswordHash: hash}, nil)
		users.On("UpdatePassword", mock.Anything, userID, mock.MatchedBy(func(h string) bool {
			return crypto.CheckPassword("new-password", h)
		})).Return(nil)

		require.NoError(t, uc.ChangePassword(context.Background(), userID, &entities.ChangePasswordInput{
			CurrentPassword:         "old-password",
			NewPassword:             "new-password",
			NewPasswordConfirmation: "new-password",
		}))
		users.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		users := new(MockUserRepository)
		uc := usecases.NewProfileUsecase(users, new(MockProfilePictureRepository))
		users.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID, PasswordHash: hash}, nil)

		err := uc.ChangePassword(context.Background(), userID, &entities.ChangePasswordInput{
			CurrentPassword:         "guess",
			NewPassword:             "new-password",
			NewPasswordConfirmation: "new-password",
		})
		var appErr *domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 422, appErr.Status)
		assert.Contains(t, appErr.Fields, "current_password")
	})

	t.Run("mismatch and too short", func(t *testing.T) {
		uc := usecases.NewProfileUsecase(new(MockUserRepository), new(MockProfilePictureRepository))
		err := uc.ChangePassword(context.Background(), userID, &entities.ChangePasswordInput{
			CurrentPassword:         "old-password",
			NewPassword:             "short",
			NewPasswordConfirmation: "other",
		})
		var appErr *domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Len(t, appErr.Fields, 2)
	})
}

func TestProfileUsecase_DeleteAccount(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecases.NewProfileUsecase(users, new(MockProfilePictureRepository))
	userID := uuid.New()
	users.On("SoftDelete", mock.Anything, userID).Return(nil)

	require.NoError(t, uc.DeleteAccount(context.Background(), userID))
	users.AssertExpectations(t)
}
