package in

import (
	"context"

	"neurocalm/internal/modules/account/dto"
)

// Usecase is the session manager and the profile/progress mutator of the
// current account. Mutations fail with apperrors.ErrNotAuthenticated,
// without persisting or notifying, when nobody is signed in.
type Usecase interface {
	Register(ctx context.Context, input dto.RegisterInput) (dto.AccountOutput, error)
	Login(ctx context.Context, input dto.LoginInput) (dto.AccountOutput, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (dto.AccountOutput, error)
	Current(ctx context.Context) (dto.AccountOutput, error)

	SendVerificationEmail(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, input dto.UpdatePasswordInput) error

	UpdateProgress(ctx context.Context, input dto.ProgressInput) (dto.AccountOutput, error)
	AddTherapySession(ctx context.Context, input dto.AddSessionInput) (dto.AddSessionOutput, error)
	UpdateProfile(ctx context.Context, input dto.ProfileInput) (dto.AccountOutput, error)
	UpdateAvatar(ctx context.Context, imageRef string) (dto.AccountOutput, error)
	CompleteExercise(ctx context.Context, input dto.CompleteExerciseInput) (dto.AddSessionOutput, error)
}
