package in

import (
	"context"

	accountdto "neurocalm/internal/modules/account/dto"
	accountin "neurocalm/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Register(ctx context.Context, name, email, password string) (accountdto.AccountOutput, error) {
	return h.usecase.Register(ctx, accountdto.RegisterInput{Name: name, Email: email, Password: password})
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (accountdto.AccountOutput, error) {
	return h.usecase.Login(ctx, accountdto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Restore(ctx context.Context) (accountdto.AccountOutput, error) {
	return h.usecase.Restore(ctx)
}

func (h CLIHandler) Current(ctx context.Context) (accountdto.AccountOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) SendVerificationEmail(ctx context.Context, email string) error {
	return h.usecase.SendVerificationEmail(ctx, email)
}

func (h CLIHandler) ResetPassword(ctx context.Context, email string) error {
	return h.usecase.ResetPassword(ctx, email)
}

func (h CLIHandler) UpdatePassword(ctx context.Context, current, next string) error {
	return h.usecase.UpdatePassword(ctx, accountdto.UpdatePasswordInput{Current: current, New: next})
}

func (h CLIHandler) UpdateProgress(ctx context.Context, input accountdto.ProgressInput) (accountdto.AccountOutput, error) {
	return h.usecase.UpdateProgress(ctx, input)
}

func (h CLIHandler) AddTherapySession(ctx context.Context, date, title, notes string, stress int) (accountdto.AddSessionOutput, error) {
	return h.usecase.AddTherapySession(ctx, accountdto.AddSessionInput{Date: date, Title: title, Notes: notes, StressLevel: stress})
}

func (h CLIHandler) UpdateProfile(ctx context.Context, input accountdto.ProfileInput) (accountdto.AccountOutput, error) {
	return h.usecase.UpdateProfile(ctx, input)
}

func (h CLIHandler) UpdateAvatar(ctx context.Context, imageRef string) (accountdto.AccountOutput, error) {
	return h.usecase.UpdateAvatar(ctx, imageRef)
}
