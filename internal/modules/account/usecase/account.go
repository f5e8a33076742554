package usecase

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"neurocalm/internal/modules/account/domain"
	"neurocalm/internal/modules/account/dto"
	accountin "neurocalm/internal/modules/account/port/in"
	accountout "neurocalm/internal/modules/account/port/out"
	"neurocalm/internal/modules/account/service"
	apperrors "neurocalm/internal/platform/errors"
	"neurocalm/internal/platform/id"
	"neurocalm/internal/platform/notify"
	"neurocalm/internal/platform/tx"
)

type Options struct {
	// VerifyPassword turns on credential checks for login and password
	// updates. Off by default: login trusts the email alone.
	VerifyPassword bool
	ResetLinkBase  string
}

// Interactor owns the current session. Calls are serialised, so at most one
// caller interaction is in flight, including across simulated external calls.
type Interactor struct {
	mu sync.Mutex

	svc      *service.AccountService
	records  *service.RecordService
	gateway  accountout.Gateway
	notifier accountout.Notifier
	tx       tx.Manager
	tokens   id.Generator
	logger   *zap.Logger
	opts     Options

	current *domain.UserAccount
}

func NewInteractor(
	svc *service.AccountService,
	records *service.RecordService,
	gateway accountout.Gateway,
	notifier accountout.Notifier,
	txm tx.Manager,
	tokens id.Generator,
	logger *zap.Logger,
	opts Options,
) accountin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		svc:      svc,
		records:  records,
		gateway:  gateway,
		notifier: notifier,
		tx:       txm,
		tokens:   tokens,
		logger:   logger,
		opts:     opts,
	}
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.AccountOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	dir, err := i.records.LoadDirectory(ctx)
	if err != nil {
		i.notify(ctx, notify.Failure("Registration failed", "There was an error creating your account. Please try again."))
		return dto.AccountOutput{}, err
	}
	if dir.IndexOfEmail(input.Email) >= 0 {
		i.notify(ctx, notify.Failure("Registration failed", "An account with this email already exists. Please use a different email or login."))
		return dto.AccountOutput{}, apperrors.ErrDuplicateAccount
	}
	entry, err := i.svc.NewEntry(input.Name, input.Email, input.Password)
	if err != nil {
		i.notify(ctx, notify.Failure("Registration failed", "There was an error creating your account. Please try again."))
		return dto.AccountOutput{}, err
	}

	err = i.tx.Within(ctx, func(ctx context.Context) error {
		if err := i.records.SaveDirectory(ctx, append(dir, entry)); err != nil {
			return err
		}
		return i.records.OpenSession(ctx, entry.UserAccount)
	})
	if err != nil {
		i.notify(ctx, notify.Failure("Registration failed", "There was an error creating your account. Please try again."))
		return dto.AccountOutput{}, fmt.Errorf("persist registration: %w", err)
	}
	account := entry.UserAccount
	i.current = &account
	i.logger.Info("account registered", zap.String("account_id", account.ID), zap.String("email", account.Email))

	// Best effort: a failed verification mail is reported, never fatal.
	if err := i.sendVerification(ctx, account.Email); err != nil {
		i.logger.Warn("verification email failed", zap.String("email", account.Email), zap.Error(err))
	}

	i.notify(ctx, notify.Success("Registration successful", "Welcome to NeuroCalm! Your account has been created."))
	return toOutput(account), nil
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.AccountOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	dir, err := i.records.LoadDirectory(ctx)
	if err != nil {
		i.notify(ctx, notify.Failure("Login failed", "Please check your credentials and try again."))
		return dto.AccountOutput{}, err
	}
	idx := dir.IndexOfEmail(input.Email)
	if idx < 0 {
		i.notify(ctx, notify.Failure("Login failed", "No account found with this email. Please register first."))
		return dto.AccountOutput{}, apperrors.ErrAccountNotFound
	}
	if i.opts.VerifyPassword {
		if err := i.svc.CheckPassword(dir[idx], input.Password); err != nil {
			i.notify(ctx, notify.Failure("Login failed", "Please check your credentials and try again."))
			return dto.AccountOutput{}, err
		}
	}

	account := dir[idx].UserAccount
	err = i.tx.Within(ctx, func(ctx context.Context) error {
		return i.records.OpenSession(ctx, account)
	})
	if err != nil {
		i.notify(ctx, notify.Failure("Login failed", "Please check your credentials and try again."))
		return dto.AccountOutput{}, fmt.Errorf("persist login: %w", err)
	}
	i.current = &account
	i.logger.Info("account signed in", zap.String("account_id", account.ID))
	i.notify(ctx, notify.Success("Login successful", "Welcome back to NeuroCalm!"))
	return toOutput(account), nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	err := i.tx.Within(ctx, func(ctx context.Context) error {
		return i.records.CloseSession(ctx)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	i.current = nil
	i.logger.Info("signed out")
	i.notify(ctx, notify.Success("Logged out", "You have been successfully logged out."))
	return nil
}

// Restore resumes a session persisted by an earlier run. Both the flag and a
// decodable current account are needed; anything less leaves the caller
// anonymous.
func (i *Interactor) Restore(ctx context.Context) (dto.AccountOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	authenticated, err := i.records.IsAuthenticated(ctx)
	if err != nil {
		return dto.AccountOutput{}, err
	}
	if !authenticated {
		i.current = nil
		return dto.AccountOutput{}, apperrors.ErrNotAuthenticated
	}
	account, ok, err := i.records.LoadCurrent(ctx)
	if err != nil {
		return dto.AccountOutput{}, err
	}
	if !ok {
		i.current = nil
		return dto.AccountOutput{}, apperrors.ErrNotAuthenticated
	}
	i.current = &account
	return toOutput(account), nil
}

func (i *Interactor) Current(_ context.Context) (dto.AccountOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.current == nil {
		return dto.AccountOutput{}, apperrors.ErrNotAuthenticated
	}
	return toOutput(*i.current), nil
}

func (i *Interactor) SendVerificationEmail(ctx context.Context, email string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.sendVerification(ctx, email)
}

func (i *Interactor) sendVerification(ctx context.Context, email string) error {
	if err := i.gateway.SendVerificationEmail(ctx, email); err != nil {
		i.notify(ctx, notify.Failure("Verification failed", "There was an error sending the verification email. Please try again."))
		return err
	}
	i.notify(ctx, notify.Success("Verification email sent", "Please check your inbox and follow the verification link."))
	return nil
}

// ResetPassword answers identically whether or not the address is
// registered; only the gateway learns the difference.
func (i *Interactor) ResetPassword(ctx context.Context, email string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	dir, err := i.records.LoadDirectory(ctx)
	if err != nil {
		i.notify(ctx, notify.Failure("Reset request failed", "There was an error sending the reset email. Please try again."))
		return err
	}
	link := ""
	if dir.IndexOfEmail(email) >= 0 {
		link = fmt.Sprintf("%s?token=%s&email=%s", i.opts.ResetLinkBase, i.tokens.New(), url.QueryEscape(email))
	}
	if err := i.gateway.SendPasswordReset(ctx, email, link); err != nil {
		i.notify(ctx, notify.Failure("Reset request failed", "There was an error sending the reset email. Please try again."))
		return err
	}
	i.notify(ctx, notify.Success("Password reset email sent", "If an account exists with that email, you'll receive reset instructions."))
	return nil
}

func (i *Interactor) UpdatePassword(ctx context.Context, input dto.UpdatePasswordInput) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.current == nil {
		return apperrors.ErrNotAuthenticated
	}
	account := *i.current

	dir, err := i.records.LoadDirectory(ctx)
	if err != nil {
		i.notify(ctx, notify.Failure("Update failed", "There was an error updating your password. Please try again."))
		return err
	}
	idx := dir.IndexOf(account)
	if i.opts.VerifyPassword {
		if idx < 0 {
			i.notify(ctx, notify.Failure("Update failed", "Your current password is incorrect."))
			return apperrors.ErrInvalidCredentials
		}
		if err := i.svc.CheckPassword(dir[idx], input.Current); err != nil {
			i.notify(ctx, notify.Failure("Update failed", "Your current password is incorrect."))
			return err
		}
	}
	hash, err := i.svc.HashPassword(input.New)
	if err != nil {
		i.notify(ctx, notify.Failure("Update failed", "There was an error updating your password. Please try again."))
		return err
	}
	if err := i.gateway.UpdatePassword(ctx, account.Email); err != nil {
		i.notify(ctx, notify.Failure("Update failed", "There was an error updating your password. Please try again."))
		return err
	}
	if idx >= 0 {
		dir[idx].PasswordHash = hash
		if err := i.tx.Within(ctx, func(ctx context.Context) error { return i.records.SaveDirectory(ctx, dir) }); err != nil {
			i.notify(ctx, notify.Failure("Update failed", "There was an error updating your password. Please try again."))
			return fmt.Errorf("persist password: %w", err)
		}
	}
	i.notify(ctx, notify.Success("Password updated", "Your password has been successfully changed."))
	return nil
}

func (i *Interactor) UpdateProgress(ctx context.Context, input dto.ProgressInput) (dto.AccountOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.current == nil {
		return dto.AccountOutput{}, apperrors.ErrNotAuthenticated
	}
	next := *i.current
	next.Progress = next.Progress.Merge(domain.ProgressPatch{
		StressManagement:    input.StressManagement,
		EmotionalRegulation: input.EmotionalRegulation,
		TraumaProcessing:    input.TraumaProcessing,
		SleepQuality:        input.SleepQuality,
	})
	if err := i.apply(ctx, next); err != nil {
		return dto.AccountOutput{}, err
	}
	i.notify(ctx, notify.Success("Progress updated", "Your therapy progress has been updated."))
	return toOutput(next), nil
}

func (i *Interactor) AddTherapySession(ctx context.Context, input dto.AddSessionInput) (dto.AddSessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.current == nil {
		return dto.AddSessionOutput{}, apperrors.ErrNotAuthenticated
	}
	session, err := i.svc.NewSession(*i.current, domain.NewTherapySession{
		Date:        input.Date,
		Title:       input.Title,
		Notes:       input.Notes,
		StressLevel: input.StressLevel,
	})
	if err != nil {
		return dto.AddSessionOutput{}, err
	}
	next := i.current.WithSession(session)
	if err := i.apply(ctx, next); err != nil {
		return dto.AddSessionOutput{}, err
	}
	i.notify(ctx, notify.Success("Session recorded", "Your therapy session has been saved."))
	return dto.AddSessionOutput{Session: toSessionOutput(session), Account: toOutput(next)}, nil
}

func (i *Interactor) UpdateProfile(ctx context.Context, input dto.ProfileInput) (dto.AccountOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.current == nil {
		return dto.AccountOutput{}, apperrors.ErrNotAuthenticated
	}
	patch := domain.ProfilePatch{
		Name:          input.Name,
		Email:         input.Email,
		JoinDate:      input.JoinDate,
		TotalSessions: input.TotalSessions,
		EmailVerified: input.EmailVerified,
		Avatar:        input.Avatar,
	}
	if err := patch.Validate(); err != nil {
		return dto.AccountOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if input.Avatar != nil {
		if err := domain.ValidateAvatar(*input.Avatar); err != nil {
			return dto.AccountOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}
	if input.Email != nil && *input.Email != i.current.Email {
		dir, err := i.records.LoadDirectory(ctx)
		if err != nil {
			return dto.AccountOutput{}, err
		}
		if dir.EmailTakenByOther(*i.current, *input.Email) {
			i.notify(ctx, notify.Failure("Profile update failed", "An account with this email already exists."))
			return dto.AccountOutput{}, apperrors.ErrDuplicateAccount
		}
	}
	next := i.current.Merge(patch)
	if err := i.apply(ctx, next); err != nil {
		return dto.AccountOutput{}, err
	}
	i.notify(ctx, notify.Success("Profile updated", "Your profile information has been updated."))
	return toOutput(next), nil
}

func (i *Interactor) UpdateAvatar(ctx context.Context, imageRef string) (dto.AccountOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.current == nil {
		return dto.AccountOutput{}, apperrors.ErrNotAuthenticated
	}
	if err := domain.ValidateAvatar(imageRef); err != nil {
		i.notify(ctx, notify.Failure("Upload failed", err.Error()))
		return dto.AccountOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	next := *i.current
	next.Avatar = imageRef
	if err := i.apply(ctx, next); err != nil {
		return dto.AccountOutput{}, err
	}
	i.notify(ctx, notify.Success("Avatar updated", "Your profile picture has been updated."))
	return toOutput(next), nil
}

// CompleteExercise records a finished exercise as today's session and nudges
// stress management and emotional regulation by two points each, capped at 100.
func (i *Interactor) CompleteExercise(ctx context.Context, input dto.CompleteExerciseInput) (dto.AddSessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.current == nil {
		return dto.AddSessionOutput{}, apperrors.ErrNotAuthenticated
	}
	session, err := i.svc.NewSession(*i.current, domain.NewTherapySession{
		Date:        i.svc.Today(),
		Title:       input.Name,
		Notes:       fmt.Sprintf("Completed %s exercise", input.Name),
		StressLevel: input.StressLevel,
	})
	if err != nil {
		return dto.AddSessionOutput{}, err
	}
	next := i.current.WithSession(session)
	bumped := domain.ProgressMetrics{
		StressManagement:    next.Progress.StressManagement + 2,
		EmotionalRegulation: next.Progress.EmotionalRegulation + 2,
	}.Clamp()
	next.Progress.StressManagement = bumped.StressManagement
	next.Progress.EmotionalRegulation = bumped.EmotionalRegulation
	if err := i.apply(ctx, next); err != nil {
		return dto.AddSessionOutput{}, err
	}
	i.notify(ctx, notify.Success("Exercise completed", fmt.Sprintf("Great job! You've completed the %s exercise.", input.Name)))
	return dto.AddSessionOutput{Session: toSessionOutput(session), Account: toOutput(next)}, nil
}

// apply is the only path that writes a changed account: currentUser, then
// the matching directory entry, and only once both are written the in-memory
// session. The entry is located through the previous value so an email
// change renames it instead of orphaning it.
func (i *Interactor) apply(ctx context.Context, next domain.UserAccount) error {
	previous := *i.current
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		if err := i.records.SaveCurrent(ctx, next); err != nil {
			return err
		}
		dir, err := i.records.LoadDirectory(ctx)
		if err != nil {
			return err
		}
		idx := dir.IndexOf(previous)
		if idx < 0 {
			i.logger.Warn("no directory entry for current account", zap.String("email", previous.Email))
			return nil
		}
		dir[idx].UserAccount = next
		return i.records.SaveDirectory(ctx, dir)
	})
	if err != nil {
		return fmt.Errorf("sync account: %w", err)
	}
	i.current = &next
	i.logger.Debug("account synced", zap.String("account_id", next.ID), zap.Int("sessions", len(next.TherapySessions)))
	return nil
}

func (i *Interactor) notify(ctx context.Context, n notify.Notification) {
	if i.notifier != nil {
		i.notifier.Notify(ctx, n)
	}
}
