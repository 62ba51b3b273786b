package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/vending/internal/database"
	apperrors "github.com/allisson/vending/internal/errors"
	userDomain "github.com/allisson/vending/internal/user/domain"
	appValidation "github.com/allisson/vending/internal/validation"
)

type userUseCase struct {
	txManager database.TxManager
	userRepo  UserRepository
	hasher    PasswordHasher
	revoker   SessionRevoker
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	hasher PasswordHasher,
	revoker SessionRevoker,
) UserUseCase {
	return &userUseCase{
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
		revoker:   revoker,
	}
}

func usernameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("username is required"),
		validation.Length(appValidation.UsernameMinLength, appValidation.UsernameMaxLength),
		appValidation.Username,
	}
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("password is required"),
		validation.Length(appValidation.PasswordMinLength, 0),
	}
}

func validateRegisterInput(input *userDomain.RegisterUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Username, usernameRules()...),
		validation.Field(&input.Password, passwordRules()...),
		validation.Field(&input.Role,
			validation.Required.Error("role is required"),
			validation.In(userDomain.RoleBuyer, userDomain.RoleSeller).Error("must be BUYER or SELLER"),
		),
	)
	return appValidation.WrapValidationError(err)
}

func validateUpdateInput(input *userDomain.UpdateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Username, validation.NilOrNotEmpty, validation.When(
			input.Username != nil,
			usernameRules()...,
		)),
		validation.Field(&input.Password, validation.NilOrNotEmpty, validation.When(
			input.Password != nil,
			passwordRules()...,
		)),
	)
	return appValidation.WrapValidationError(err)
}

// ensureUsernameAvailable fails with ErrUsernameTaken when another account already uses
// username. The unique index still guards concurrent registrations.
func (uc *userUseCase) ensureUsernameAvailable(ctx context.Context, username string, self uuid.UUID) error {
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return userDomain.ErrUsernameTaken
	}
	return nil
}

func (uc *userUseCase) Register(
	ctx context.Context,
	input *userDomain.RegisterUserInput,
) (*userDomain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Role = userDomain.Role(strings.ToUpper(string(input.Role)))
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	if err := uc.ensureUsernameAvailable(ctx, input.Username, uuid.Nil); err != nil {
		return nil, err
	}

	hashed, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &userDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  input.Username,
		Password:  hashed,
		Role:      input.Role,
		Deposit:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *userUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input *userDomain.UpdateUserInput,
) (*userDomain.User, error) {
	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		input.Username = &trimmed
	}
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	var user *userDomain.User
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = uc.userRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if input.Username != nil && *input.Username != user.Username {
			if err := uc.ensureUsernameAvailable(ctx, *input.Username, user.ID); err != nil {
				return err
			}
			user.Username = *input.Username
		}

		if input.Password != nil {
			hashed, err := uc.hasher.Hash(*input.Password)
			if err != nil {
				return apperrors.Wrap(err, "failed to hash password")
			}
			user.Password = hashed
		}

		user.UpdatedAt = time.Now().UTC()
		return uc.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.revoker.Revoke(ctx, id)
}
