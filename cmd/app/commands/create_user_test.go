package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	userDomain "github.com/allisson/vending/internal/user/domain"
	userMocks "github.com/allisson/vending/internal/user/usecase/mocks"
)

func TestRunCreateUser(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userID := uuid.Must(uuid.NewV7())

	matchInput := func(role userDomain.Role) any {
		return mock.MatchedBy(func(input *userDomain.RegisterUserInput) bool {
			return input.Username == "alice" && input.Password == "s3cret-pass" && input.Role == role
		})
	}

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Register", ctx, matchInput(userDomain.RoleSeller)).
			Return(&userDomain.User{ID: userID, Username: "alice", Role: userDomain.RoleSeller}, nil)

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, &out, "alice", "s3cret-pass", "seller", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), `Created SELLER account "alice"`)
		require.Contains(t, out.String(), userID.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Register", ctx, matchInput(userDomain.RoleBuyer)).
			Return(&userDomain.User{ID: userID, Username: "alice", Role: userDomain.RoleBuyer}, nil)

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, &out, "alice", "s3cret-pass", "BUYER", "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"role": "BUYER"`)
		require.Contains(t, out.String(), `"username": "alice"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-role", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}

		err := RunCreateUser(ctx, mockUseCase, logger, &bytes.Buffer{}, "alice", "s3cret-pass", "admin", "text")

		require.ErrorContains(t, err, "invalid role")
		mockUseCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("register-error", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Register", ctx, matchInput(userDomain.RoleSeller)).
			Return(nil, userDomain.ErrUsernameTaken)

		err := RunCreateUser(ctx, mockUseCase, logger, &bytes.Buffer{}, "alice", "s3cret-pass", "seller", "text")

		require.ErrorIs(t, err, userDomain.ErrUsernameTaken)
		mockUseCase.AssertExpectations(t)
	})
}
