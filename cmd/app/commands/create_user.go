package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	userDomain "github.com/allisson/vending/internal/user/domain"
)

// UserRegistrar creates accounts.
type UserRegistrar interface {
	Register(ctx context.Context, input *userDomain.RegisterUserInput) (*userDomain.User, error)
}

// RunCreateUser creates an account from the command line, typically the first seller.
func RunCreateUser(
	ctx context.Context,
	registrar UserRegistrar,
	logger *slog.Logger,
	writer io.Writer,
	username, password, role, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	parsedRole, ok := userDomain.ParseRole(role)
	if !ok {
		return fmt.Errorf("invalid role: %s (valid options: BUYER, SELLER)", role)
	}

	user, err := registrar.Register(ctx, &userDomain.RegisterUserInput{
		Username: username,
		Password: password,
		Role:     parsedRole,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"id":       user.ID.String(),
			"username": user.Username,
			"role":     user.Role,
		})
	}

	_, err = fmt.Fprintf(writer, "Created %s account %q with ID %s\n", user.Role, user.Username, user.ID)
	return err
}
