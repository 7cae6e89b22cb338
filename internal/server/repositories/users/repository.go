package users

import (
	"context"

	"github.com/dmitrijs2005/favfood/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its ID. A taken email (case-insensitive)
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
