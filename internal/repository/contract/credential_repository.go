package contract

import (
	"context"

	"chatshot-be/internal/entity"
)

type CredentialRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindOne(ctx context.Context, id string) (*entity.Account, error)
	Exists(ctx context.Context, id string) (bool, error)
}
