package usecases

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
)

type HasUsersUseCase struct {
	userRepo user.Repository
}

func NewHasUsersUseCase(userRepo user.Repository) *HasUsersUseCase {
	return &HasUsersUseCase{userRepo: userRepo}
}

func (uc *HasUsersUseCase) Execute(ctx context.Context) (bool, error) {
	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count > 0, nil
}
