package interactor

import (
	"context"

	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
)

type UserInteractor struct {
	userRepository repositories.UserRepository
}

func NewUserInteractor(Repository repositories.UserRepository) *UserInteractor {
	return &UserInteractor{userRepository: Repository}
}

func (u *UserInteractor) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, err := u.userRepository.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
