package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"markeep/internal/database"
	domainerrors "markeep/internal/errors"
	"markeep/internal/storage"
)

// UpdateProfileImage stores a new profile image for the user and removes the
// one it replaces.
func (s *Service) UpdateProfileImage(ctx context.Context, userID int64, data io.Reader) error {
	id, err := s.images.SaveImage(data)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTooLarge):
			return domainerrors.InvalidArgument("image is too large")
		case errors.Is(err, storage.ErrUnsupportedType):
			return domainerrors.InvalidArgument("image must be png, jpeg, gif or webp")
		}
		return domainerrors.Internal(err)
	}

	previous, err := s.store.UpdateUserProfileImage(ctx, userID, id)
	if err != nil {
		s.removeImage(id)
		if errors.Is(err, database.ErrUserNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return domainerrors.Internal(err)
	}

	if previous != nil {
		s.removeImage(*previous)
	}
	return nil
}

// ProfileImage opens the user's current profile image. The caller closes it.
func (s *Service) ProfileImage(ctx context.Context, userID int64) (*os.File, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domainerrors.Internal(err)
	}
	if user == nil || user.ProfileImage == nil {
		return nil, domainerrors.NotFound("profile image not found")
	}

	f, err := s.images.Get(*user.ProfileImage)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, domainerrors.NotFound("profile image not found")
		}
		return nil, domainerrors.Internal(err)
	}
	return f, nil
}

func (s *Service) removeImage(id string) {
	if err := s.images.Delete(id); err != nil {
		s.logger.Warn("failed to remove profile image", slog.String("image", id), slog.Any("error", err))
	}
}
