package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/dto"
	"github.com/ideasnet/server/internal/model"
	"github.com/ideasnet/server/internal/repository"
	"github.com/ideasnet/server/pkg/apperror"
	"github.com/ideasnet/server/pkg/storage"
	"gorm.io/gorm"
)

const maxAvatarSize = 5 << 20 // 5 MB

type UserService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	ProfileByUsername(ctx context.Context, username string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.User, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*model.User, error)
}

type userService struct {
	userRepo     repository.UserRepository
	imageStorage storage.ImageStorage
}

func NewUserService(userRepo repository.UserRepository, imageStorage storage.ImageStorage) UserService {
	return &userService{
		userRepo:     userRepo,
		imageStorage: imageStorage,
	}
}

func (s *userService) Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "User not found", "", apperror.ErrNotFound)
		}
		return nil, err
	}
	return s.withCounts(ctx, user)
}

func (s *userService) ProfileByUsername(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "User not found", "", apperror.ErrNotFound)
		}
		return nil, err
	}
	return s.withCounts(ctx, user)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "User not found", "", apperror.ErrNotFound)
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.Skills != nil {
		user.Skills = model.StringList(*req.Skills)
		if user.Skills == nil {
			user.Skills = model.StringList{}
		}
	}
	if req.Interests != nil {
		user.Interests = model.StringList(*req.Interests)
		if user.Interests == nil {
			user.Interests = model.StringList{}
		}
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Website != nil {
		user.Website = req.Website
	}
	if req.Linkedin != nil {
		user.Linkedin = req.Linkedin
	}
	if req.Twitter != nil {
		user.Twitter = req.Twitter
	}
	if req.Github != nil {
		user.Github = req.Github
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*model.User, error) {
	if s.imageStorage == nil {
		return nil, apperror.New(http.StatusInternalServerError, "Server configuration error", "Image storage is not configured.", apperror.ErrMisconfigured)
	}
	if file.Size > maxAvatarSize {
		return nil, apperror.New(http.StatusBadRequest, "File too large", "Avatar must be 5 MB or less", apperror.ErrInvalidInput)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "User not found", "", apperror.ErrNotFound)
		}
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	url, err := s.imageStorage.UploadImage(ctx, src, "avatars", userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	// Old avatar removal is best-effort; external URLs from OAuth are
	// skipped by the storage backend.
	if user.Avatar != nil && *user.Avatar != "" {
		_ = s.imageStorage.DeleteImage(ctx, *user.Avatar)
	}

	user.Avatar = &url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) withCounts(ctx context.Context, user *model.User) (*dto.ProfileResponse, error) {
	ideas, comments, votes, err := s.userRepo.Counts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{
		User: *user,
		Counts: dto.ProfileCounts{
			Ideas:    ideas,
			Comments: comments,
			Votes:    votes,
		},
	}, nil
}
