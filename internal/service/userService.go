package service

import (
	"context"
	"fmt"

	"event-ticketing/internal/database"
	"event-ticketing/internal/entity"
)

type userService struct {
	userRepo database.UserRepository
}

func NewUserService(userRepo database.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterUser(ctx context.Context, req *RegisterUserRequest) (*entity.User, error) {
	role := req.Role
	if role == "" {
		role = entity.UserRoleAttendee
	}
	switch role {
	case entity.UserRoleAdmin, entity.UserRoleOrganizer, entity.UserRoleAttendee:
	default:
		return nil, fmt.Errorf("invalid role %q: %w", role, entity.ErrInvalidInput)
	}

	user := &entity.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
