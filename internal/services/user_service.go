package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"usersvc/internal/models"
	"usersvc/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeleteUserRequest identifies the user to delete. UserID wins when both
// fields are set.
type DeleteUserRequest struct {
	UserID string `json:"user_id"`
	MobNum string `json:"mob_num"`
}

type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (string, error)
	FindUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	DeleteUser(ctx context.Context, req *DeleteUserRequest) error
	UpdateUsers(ctx context.Context, userIDs []string, patch *models.UserPatch) (*models.BulkOperationResult, error)
}

type userService struct {
	userRepo    repositories.UserRepository
	managerRepo repositories.ManagerRepository
	log         *zap.Logger
	newID       func() string
}

func NewUserService(userRepo repositories.UserRepository, managerRepo repositories.ManagerRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo:    userRepo,
		managerRepo: managerRepo,
		log:         log,
		newID:       func() string { return uuid.New().String() },
	}
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (string, error) {
	if err := ValidateNewUser(req); err != nil {
		return "", err
	}

	active, err := s.managerRepo.IsActive(ctx, req.ManagerID)
	if err != nil {
		return "", storeError("check manager", err)
	}
	if !active {
		return "", ErrInvalidManager
	}

	managerID := req.ManagerID
	user := &models.User{
		ID:        s.newID(),
		FullName:  req.FullName,
		MobNum:    req.MobNum,
		PanNum:    strings.ToUpper(req.PanNum),
		ManagerID: &managerID,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", storeError("create user", err)
	}

	s.log.Info("user created", zap.String("user_id", user.ID), zap.String("manager_id", managerID))
	return user.ID, nil
}

func (s *userService) FindUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	users, err := s.userRepo.Find(ctx, filter)
	if err != nil {
		return nil, storeError("find users", err)
	}
	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, req *DeleteUserRequest) error {
	if req == nil || (req.UserID == "" && req.MobNum == "") {
		return ErrMissingIdentifier
	}

	var (
		n   int64
		err error
	)
	if req.UserID != "" {
		n, err = s.userRepo.DeleteByID(ctx, req.UserID)
	} else {
		n, err = s.userRepo.DeleteByMobile(ctx, req.MobNum)
	}
	if err != nil {
		return storeError("delete user", err)
	}

	s.log.Info("user delete executed",
		zap.String("user_id", req.UserID),
		zap.String("mob_num", req.MobNum),
		zap.Int64("rows_affected", n),
	)
	return nil
}

// UpdateUsers overwrites every listed user with patch, one statement per
// id and no transaction. Per-id failures are logged and recorded in the
// result; they never make the call fail. Cancellation of ctx does not
// stop the batch.
func (s *userService) UpdateUsers(ctx context.Context, userIDs []string, patch *models.UserPatch) (*models.BulkOperationResult, error) {
	if err := ValidateUserPatch(patch); err != nil {
		return nil, err
	}
	if userIDs == nil {
		return nil, &ValidationError{Message: "user_ids is required."}
	}

	write := *patch
	if patch.PanNum != nil {
		pan := strings.ToUpper(*patch.PanNum)
		write.PanNum = &pan
	}

	result := &models.BulkOperationResult{
		OperationID: fmt.Sprintf("bulk_update_users_%d", time.Now().UnixNano()),
		TotalItems:  len(userIDs),
		StartTime:   time.Now(),
	}

	writeCtx := context.WithoutCancel(ctx)
	for i, id := range userIDs {
		if _, err := s.userRepo.Update(writeCtx, id, &write); err != nil {
			result.FailedItems++
			result.Errors = append(result.Errors, models.BulkOperationError{
				ItemIndex: i,
				ItemID:    id,
				Error:     err.Error(),
			})
			s.log.Error("Update error", zap.String("user_id", id), zap.Error(err))
			continue
		}
		result.ProcessedItems++
	}

	completed := time.Now()
	result.CompletionTime = &completed
	result.Status = "completed"
	if result.FailedItems > 0 {
		result.Status = "partial"
	}
	return result, nil
}
