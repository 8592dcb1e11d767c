package usecase

import (
	"context"
	"time"

	"store-rating/internal/data/entity"
	"store-rating/internal/data/repository"
	"store-rating/internal/dto/request"
	"store-rating/internal/dto/response"
	"store-rating/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxAdmins caps how many ADMIN accounts may exist
const maxAdmins = 5

type AdminService interface {
	DashboardStats(ctx context.Context) (*response.DashboardResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserSummary, error)
	ListUsers(ctx context.Context, params repository.ListUsersParams) ([]response.UserSummary, error)
	GetUserDetails(ctx context.Context, id uuid.UUID) (*response.UserDetailResponse, error)
	UpdateOwnerID(ctx context.Context, id uuid.UUID, req *request.UpdateOwnerIDRequest) (*response.UpdateOwnerIDResponse, error)
	ListOwners(ctx context.Context) ([]response.UserSummary, error)
	CreateStore(ctx context.Context, req *request.AdminStoreRequest) (*response.StoreResponse, error)
	UpdateStore(ctx context.Context, id uuid.UUID, req *request.AdminStoreRequest) (*response.StoreResponse, error)
	DeleteStore(ctx context.Context, id uuid.UUID) (*response.DeleteStoreResponse, error)
	ListStores(ctx context.Context, params repository.ListStoresParams) ([]response.AdminStoreResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log,
	}
}

func (s *adminService) DashboardStats(ctx context.Context) (*response.DashboardResponse, error) {
	totalUsers, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalStores, err := s.repo.Store.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalRatings, err := s.repo.Rating.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return &response.DashboardResponse{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}, nil
}

func (s *adminService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserSummary, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, validationError("%s", utils.FormatValidationErrors(errs))
	}

	role, ok := entity.NormalizeRole(req.Role)
	if !ok {
		return nil, validationError("Role must be one of: ADMIN, USER, OWNER")
	}

	// 2. owner_id is only meaningful on OWNER accounts and must be unique
	if req.OwnerID != nil && *req.OwnerID != "" {
		if role != entity.RoleOwner {
			return nil, validationError("Owner ID can only be assigned to users with OWNER role")
		}

		existing, err := s.repo.User.FindByOwnerCode(ctx, *req.OwnerID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, conflictError("Owner ID '%s' is already taken", *req.OwnerID)
		}
	}

	// 3. Cap the number of administrator accounts
	if role == entity.RoleAdmin {
		adminCount, err := s.repo.User.CountByRole(ctx, entity.RoleAdmin)
		if err != nil {
			return nil, err
		}
		if adminCount >= maxAdmins {
			return nil, validationError("Maximum number of administrators reached (%d)", maxAdmins)
		}
	}

	// 4. Hash and insert
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Address:      req.Address,
		Role:         role,
	}
	if req.OwnerID != nil && *req.OwnerID != "" {
		user.OwnerID = req.OwnerID
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, conflictError("Email or Owner ID already exists")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, err
	}

	s.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	summary := response.UserToSummary(user)
	return &summary, nil
}

func (s *adminService) ListUsers(ctx context.Context, params repository.ListUsersParams) ([]response.UserSummary, error) {
	if params.Role != "" {
		role, ok := entity.NormalizeRole(params.Role)
		if !ok {
			return nil, validationError("Role must be one of: ADMIN, USER, OWNER")
		}
		params.Role = string(role)
	}

	rows, err := s.repo.User.List(ctx, params)
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]response.UserSummary, 0, len(rows))
	for _, row := range rows {
		users = append(users, response.UserToSummary(row))
	}

	return users, nil
}

// GetUserDetails includes the aggregate rating of the user's store when
// the user is an owner
func (s *adminService) GetUserDetails(ctx context.Context, id uuid.UUID) (*response.UserDetailResponse, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("User not found")
	}

	detail := &response.UserDetailResponse{
		UserSummary: response.UserToSummary(user),
	}

	if user.Role == entity.RoleOwner {
		average, err := s.repo.Rating.AverageByOwner(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		detail.OwnerRating = &average
	}

	return detail, nil
}

func (s *adminService) UpdateOwnerID(ctx context.Context, id uuid.UUID, req *request.UpdateOwnerIDRequest) (*response.UpdateOwnerIDResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Owner ID validation failed", zap.Any("errors", errs))
		return nil, validationError("Owner ID must be a string with maximum 20 characters")
	}

	// 2. Target must exist and hold the OWNER role
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("User not found")
	}
	if user.Role != entity.RoleOwner {
		return nil, validationError("Owner ID can only be assigned to users with OWNER role")
	}

	// 3. The identifier must not belong to another user
	existing, err := s.repo.User.FindByOwnerCode(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, conflictError("Owner ID '%s' is already taken by another user", req.OwnerID)
	}

	// 4. Assign; a concurrent assignment race falls through to the unique
	// index and the original assignment stays untouched
	if err := s.repo.User.UpdateOwnerCode(ctx, id, req.OwnerID); err != nil {
		if isDuplicate(err) {
			return nil, conflictError("Owner ID '%s' is already taken by another user", req.OwnerID)
		}
		s.log.Error("Failed to assign owner id", zap.Error(err), zap.String("user_id", id.String()))
		return nil, err
	}

	s.log.Info("Owner ID assigned",
		zap.String("user_id", id.String()),
		zap.String("owner_id", req.OwnerID))

	return &response.UpdateOwnerIDResponse{
		Message: "Owner ID updated successfully",
		UserID:  id.String(),
		OwnerID: req.OwnerID,
		Name:    user.Name,
	}, nil
}

func (s *adminService) ListOwners(ctx context.Context) ([]response.UserSummary, error) {
	rows, err := s.repo.User.FindOwners(ctx)
	if err != nil {
		s.log.Error("Failed to list owners", zap.Error(err))
		return nil, err
	}

	owners := make([]response.UserSummary, 0, len(rows))
	for _, row := range rows {
		owners = append(owners, response.UserToSummary(row))
	}

	return owners, nil
}

// resolveStoreOwner validates the optional owner reference of an admin
// store payload and returns the owning user's id
func (s *adminService) resolveStoreOwner(ctx context.Context, req *request.AdminStoreRequest) (*uuid.UUID, error) {
	if req.OwnerID == nil || *req.OwnerID == "" {
		return nil, nil
	}

	ownerUserID, err := uuid.Parse(*req.OwnerID)
	if err != nil {
		return nil, validationError("owner_id must be a valid UUID")
	}

	user, err := s.repo.User.FindByID(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, validationError("User with ID %s does not exist", ownerUserID.String())
	}
	if user.Role != entity.RoleOwner {
		return nil, validationError("User with ID %s is not an OWNER (role: %s)", ownerUserID.String(), user.Role)
	}

	return &ownerUserID, nil
}

func (s *adminService) CreateStore(ctx context.Context, req *request.AdminStoreRequest) (*response.StoreResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create store validation failed", zap.Any("errors", errs))
		return nil, validationError("%s", utils.FormatValidationErrors(errs))
	}

	ownerUserID, err := s.resolveStoreOwner(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. An owner manages at most one store
	if ownerUserID != nil {
		existing, err := s.repo.Store.FindByOwner(ctx, *ownerUserID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, conflictError("This owner already has a store")
		}
	}

	now := time.Now()
	store := &entity.Store{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: ownerUserID,
	}

	if err := s.repo.Store.Create(ctx, store); err != nil {
		if isDuplicate(err) {
			return nil, conflictError("Store email or owner already exists")
		}
		s.log.Error("Failed to create store", zap.Error(err), zap.String("email", req.Email))
		return nil, err
	}

	s.log.Info("Store created by admin",
		zap.String("store_id", store.ID.String()),
		zap.String("email", store.Email))

	resp := response.StoreToResponse(store)
	return &resp, nil
}

func (s *adminService) UpdateStore(ctx context.Context, id uuid.UUID, req *request.AdminStoreRequest) (*response.StoreResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update store validation failed", zap.Any("errors", errs))
		return nil, validationError("%s", utils.FormatValidationErrors(errs))
	}

	store, err := s.repo.Store.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find store", zap.Error(err), zap.String("store_id", id.String()))
		return nil, err
	}
	if store == nil {
		return nil, notFoundError("Store not found")
	}

	ownerUserID, err := s.resolveStoreOwner(ctx, req)
	if err != nil {
		return nil, err
	}

	// Reassigning to an owner who already has a different store is a conflict
	if ownerUserID != nil {
		existing, err := s.repo.Store.FindByOwner(ctx, *ownerUserID)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, conflictError("This owner already has a store")
		}
	}

	store.Name = req.Name
	store.Email = req.Email
	store.Address = req.Address
	store.OwnerID = ownerUserID
	store.UpdatedAt = time.Now()

	if err := s.repo.Store.Update(ctx, store); err != nil {
		if isDuplicate(err) {
			return nil, conflictError("Store email or owner already exists")
		}
		s.log.Error("Failed to update store", zap.Error(err), zap.String("store_id", id.String()))
		return nil, err
	}

	s.log.Info("Store updated by admin", zap.String("store_id", id.String()))

	resp := response.StoreToResponse(store)
	return &resp, nil
}

// DeleteStore removes a store and reports the owner identity and the
// number of ratings cascaded away
func (s *adminService) DeleteStore(ctx context.Context, id uuid.UUID) (*response.DeleteStoreResponse, error) {
	store, err := s.repo.Store.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find store", zap.Error(err), zap.String("store_id", id.String()))
		return nil, err
	}
	if store == nil {
		return nil, notFoundError("Store not found")
	}

	ratingCount, err := s.repo.Rating.CountByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	deleted := response.DeletedStore{
		ID:             store.ID.String(),
		Name:           store.Name,
		RatingsDeleted: ratingCount,
	}

	if store.OwnerID != nil {
		ownerID := store.OwnerID.String()
		deleted.OwnerID = &ownerID

		owner, err := s.repo.User.FindByID(ctx, *store.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			deleted.OwnerInfo = &response.OwnerInfo{
				Name:  owner.Name,
				Email: owner.Email,
			}
		}
	}

	if err := s.repo.Store.Delete(ctx, store.ID); err != nil {
		s.log.Error("Failed to delete store", zap.Error(err), zap.String("store_id", id.String()))
		return nil, err
	}

	s.log.Info("Store deleted by admin",
		zap.String("store_id", id.String()),
		zap.Int64("ratings_deleted", ratingCount))

	return &response.DeleteStoreResponse{
		Message:      "Store deleted successfully",
		DeletedStore: deleted,
	}, nil
}

func (s *adminService) ListStores(ctx context.Context, params repository.ListStoresParams) ([]response.AdminStoreResponse, error) {
	rows, err := s.repo.Store.List(ctx, params)
	if err != nil {
		s.log.Error("Failed to list stores", zap.Error(err))
		return nil, err
	}

	stores := make([]response.AdminStoreResponse, 0, len(rows))
	for _, row := range rows {
		stores = append(stores, response.AdminStoreToResponse(row))
	}

	return stores, nil
}
