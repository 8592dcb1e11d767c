package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"store-rating/internal/data/entity"
	"store-rating/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes mirroring the constraints of schema.sql:
// unique email and owner_id on users, unique email and owner reference on
// stores, composite-unique upsert on ratings.

type ratingKey struct {
	userID  uuid.UUID
	storeID uuid.UUID
}

type fixture struct {
	users   *fakeUserRepo
	stores  *fakeStoreRepo
	ratings *fakeRatingRepo
	repo    *repository.Repository
}

func newFixture() *fixture {
	f := &fixture{
		users:   &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		stores:  &fakeStoreRepo{stores: map[uuid.UUID]*entity.Store{}},
		ratings: &fakeRatingRepo{ratings: map[ratingKey]*entity.Rating{}},
	}
	f.stores.ratings = f.ratings
	f.ratings.stores = f.stores
	f.ratings.users = f.users
	f.repo = &repository.Repository{
		User:   f.users,
		Store:  f.stores,
		Rating: f.ratings,
	}
	return f
}

// ---------------- users ----------------

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
		if u.OwnerID != nil && user.OwnerID != nil && *u.OwnerID == *user.OwnerID {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByOwnerCode(_ context.Context, ownerCode string) (*entity.User, error) {
	for _, u := range f.users {
		if u.OwnerID != nil && *u.OwnerID == ownerCode {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindOwners(_ context.Context) ([]*entity.User, error) {
	var owners []*entity.User
	for _, u := range f.users {
		if u.Role == entity.RoleOwner {
			cp := *u
			owners = append(owners, &cp)
		}
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].Name < owners[j].Name })
	return owners, nil
}

func (f *fakeUserRepo) List(_ context.Context, params repository.ListUsersParams) ([]*entity.User, error) {
	var users []*entity.User
	for _, u := range f.users {
		if params.Role != "" && string(u.Role) != params.Role {
			continue
		}
		if params.Query != "" {
			q := strings.ToLower(params.Query)
			addr := ""
			if u.Address != nil {
				addr = *u.Address
			}
			if !strings.Contains(strings.ToLower(u.Name), q) &&
				!strings.Contains(strings.ToLower(u.Email), q) &&
				!strings.Contains(strings.ToLower(addr), q) {
				continue
			}
		}
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role entity.UserRole) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdateOwnerCode(_ context.Context, id uuid.UUID, ownerCode string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	for otherID, other := range f.users {
		if otherID != id && other.OwnerID != nil && *other.OwnerID == ownerCode {
			return repository.ErrDuplicate
		}
	}
	u.OwnerID = &ownerCode
	return nil
}

// ---------------- stores ----------------

type fakeStoreRepo struct {
	stores  map[uuid.UUID]*entity.Store
	ratings *fakeRatingRepo
}

func (f *fakeStoreRepo) Create(_ context.Context, store *entity.Store) error {
	for _, s := range f.stores {
		if s.Email == store.Email {
			return repository.ErrDuplicate
		}
		if s.OwnerID != nil && store.OwnerID != nil && *s.OwnerID == *store.OwnerID {
			return repository.ErrDuplicate
		}
	}
	cp := *store
	f.stores[store.ID] = &cp
	return nil
}

func (f *fakeStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Store, error) {
	if s, ok := f.stores[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStoreRepo) FindByOwner(_ context.Context, ownerUserID uuid.UUID) (*entity.Store, error) {
	for _, s := range f.stores {
		if s.OwnerID != nil && *s.OwnerID == ownerUserID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreRepo) ListPublic(_ context.Context, search string, userID *uuid.UUID) ([]*repository.StoreListRow, error) {
	var rows []*repository.StoreListRow
	for _, s := range f.stores {
		if search != "" {
			q := strings.ToLower(search)
			addr := ""
			if s.Address != nil {
				addr = *s.Address
			}
			if !strings.Contains(strings.ToLower(s.Name), q) &&
				!strings.Contains(strings.ToLower(addr), q) {
				continue
			}
		}
		row := &repository.StoreListRow{
			ID:        s.ID,
			Name:      s.Name,
			Email:     s.Email,
			Address:   s.Address,
			AvgRating: f.ratings.averageForStore(s.ID),
		}
		if userID != nil {
			if r, ok := f.ratings.ratings[ratingKey{userID: *userID, storeID: s.ID}]; ok {
				value := r.Rating
				row.UserRating = &value
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (f *fakeStoreRepo) List(_ context.Context, params repository.ListStoresParams) ([]*repository.StoreRatingRow, error) {
	var rows []*repository.StoreRatingRow
	for _, s := range f.stores {
		if params.Query != "" {
			q := strings.ToLower(params.Query)
			addr := ""
			if s.Address != nil {
				addr = *s.Address
			}
			if !strings.Contains(strings.ToLower(s.Name), q) &&
				!strings.Contains(strings.ToLower(s.Email), q) &&
				!strings.Contains(strings.ToLower(addr), q) {
				continue
			}
		}
		rows = append(rows, &repository.StoreRatingRow{
			Store:     *s,
			AvgRating: f.ratings.averageForStore(s.ID),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (f *fakeStoreRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.stores)), nil
}

func (f *fakeStoreRepo) Update(_ context.Context, store *entity.Store) error {
	if _, ok := f.stores[store.ID]; !ok {
		return fmt.Errorf("store %s not found", store.ID.String())
	}
	for id, s := range f.stores {
		if id != store.ID && s.Email == store.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *store
	f.stores[store.ID] = &cp
	return nil
}

func (f *fakeStoreRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.stores[id]; !ok {
		return fmt.Errorf("store %s not found", id.String())
	}
	delete(f.stores, id)
	// ON DELETE CASCADE
	for key := range f.ratings.ratings {
		if key.storeID == id {
			delete(f.ratings.ratings, key)
		}
	}
	return nil
}

// ---------------- ratings ----------------

type fakeRatingRepo struct {
	ratings map[ratingKey]*entity.Rating
	stores  *fakeStoreRepo
	users   *fakeUserRepo
}

func (f *fakeRatingRepo) averageForStore(storeID uuid.UUID) float64 {
	var sum, count int
	for key, r := range f.ratings {
		if key.storeID == storeID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *entity.Rating) error {
	key := ratingKey{userID: rating.UserID, storeID: rating.StoreID}
	if existing, ok := f.ratings[key]; ok {
		// last write wins, identity of the row is preserved
		existing.Rating = rating.Rating
		return nil
	}
	cp := *rating
	f.ratings[key] = &cp
	return nil
}

func (f *fakeRatingRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*repository.UserRatingRow, error) {
	var rows []*repository.UserRatingRow
	for key, r := range f.ratings {
		if key.userID != userID {
			continue
		}
		store := f.stores.stores[key.storeID]
		rows = append(rows, &repository.UserRatingRow{
			ID:           r.ID,
			StoreID:      r.StoreID,
			Rating:       r.Rating,
			CreatedAt:    r.CreatedAt,
			StoreName:    store.Name,
			StoreAddress: store.Address,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (f *fakeRatingRepo) RatersByStore(_ context.Context, storeID uuid.UUID) ([]*repository.RaterRow, error) {
	var rows []*repository.RaterRow
	for key, r := range f.ratings {
		if key.storeID != storeID {
			continue
		}
		row := &repository.RaterRow{
			RatingID: r.ID,
			Rating:   r.Rating,
			UserID:   r.UserID,
		}
		if u, ok := f.users.users[r.UserID]; ok {
			row.Name = u.Name
			row.Email = u.Email
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (f *fakeRatingRepo) CountByStore(_ context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	for key := range f.ratings {
		if key.storeID == storeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRatingRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.ratings)), nil
}

func (f *fakeRatingRepo) AverageByOwner(_ context.Context, ownerUserID uuid.UUID) (float64, error) {
	for _, s := range f.stores.stores {
		if s.OwnerID != nil && *s.OwnerID == ownerUserID {
			return f.averageForStore(s.ID), nil
		}
	}
	return 0, nil
}
