package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// UserRoleRepository defines the interface for role assignments
type UserRoleRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserRole, error)
	Create(ctx context.Context, role *models.UserRole) error
	UpdateRole(ctx context.Context, userID, role string) error
	List(ctx context.Context, query *ListQuery) ([]models.UserRole, int64, error)
}

type userRoleRepository struct {
	db *gorm.DB
}

// NewUserRoleRepository creates a new user role repository
func NewUserRoleRepository(db *gorm.DB) UserRoleRepository {
	return &userRoleRepository{db: db}
}

func (r *userRoleRepository) FindByUserID(ctx context.Context, userID string) (*models.UserRole, error) {
	var role models.UserRole
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *userRoleRepository) Create(ctx context.Context, role *models.UserRole) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		if isDuplicateKeyError(err, "") {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *userRoleRepository) UpdateRole(ctx context.Context, userID, role string) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRoleRepository) List(ctx context.Context, query *ListQuery) ([]models.UserRole, int64, error) {
	var roles []models.UserRole
	var total int64

	db := r.db.WithContext(ctx).Model(&models.UserRole{})

	if query.Search != "" {
		db = db.Where("user_id ILIKE ?", "%"+query.Search+"%")
	}
	if query.Filters["role"] != "" {
		db = db.Where("role = ?", query.Filters["role"])
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(db, query, map[string]bool{"created_at": true, "role": true}, "created_at DESC").Find(&roles).Error
	return roles, total, err
}
