package repositories

import (
	"monitoreo-server/db"
	"monitoreo-server/entities"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(user *entities.User) error {
	return r.db.GetDB().Create(user).Error
}

func (r *userPgRepository) GetByID(id string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) Update(user *entities.User) error {
	return r.db.GetDB().Save(user).Error
}

func (r *userPgRepository) CreateProfile(profile *entities.UserProfile) error {
	return r.db.GetDB().Create(profile).Error
}

func (r *userPgRepository) GetProfileByUserID(userID string) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	err := r.db.GetDB().Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userPgRepository) UpdateProfile(profile *entities.UserProfile) error {
	return r.db.GetDB().Save(profile).Error
}

func (r *userPgRepository) GetRoles(userID string) ([]entities.Role, error) {
	var roles []entities.Role
	err := r.db.GetDB().
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Find(&roles).Error
	return roles, err
}

func (r *userPgRepository) AssignRole(userID, roleName string) error {
	var role entities.Role
	if err := r.db.GetDB().Where("name = ?", roleName).First(&role).Error; err != nil {
		return err
	}
	user := entities.User{ID: userID}
	return r.db.GetDB().Model(&user).Association("Roles").Append(&role)
}

func (r *userPgRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.User{}).Count(&count).Error
	return count, err
}
