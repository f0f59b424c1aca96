package usecases

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"regexp"
	"strings"

	"monitoreo-server/db"
	"monitoreo-server/entities"
	"monitoreo-server/repositories"

	"gorm.io/gorm"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	rutPattern   = regexp.MustCompile(`^\d{1,8}-[0-9kK]$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)
)

const maxProfileImageBytes = 5 * 1024 * 1024

// AccountUseCase handles registration, authentication and profile edits.
type AccountUseCase struct {
	db    db.Database
	users repositories.UserRepository
}

func NewAccountUseCase(database db.Database, users repositories.UserRepository) *AccountUseCase {
	return &AccountUseCase{db: database, users: users}
}

// HashPassword creates a SHA-256 hash of the password.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// RegisterInput creates a user together with its organization; the two are
// born in the same transaction so a half-registered account can never be
// observed.
type RegisterInput struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	OrganizationName  string `json:"organization_name"`
	OrganizationEmail string `json:"organization_email"`
}

func (uc *AccountUseCase) Register(input RegisterInput) (*entities.User, error) {
	if !emailPattern.MatchString(input.Email) {
		return nil, validationErrorf("invalid email address")
	}
	if !emailPattern.MatchString(input.OrganizationEmail) {
		return nil, validationErrorf("invalid organization email address")
	}
	if input.OrganizationName == "" {
		return nil, validationErrorf("organization name is required")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        input.Email,
		PasswordHash: HashPassword(input.Password),
	}
	err := uc.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		org := &entities.Organization{
			Name:  input.OrganizationName,
			Email: input.OrganizationEmail,
		}
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		profile := &entities.UserProfile{
			UserID:         user.ID,
			OrganizationID: org.ID,
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// Authenticate checks email and password. Both failure modes produce the
// same error so callers cannot distinguish unknown accounts.
func (uc *AccountUseCase) Authenticate(email, password string) (*entities.User, error) {
	user, err := uc.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}
	if user.PasswordHash != HashPassword(password) {
		return nil, ErrPermissionDenied
	}
	return user, nil
}

// GetUser loads a user by id, for session resolution.
func (uc *AccountUseCase) GetUser(id string) (*entities.User, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (uc *AccountUseCase) ChangePassword(user *entities.User, oldPassword, newPassword, confirm string) error {
	if user.PasswordHash != HashPassword(oldPassword) {
		return validationErrorf("current password is incorrect")
	}
	if newPassword != confirm {
		return validationErrorf("new passwords do not match")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	user.PasswordHash = HashPassword(newPassword)
	return uc.users.Update(user)
}

// RequestPasswordReset acknowledges the request without revealing whether
// the account exists. Mail delivery is a collaborator concern.
func (uc *AccountUseCase) RequestPasswordReset(email string) error {
	if !emailPattern.MatchString(email) {
		return validationErrorf("invalid email address")
	}
	return nil
}

func (uc *AccountUseCase) GetProfile(user *entities.User) (*entities.UserProfile, error) {
	profile, err := uc.users.GetProfileByUserID(user.ID)
	if err != nil {
		return nil, translate(err)
	}
	return profile, nil
}

// ImageMeta describes an uploaded profile image; the bytes themselves are
// stored by the collaborator, only the constraints are checked here.
type ImageMeta struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Rut       *string    `json:"rut"`
	Telefono  string     `json:"telefono"`
	Direccion string     `json:"direccion"`
	Image     *ImageMeta `json:"image"`
}

func (uc *AccountUseCase) UpdateProfile(user *entities.User, input ProfileInput) (*entities.UserProfile, error) {
	if input.Email != "" && !emailPattern.MatchString(input.Email) {
		return nil, validationErrorf("invalid email address")
	}
	if input.Rut != nil && *input.Rut != "" && !rutPattern.MatchString(*input.Rut) {
		return nil, validationErrorf("invalid RUT format, use XXXXXXXX-X")
	}
	if input.Telefono != "" && !phonePattern.MatchString(input.Telefono) {
		return nil, validationErrorf("invalid phone number format")
	}
	if input.Image != nil {
		if err := validateProfileImage(input.Image); err != nil {
			return nil, err
		}
	}

	profile, err := uc.users.GetProfileByUserID(user.ID)
	if err != nil {
		return nil, translate(err)
	}

	err = uc.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if input.FirstName != "" {
			user.FirstName = input.FirstName
		}
		if input.LastName != "" {
			user.LastName = input.LastName
		}
		if input.Email != "" {
			user.Email = input.Email
		}
		if err := tx.Save(user).Error; err != nil {
			return err
		}

		if input.Rut != nil {
			profile.Rut = input.Rut
		}
		if input.Telefono != "" {
			profile.Telefono = input.Telefono
		}
		if input.Direccion != "" {
			profile.Direccion = input.Direccion
		}
		if input.Image != nil {
			profile.ProfileImage = input.Image.Filename
		}
		return tx.Save(profile).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return profile, nil
}

func validateProfileImage(image *ImageMeta) error {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(image.Filename), "."))
	switch ext {
	case "jpg", "jpeg", "png":
	default:
		return validationErrorf("unsupported image extension %q", ext)
	}
	if image.Size > maxProfileImageBytes {
		return validationErrorf("image file too large (> 5MB)")
	}
	if image.Width > 1000 || image.Height > 1000 {
		return validationErrorf("image dimensions too large (max 1000x1000)")
	}
	return nil
}

// validatePassword applies the complexity rules: at least 8 characters,
// one uppercase, one lowercase, one digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return validationErrorf("password must be at least 8 characters long")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper {
		return validationErrorf("password must contain at least one uppercase letter")
	}
	if !lower {
		return validationErrorf("password must contain at least one lowercase letter")
	}
	if !digit {
		return validationErrorf("password must contain at least one number")
	}
	return nil
}
