package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"type:varchar(30)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(30)" json:"last_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsSuperuser  bool      `gorm:"default:false" json:"is_superuser"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Roles []Role `gorm:"many2many:user_roles;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// UserProfile links a user to its organization. Unlike other entities the
// organization reference is required; a user without a profile (or whose
// profile points at a missing organization) resolves to the empty tenant.
type UserProfile struct {
	ID             string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID         string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	User           *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	OrganizationID string        `gorm:"type:varchar(36);not null;index" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	Rut            *string       `gorm:"type:varchar(12);uniqueIndex" json:"rut,omitempty"`
	Telefono       string        `gorm:"type:varchar(20)" json:"telefono"`
	Direccion      string        `gorm:"type:text" json:"direccion"`
	ProfileImage   string        `gorm:"type:varchar(255)" json:"profile_image"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
