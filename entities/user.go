package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleSupervisor Role = "supervisor"
	RoleMember     Role = "member"
)

// Valid reports whether r is one of the known account categories.
func (r Role) Valid() bool {
	switch r {
	case RoleSupervisor, RoleMember:
		return true
	}
	return false
}

// User represents an account. Password holds the bcrypt hash and is never
// serialized to JSON.
type User struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	FullName    string    `gorm:"not null" json:"fullName"`
	Email       string    `gorm:"uniqueIndex:idx_users_email;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Role        Role      `gorm:"type:varchar(32);not null" json:"role"`
	CompanyName string    `json:"companyName"`
	ProfilePic  string    `json:"profilePic"`
	Profession  string    `json:"profession"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// CompanyKey is the case-folded company name used for the one-supervisor-per-company rule.
func (u *User) CompanyKey() string {
	return CompanyKey(u.CompanyName)
}

func CompanyKey(companyName string) string {
	return strings.ToLower(companyName)
}
