package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Role determines which resources a user may read and write.
type Role string

const (
	RoleAdmin    Role = "admin"    // Platform operator, may manage plans and any tenant
	RoleManager  Role = "manager"  // Síndico, scoped to one matricula
	RoleResident Role = "resident" // Read-only subset, scoped to one matricula
)

// User is a login identity.
type User struct {
	DefaultModel
	Email        string `json:"email" gorm:"uniqueIndex" example:"sindico@example.com"`
	Nome         string `json:"nome" example:"João Pereira"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role" example:"manager"`
	Matricula    string `json:"matricula" gorm:"index" example:"12345678100"` // Blank for platform admins
}

// BeforeSave trims and lowercases the email address.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Nome = strings.TrimSpace(u.Nome)

	return nil
}

// SetPassword stores the bcrypt hash of the password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UserByEmail returns the user with the given email address.
func UserByEmail(db *gorm.DB, email string) (User, error) {
	var user User
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	return user, err
}
