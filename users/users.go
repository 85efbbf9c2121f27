package users

import (
	"fmt"
	"time"

	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a user's role on the blog platform
type RoleType string

const (
	RoleUser  RoleType = "user"  // Regular user, can manage their own posts
	RoleAdmin RoleType = "admin" // Can manage any post and any user
)

// User is the profile of a registered blog user. The JSON field names match
// the wire format of the auth endpoints (firstname/lastname, not snake_case).
type User struct {
	ID           string    `json:"id,omitempty"`        // Unique identifier for the user
	Email        string    `json:"email,omitempty"`     // User's email address
	PasswordHash string    `json:"-"`                   // Hashed version of the user's password - never serialize
	FirstName    string    `json:"firstname,omitempty"` // First name of the user
	LastName     string    `json:"lastname,omitempty"`  // Last name of the user
	Role         RoleType  `json:"role,omitempty"`      // Role of the user
	CreatedAt    time.Time `json:"createdAt,omitempty"` // Date and time when the user registered
	UpdatedAt    time.Time `json:"updatedAt,omitempty"` // Last time the profile was modified
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin returns true if the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
