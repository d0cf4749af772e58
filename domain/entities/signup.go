package entities

import (
	"fmt"
	"time"
)

// SignupFormData represents the fields of the signup form
type SignupFormData struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"-"`
	ConfirmPassword string `json:"-"`
}

// UserProfile represents what the account page shows for a user
type UserProfile struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

const defaultTestPassword = "TestPassword123!"

// GenerateTestUserData - creates unique signup data so repeated runs
// never collide on the email address
func GenerateTestUserData() SignupFormData {
	return GenerateTestUserDataAt(time.Now())
}

// GenerateTestUserDataAt is GenerateTestUserData with a fixed clock.
func GenerateTestUserDataAt(now time.Time) SignupFormData {
	stamp := now.UnixMilli()
	return SignupFormData{
		Name:            fmt.Sprintf("Test User %d", stamp),
		Email:           fmt.Sprintf("testuser_%d@example.com", stamp),
		Password:        defaultTestPassword,
		ConfirmPassword: defaultTestPassword,
	}
}
