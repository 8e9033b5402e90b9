package services

import (
	"regexp"
	"strings"

	"usersvc/internal/models"
)

var (
	mobilePattern = regexp.MustCompile(`^\+?\d{10,12}$`)
	panPattern    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

const (
	msgFullNameRequired = "Full name is required."
	msgInvalidMobile    = "Invalid mobile number."
	msgInvalidPAN       = "Invalid PAN number."
)

// CreateUserRequest is the payload of a user creation.
type CreateUserRequest struct {
	FullName  string `json:"full_name"`
	MobNum    string `json:"mob_num"`
	PanNum    string `json:"pan_num"`
	ManagerID string `json:"manager_id"`
}

// ValidateNewUser checks a creation payload. The first failing field wins.
// A missing pan_num fails the PAN pattern like any other bad value.
func ValidateNewUser(req *CreateUserRequest) error {
	if req == nil || req.FullName == "" {
		return &ValidationError{Message: msgFullNameRequired}
	}
	if !mobilePattern.MatchString(req.MobNum) {
		return &ValidationError{Message: msgInvalidMobile}
	}
	if !panPattern.MatchString(strings.ToUpper(req.PanNum)) {
		return &ValidationError{Message: msgInvalidPAN}
	}
	return nil
}

// ValidateUserPatch applies the mobile and PAN checks to the fields that
// are present. full_name is not checked.
func ValidateUserPatch(patch *models.UserPatch) error {
	if patch == nil {
		return &ValidationError{Message: "update_data is required."}
	}
	if present(patch.MobNum) && !mobilePattern.MatchString(*patch.MobNum) {
		return &ValidationError{Message: msgInvalidMobile}
	}
	if present(patch.PanNum) && !panPattern.MatchString(strings.ToUpper(*patch.PanNum)) {
		return &ValidationError{Message: msgInvalidPAN}
	}
	return nil
}

func present(s *string) bool {
	return s != nil && *s != ""
}
