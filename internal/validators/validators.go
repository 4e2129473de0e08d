// Package validators holds the input checks shared by the profile, space and
// auth services.
package validators

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"gorm.io/gorm"
)

// MinTextLength is the shortest accepted soil type and location.
const MinTextLength = 3

var nonDigit = regexp.MustCompile(`\D`)

// ValidateFarmer checks a farmer's land handling capacity.
func ValidateFarmer(landHandlingCapacity int) error {
	if landHandlingCapacity <= 0 {
		return apperr.Validation("Land handling capacity must be a positive integer")
	}
	return nil
}

// ValidateLandlord checks the landlord fields that carry rules.
func ValidateLandlord(soilType string, landInAcres int, location string, imagesList []string) error {
	if textLength(soilType) < MinTextLength {
		return apperr.Validation("Soil type must be at least %d characters long", MinTextLength)
	}
	if landInAcres <= 0 {
		return apperr.Validation("Land in acres must be a positive integer")
	}
	if textLength(location) < MinTextLength {
		return apperr.Validation("Location must be at least %d characters long", MinTextLength)
	}
	for i, img := range imagesList {
		if strings.TrimSpace(img) == "" {
			return apperr.Validation("Image at position %d must be a non-empty string", i)
		}
	}
	return nil
}

// textLength counts characters, not bytes, after trimming.
func textLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// ValidateLocations rejects blank entries in a preferred location list.
func ValidateLocations(locations []string) error {
	for i, loc := range locations {
		if strings.TrimSpace(loc) == "" {
			return apperr.Validation("Preferred location at position %d cannot be empty", i)
		}
	}
	return nil
}

// NormalizePhone strips formatting and a leading 91 country code and
// returns the 10 digit number. Empty input is allowed and returns "".
func NormalizePhone(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", nil
	}
	digits := nonDigit.ReplaceAllString(phone, "")
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if len(digits) != 10 {
		return "", apperr.Validation("Phone number must have 10 digits")
	}
	return digits, nil
}

// IsEmailRegistered reports whether a user with this email exists.
func IsEmailRegistered(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("users").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// IsAdmin reports whether the user with this email holds the admin role.
func IsAdmin(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("users").
		Where("LOWER(email) = ? AND role = ?", strings.ToLower(strings.TrimSpace(email)), "admin").
		Count(&count).Error
	return count > 0, err
}
