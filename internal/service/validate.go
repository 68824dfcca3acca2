package service

import (
	"regexp"
	"strings"
)

var (
	nameCharsPattern = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ\s-]+$`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	usernamePattern  = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	phonePattern     = regexp.MustCompile(`^\+7\d{10}$`)
)

// validateAccount checks the fields shared by client and trainer drafts, in
// a fixed order: name, username, password. The name is normalized in place
// (trimmed, internal whitespace runs collapsed to single spaces). The
// password is only required on creation; on update an absent password means
// "keep the existing hash" and is not checked at all.
//
// entityKind is used in error messages only ("client", "trainer").
func validateAccount(name *string, username, password, entityKind string, isNew bool) error {
	if strings.TrimSpace(*name) == "" {
		return validationErrorf("name cannot be empty")
	}
	cleaned := whitespaceRuns.ReplaceAllString(strings.TrimSpace(*name), " ")
	if len([]rune(cleaned)) < 2 || len([]rune(cleaned)) > 50 {
		return validationErrorf("name must contain between 2 and 50 characters")
	}
	if !nameCharsPattern.MatchString(cleaned) {
		return validationErrorf("name may only contain letters, spaces and hyphens")
	}
	*name = cleaned

	if strings.TrimSpace(username) == "" {
		return validationErrorf("username cannot be empty")
	}
	if !usernamePattern.MatchString(username) {
		return validationErrorf("username must contain 3-20 characters (letters, digits, underscore)")
	}

	if isNew {
		if strings.TrimSpace(password) == "" {
			return validationErrorf("password cannot be empty when creating a %s", entityKind)
		}
		if len(password) < 6 {
			return validationErrorf("password must contain at least 6 characters")
		}
	}

	return nil
}

// validateClientDraft runs the shared account checks and then the
// client-specific ones: phone format and subscription presence.
func validateClientDraft(draft *ClientDraft, isNew bool) error {
	if err := validateAccount(&draft.Name, draft.Username, draft.Password, "client", isNew); err != nil {
		return err
	}
	if !phonePattern.MatchString(draft.Phone) {
		return validationErrorf("phone number must start with +7 followed by 10 digits")
	}
	if draft.SubscriptionID.IsZero() {
		return validationErrorf("a subscription must be selected")
	}
	return nil
}

// validateTrainerDraft runs the shared account checks for a trainer draft.
func validateTrainerDraft(draft *TrainerDraft, isNew bool) error {
	return validateAccount(&draft.Name, draft.Username, draft.Password, "trainer", isNew)
}
