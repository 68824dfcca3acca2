package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validClientDraft() ClientDraft {
	return ClientDraft{
		Name:           "Мария Петрова",
		Phone:          "+79991234567",
		Username:       "maria",
		Password:       "maria123",
		SubscriptionID: primitive.NewObjectID(),
	}
}

func TestValidateAccount_NormalizesName(t *testing.T) {
	t.Parallel()

	name := "  Иван   Иванов  "
	err := validateAccount(&name, "ivan", "ivan123", "client", true)
	require.NoError(t, err)
	assert.Equal(t, "Иван Иванов", name)
}

func TestValidateAccount_NameRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		name  string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"too short", "И"},
		{"digits rejected", "John123"},
		{"punctuation rejected", "John_Smith"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			name := tt.name
			err := validateAccount(&name, "ivan", "ivan123", "client", true)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}

	// Hyphens and mixed scripts are allowed.
	name := "Anna-Maria Смирнова"
	require.NoError(t, validateAccount(&name, "anna", "anna123", "client", true))
}

func TestValidateAccount_UsernameRules(t *testing.T) {
	t.Parallel()

	for _, username := range []string{"", "  ", "ab", "though_this_one_is_way_too_long", "bad name", "юзер"} {
		name := "Иван Иванов"
		err := validateAccount(&name, username, "ivan123", "client", true)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "username %q should be rejected", username)
	}

	name := "Иван Иванов"
	require.NoError(t, validateAccount(&name, "ivan_123", "ivan123", "client", true))
}

func TestValidateAccount_PasswordRequiredOnlyWhenNew(t *testing.T) {
	t.Parallel()

	name := "Иван Иванов"
	err := validateAccount(&name, "ivan", "", "client", true)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	err = validateAccount(&name, "ivan", "12345", "client", true)
	require.ErrorAs(t, err, &vErr)

	// On update an absent password means "keep the existing hash".
	require.NoError(t, validateAccount(&name, "ivan", "", "client", false))
}

func TestValidateClientDraft_Phone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phone string
		ok    bool
	}{
		{"+79991234567", true},
		{"89991234567", false},
		{"+7999123456", false},   // 9 digits
		{"+799912345678", false}, // 11 digits
		{"", false},
	}
	for _, tt := range tests {
		draft := validClientDraft()
		draft.Phone = tt.phone
		err := validateClientDraft(&draft, true)
		if tt.ok {
			assert.NoError(t, err, "phone %q", tt.phone)
		} else {
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr, "phone %q", tt.phone)
		}
	}
}

func TestValidateClientDraft_SubscriptionRequired(t *testing.T) {
	t.Parallel()

	draft := validClientDraft()
	draft.SubscriptionID = primitive.NilObjectID
	err := validateClientDraft(&draft, true)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "a subscription must be selected", vErr.Message)
}

func TestValidateClientDraft_ChecksNameFirst(t *testing.T) {
	t.Parallel()

	// Every field is invalid; the name violation must win.
	draft := ClientDraft{Name: "", Phone: "bad", Username: "!", Password: ""}
	err := validateClientDraft(&draft, true)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name cannot be empty", vErr.Message)
}

func TestValidateTrainerDraft(t *testing.T) {
	t.Parallel()

	draft := TrainerDraft{Name: "  Пётр   Сидоров ", Username: "petr", Password: "petr123"}
	require.NoError(t, validateTrainerDraft(&draft, true))
	assert.Equal(t, "Пётр Сидоров", draft.Name)

	draft = TrainerDraft{Name: "Пётр Сидоров", Username: "petr", Password: ""}
	err := validateTrainerDraft(&draft, true)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}
