package users_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-client/users"
)

func TestValidatePasswordStrength(t *testing.T) {
	t.Run("valid password", func(t *testing.T) {
		require.NoError(t, users.ValidatePasswordStrength("Password1"))
	})

	t.Run("too short", func(t *testing.T) {
		err := users.ValidatePasswordStrength("Pw1")
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("missing uppercase", func(t *testing.T) {
		err := users.ValidatePasswordStrength("password1")
		require.Error(t, err)
		require.Contains(t, err.Error(), "uppercase")
	})

	t.Run("missing lowercase", func(t *testing.T) {
		err := users.ValidatePasswordStrength("PASSWORD1")
		require.Error(t, err)
		require.Contains(t, err.Error(), "lowercase")
	})

	t.Run("missing number", func(t *testing.T) {
		err := users.ValidatePasswordStrength("Passwords")
		require.Error(t, err)
		require.Contains(t, err.Error(), "number")
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := users.HashPassword("Password1")
	require.NoError(t, err)

	require.True(t, users.CheckPasswordHash("Password1", hash))
	require.False(t, users.CheckPasswordHash("Password2", hash))
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	data, err := json.Marshal(&users.User{
		ID:           "1",
		Email:        "a@b.com",
		PasswordHash: "bcrypt-hash",
	})
	require.NoError(t, err)
	require.NotContains(t, string(data), "bcrypt-hash")
}

func TestUser_WireFieldNames(t *testing.T) {
	data, err := json.Marshal(&users.User{
		ID:        "1",
		FirstName: "A",
		LastName:  "B",
	})
	require.NoError(t, err)
	require.Contains(t, string(data), `"firstname":"A"`)
	require.Contains(t, string(data), `"lastname":"B"`)
}

func TestInMemoryRepo(t *testing.T) {
	repo := users.NewInMemoryRepo()

	user := &users.User{Email: "a@b.com", FirstName: "A", LastName: "B"}
	require.NoError(t, repo.Upsert(user))
	require.NotEmpty(t, user.ID) // ID assigned on insert

	byEmail, err := repo.GetByEmail("a@b.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", byID.Email)

	require.NoError(t, repo.Delete("a@b.com"))
	_, err = repo.GetByEmail("a@b.com")
	require.Error(t, err)
}
