package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/notablehq/notable-backend/internal/dto"
	"github.com/notablehq/notable-backend/internal/models"
	"github.com/notablehq/notable-backend/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Create(&dto.SignupRequest{
		Email:    "alice@example.com",
		Password: "password123",
		FullName: strPtr("Alice"),
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, "password123", user.HashedPassword)

	ok, err := security.VerifyPassword("password123", user.HashedPassword)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUserValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "taken@example.com", "password123")

	tests := []struct {
		name    string
		req     dto.SignupRequest
		wantErr error
	}{
		{"duplicate email", dto.SignupRequest{Email: "taken@example.com", Password: "password123"}, ErrEmailTaken},
		{"bad email", dto.SignupRequest{Email: "not-an-email", Password: "password123"}, ErrInvalidEmail},
		{"short password", dto.SignupRequest{Email: "new@example.com", Password: "short"}, ErrWeakPassword},
		{"long password", dto.SignupRequest{Email: "new@example.com", Password: string(make([]byte, 41))}, ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(&tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "alice@example.com", "password123")

	updated, err := svc.UpdateProfile(user, &dto.UpdateMeRequest{
		FullName: strPtr("Alice A."),
		Phone:    strPtr("+1-555-0100"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.FullName)
	assert.Equal(t, "Alice A.", *updated.FullName)
	assert.Equal(t, "alice@example.com", updated.Email, "email unchanged when not sent")
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "alice@example.com", "password123")
	createTestUser(t, db, "bob@example.com", "password123")

	_, err := svc.UpdateProfile(user, &dto.UpdateMeRequest{Email: strPtr("bob@example.com")})
	assert.ErrorIs(t, err, ErrEmailConflict)
}

func TestAdminUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "alice@example.com", "password123")

	updated, err := svc.AdminUpdate(user.ID, &dto.AdminUpdateUserRequest{
		IsActive:    boolPtr(false),
		IsSuperuser: boolPtr(true),
		Password:    strPtr("new-password-42"),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.True(t, updated.IsSuperuser)

	ok, err := security.VerifyPassword("new-password-42", updated.HashedPassword)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdminUpdateEmailConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "alice@example.com", "password123")
	createTestUser(t, db, "bob@example.com", "password123")

	_, err := svc.AdminUpdate(user.ID, &dto.AdminUpdateUserRequest{Email: strPtr("bob@example.com")})
	assert.ErrorIs(t, err, ErrEmailConflict)

	// Re-sending your own email is not a conflict
	_, err = svc.AdminUpdate(user.ID, &dto.AdminUpdateUserRequest{Email: strPtr("alice@example.com")})
	assert.NoError(t, err)
}

func TestAdminUpdateMissingUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.AdminUpdate(uuid.New(), &dto.AdminUpdateUserRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "alice@example.com", "password123")

	err := svc.UpdatePassword(user, &dto.UpdatePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "new-password-42",
	})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	err = svc.UpdatePassword(user, &dto.UpdatePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "new-password-42",
	})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	ok, err := security.VerifyPassword("new-password-42", stored.HashedPassword)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	admin := createTestUser(t, db, "admin@example.com", "password123")
	makeSuperuser(t, db, admin.ID)
	admin.IsSuperuser = true
	assert.ErrorIs(t, svc.DeleteSelf(admin), ErrSuperuserDelete)

	user := createTestUser(t, db, "alice@example.com", "password123")
	note, err := NewNoteService(db).Create(user.ID, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSelf(user))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Note{}).Where("id = ?", note.ID).Count(&count).Error)
	assert.Zero(t, count, "owned notes are removed with the account")
}

func TestDeleteSelfRollsBackOnChildFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user := createTestUser(t, db, "alice@example.com", "password123")
	note, err := NewNoteService(db).Create(user.ID, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	// Make the settings cleanup fail mid-transaction
	require.NoError(t, db.Migrator().DropTable(&models.UserSetting{}))

	require.Error(t, svc.DeleteSelf(user))

	// Nothing from the aborted transaction sticks
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&models.Note{}).Where("id = ?", note.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAdminDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := createTestUser(t, db, "admin@example.com", "password123")
	makeSuperuser(t, db, admin.ID)
	user := createTestUser(t, db, "alice@example.com", "password123")

	assert.ErrorIs(t, svc.AdminDelete(admin, admin.ID), ErrAdminSelfDelete)
	assert.ErrorIs(t, svc.AdminDelete(admin, uuid.New()), ErrUserNotFound)
	require.NoError(t, svc.AdminDelete(admin, user.ID))
}

func TestListUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "a@example.com", "password123")
	createTestUser(t, db, "b@example.com", "password123")
	createTestUser(t, db, "c@example.com", "password123")

	users, count, err := svc.List(0, 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.EqualValues(t, 3, count)

	users, count, err = svc.List(2, 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.EqualValues(t, 3, count)
}

func boolPtr(b bool) *bool { return &b }
