package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/users/users/dto"
	"sekolahku_backend/internals/features/users/users/repository"
	helper "sekolahku_backend/internals/helpers"
)

func newSvc() (*Service, *repository.MemoryRepository) {
	repo := repository.NewMemory()
	svc := New(repo)
	svc.Cost = bcrypt.MinCost
	return svc, repo
}

func kindOf(t *testing.T, err error) helper.ErrorKind {
	t.Helper()
	var ae *helper.AppError
	require.True(t, errors.As(err, &ae), "error bukan AppError: %v", err)
	return ae.Kind
}

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestCreateUser(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	u, err := svc.Create(ctx, dto.CreateUserRequest{Username: " Guru01 ", Password: "rahasia123", Role: "ADMIN", Email: strp(" Guru@Sekolah.sch.id ")})
	require.NoError(t, err)
	assert.Equal(t, "guru01", u.Username)
	assert.Equal(t, constants.RoleAdmin, u.Role)
	assert.Equal(t, "guru@sekolah.sch.id", *u.Email)
	assert.True(t, u.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("rahasia123")))

	_, err = svc.Create(ctx, dto.CreateUserRequest{Username: "guru01", Password: "rahasia123", Role: "admin"})
	assert.Equal(t, helper.KindConflict, kindOf(t, err))

	_, err = svc.Create(ctx, dto.CreateUserRequest{Username: "x", Password: "pendek", Role: "guru"})
	assert.Equal(t, helper.KindValidation, kindOf(t, err))
}

func TestUpdateUserHashesPassword(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	u, err := svc.Create(ctx, dto.CreateUserRequest{Username: "staf", Password: "rahasia123", Role: "admin"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, u.ID, dto.UpdateUserRequest{Password: strp("baru-12345"), FullName: strp(" Staf TU ")})
	require.NoError(t, err)
	assert.Equal(t, "Staf TU", *got.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("baru-12345")))

	_, err = svc.Update(ctx, uuid.New(), dto.UpdateUserRequest{FullName: strp("x")})
	assert.Equal(t, helper.KindNotFound, kindOf(t, err))
}

func TestLastSuperadminProtected(t *testing.T) {
	svc, repo := newSvc()
	ctx := context.Background()
	root, err := svc.Create(ctx, dto.CreateUserRequest{Username: "root", Password: "rahasia123", Role: "superadmin"})
	require.NoError(t, err)
	admin, err := svc.Create(ctx, dto.CreateUserRequest{Username: "admin1", Password: "rahasia123", Role: "admin"})
	require.NoError(t, err)

	err = svc.Delete(ctx, admin.ID, root.ID)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))

	_, err = svc.Update(ctx, root.ID, dto.UpdateUserRequest{Role: strp("admin")})
	assert.Equal(t, helper.KindValidation, kindOf(t, err), "demote superadmin terakhir")

	_, err = svc.Update(ctx, root.ID, dto.UpdateUserRequest{IsActive: boolp(false)})
	assert.Equal(t, helper.KindValidation, kindOf(t, err), "nonaktifkan superadmin terakhir")

	// setelah ada superadmin kedua, yang pertama boleh dihapus
	second, err := svc.Create(ctx, dto.CreateUserRequest{Username: "root2", Password: "rahasia123", Role: "superadmin"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, second.ID, root.ID))
	_, err = repo.FindByID(ctx, root.ID)
	assert.Error(t, err)
}

func TestDeleteSelfRejected(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	u, err := svc.Create(ctx, dto.CreateUserRequest{Username: "admin1", Password: "rahasia123", Role: "admin"})
	require.NoError(t, err)

	err = svc.Delete(ctx, u.ID, u.ID)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))

	err = svc.Delete(ctx, u.ID, uuid.New())
	assert.Equal(t, helper.KindNotFound, kindOf(t, err))
}

func TestEnsureSuperadminIdempotent(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	created, err := svc.EnsureSuperadmin(ctx, " Root ", "rahasia123", "root@sekolah.sch.id")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureSuperadmin(ctx, "root", "password-lain", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureSuperadmin(ctx, "", "", "")
	require.NoError(t, err)
	assert.False(t, created, "env kosong dilewati")

	rows, total, err := svc.List(ctx, "", helper.Paging{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, constants.RoleSuperadmin, rows[0].Role)
}

func TestResetPassword(t *testing.T) {
	svc, repo := newSvc()
	ctx := context.Background()
	_, err := svc.Create(ctx, dto.CreateUserRequest{Username: "admin1", Password: "rahasia123", Role: "admin"})
	require.NoError(t, err)

	assert.Equal(t, helper.KindValidation, kindOf(t, svc.ResetPassword(ctx, "admin1", "pendek")))
	assert.Equal(t, helper.KindNotFound, kindOf(t, svc.ResetPassword(ctx, "tidakada", "rahasia-baru")))

	require.NoError(t, svc.ResetPassword(ctx, "ADMIN1", "rahasia-baru"))
	u, err := repo.FindByUsername(ctx, "admin1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("rahasia-baru")))
}
