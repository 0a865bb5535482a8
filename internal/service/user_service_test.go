package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesklabs/helpdesk-api/internal/events"
	"github.com/helpdesklabs/helpdesk-api/internal/repository/repotest"
	"github.com/helpdesklabs/helpdesk-api/internal/service"
)

func newUserService(t *testing.T) (*service.UserService, *repotest.FakeUserRepo) {
	t.Helper()
	users := repotest.NewFakeUserRepo()
	return service.NewUserService(users, events.NewInMemoryDispatcher(nil)), users
}

func TestCreateUser(t *testing.T) {
	svc, _ := newUserService(t)

	role := "agent"
	user, err := svc.CreateUser(context.Background(), service.UserCreateInput{
		Name:  "Ana",
		Email: "ana@x.com",
		Role:  &role,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ana", user.Name)
	require.NotNil(t, user.Role)
	assert.Equal(t, "agent", *user.Role)
}

func TestCreateUserRequiresNameAndEmail(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.CreateUser(context.Background(), service.UserCreateInput{Name: "Ana"})
	require.Error(t, err)
	assert.Equal(t, 400, domainErrStatus(t, err))

	_, err = svc.CreateUser(context.Background(), service.UserCreateInput{Email: "ana@x.com"})
	require.Error(t, err)
	assert.Equal(t, 400, domainErrStatus(t, err))
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.CreateUser(context.Background(), service.UserCreateInput{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), service.UserCreateInput{Name: "Other", Email: "ana@x.com"})
	require.Error(t, err)
	assert.Equal(t, 409, domainErrStatus(t, err))
}

func TestUpdateUserPartial(t *testing.T) {
	svc, _ := newUserService(t)

	created, err := svc.CreateUser(context.Background(), service.UserCreateInput{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)

	email := "ana@y.com"
	updated, err := svc.UpdateUser(context.Background(), created.ID, service.UserUpdateInput{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "ana@y.com", updated.Email)
}

func TestUpdateUserMissingID(t *testing.T) {
	svc, _ := newUserService(t)

	name := "Nobody"
	_, err := svc.UpdateUser(context.Background(), "44444444-4444-4444-4444-444444444444", service.UserUpdateInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, 400, domainErrStatus(t, err))
}

func TestGetUserMissingIDIsNotFound(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.GetUser(context.Background(), "55555555-5555-5555-5555-555555555555")
	require.Error(t, err)
	assert.Equal(t, 404, domainErrStatus(t, err))
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserService(t)

	created, err := svc.CreateUser(context.Background(), service.UserCreateInput{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), created.ID))

	_, err = svc.GetUser(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, 404, domainErrStatus(t, err))
}

func TestDeleteUserBlockedByTickets(t *testing.T) {
	svc, users := newUserService(t)

	created, err := svc.CreateUser(context.Background(), service.UserCreateInput{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)

	// the tickets FK is ON DELETE RESTRICT; the store surfaces a 23503
	users.DeleteErr = &pgconn.PgError{Code: "23503", Message: "update or delete on table \"users\" violates foreign key constraint"}

	err = svc.DeleteUser(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, 400, domainErrStatus(t, err))
}
