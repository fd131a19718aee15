package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo196/Vendly/internal/application/auth"
	"github.com/Camilo196/Vendly/internal/application/dto"
	"github.com/Camilo196/Vendly/internal/domain"
	"github.com/Camilo196/Vendly/internal/infrastructure/memory"
	"github.com/Camilo196/Vendly/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newUseCase() *auth.UseCase {
	store := memory.NewStore()
	return auth.NewUseCase(store.Users(), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "vendly-test",
	})
}

func TestRegister_CreaCuentaConToken(t *testing.T) {
	uc := newUseCase()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:        "  Tienda@Ejemplo.COM ",
		Password:     "secreto123",
		Name:         "Tienda Centro",
		BusinessName: "Celulares Centro",
	})
	require.NoError(t, err)

	assert.Equal(t, "tienda@ejemplo.com", out.User.Email, "el email se normaliza")
	assert.NotEmpty(t, out.Token)

	userID, _, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID, "el token lleva el ID del tenant")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "dueño@local.com", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "DUEÑO@local.com", Password: "otro-pass"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_PasswordCorto(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "dueño@local.com", Password: "abc",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "dueño@local.com", Password: "secreto123"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "dueño@local.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "dueño@local.com", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "dueño@local.com", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioDesconocido(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@local.com", Password: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMe_DevuelvePerfil(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	reg, err := uc.Register(ctx, dto.RegisterRequest{
		Email: "dueño@local.com", Password: "secreto123", Name: "Dueño",
	})
	require.NoError(t, err)

	me, err := uc.Me(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dueño", me.Name)
}

func TestMe_NoExiste(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Me(context.Background(), "inexistente")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
