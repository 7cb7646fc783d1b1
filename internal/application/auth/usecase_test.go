package auth_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistema-ventas/facturacion-api/internal/application/auth"
	"github.com/sistema-ventas/facturacion-api/internal/application/dto"
	"github.com/sistema-ventas/facturacion-api/internal/domain"
	"github.com/sistema-ventas/facturacion-api/internal/domain/entity"
	pkgjwt "github.com/sistema-ventas/facturacion-api/pkg/jwt"
	"github.com/sistema-ventas/facturacion-api/pkg/logger"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testTTL    = time.Hour
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake repo en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	nextID   int64
	usuarios map[int64]*entity.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{nextID: 1, usuarios: map[int64]*entity.Usuario{}}
}

func (r *fakeUsuarioRepo) Create(u *entity.Usuario) error {
	u.IDUsuario = r.nextID
	r.nextID++
	cp := *u
	r.usuarios[u.IDUsuario] = &cp
	return nil
}

func (r *fakeUsuarioRepo) GetByID(id int64) (*entity.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) ExistsByEmail(email string) (bool, error) {
	u, _ := r.GetByEmail(email)
	return u != nil, nil
}

func (r *fakeUsuarioRepo) ExistsByNumeroDocumento(numero string) (bool, error) {
	for _, u := range r.usuarios {
		if u.NumeroDocumento == numero {
			return true, nil
		}
	}
	return false, nil
}

func newUseCase(repo *fakeUsuarioRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, TTL: testTTL}, logger.Nop())
}

func registroValido() dto.RegistroRequest {
	return dto.RegistroRequest{
		Email:           "maria@example.com",
		Password:        "secreta123",
		Nombres:         "María",
		Apellidos:       "González",
		NumeroDocumento: "12345678",
	}
}

// expiracion decodifica el claim exp sin verificar la firma.
func expiracion(t *testing.T, token string) time.Time {
	t.Helper()
	var claims pkgjwt.Claims
	_, _, err := gojwt.NewParser().ParseUnverified(token, &claims)
	require.NoError(t, err)
	return claims.ExpiresAt.Time
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarUsuario_EmiteSesionValida(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	resp, err := uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Usuario registrado exitosamente", resp.Mensaje)
	assert.Equal(t, "María González", resp.NombreCompleto)

	idUsuario, email, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err, "el token emitido debe ser verificable")
	assert.Equal(t, resp.IDUsuario, idUsuario)
	assert.Equal(t, "maria@example.com", email)
}

func TestRegistrarUsuario_NoGuardaPasswordEnClaro(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	resp, err := uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	guardado, err := repo.GetByID(resp.IDUsuario)
	require.NoError(t, err)
	require.NotNil(t, guardado)
	assert.NotEqual(t, "secreta123", guardado.PasswordHash,
		"la contraseña debe guardarse hasheada, nunca en claro")
	assert.NotEmpty(t, guardado.PasswordHash)
}

func TestRegistrarUsuario_EmailDuplicado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	_, err := uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	otro := registroValido()
	otro.NumeroDocumento = "87654321"
	_, err = uc.RegistrarUsuario(otro)
	assert.ErrorIs(t, err, domain.ErrEmailYaRegistrado)
}

func TestRegistrarUsuario_DocumentoDuplicado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	_, err := uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	otro := registroValido()
	otro.Email = "otra@example.com"
	_, err = uc.RegistrarUsuario(otro)
	assert.ErrorIs(t, err, domain.ErrDocumentoYaRegistrado)
}

func TestEmailDisponible_CambiaTrasRegistro(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	disponible, err := uc.EmailDisponible("maria@example.com")
	require.NoError(t, err)
	assert.True(t, disponible)

	_, err = uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	disponible, err = uc.EmailDisponible("maria@example.com")
	require.NoError(t, err)
	assert.False(t, disponible, "el email registrado ya no debe estar disponible")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestIniciarSesion_CredencialesCorrectas(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	registrado, err := uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	resp, err := uc.IniciarSesion(dto.LoginRequest{Email: "maria@example.com", Password: "secreta123"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Login exitoso", resp.Mensaje)
	assert.Equal(t, registrado.IDUsuario, resp.IDUsuario)

	_, _, err = pkgjwt.Parse(testSecret, resp.Token)
	assert.NoError(t, err)
}

func TestIniciarSesion_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	_, err := uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	_, err = uc.IniciarSesion(dto.LoginRequest{Email: "maria@example.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

func TestIniciarSesion_EmailInexistente(t *testing.T) {
	uc := newUseCase(newFakeUsuarioRepo())

	_, err := uc.IniciarSesion(dto.LoginRequest{Email: "nadie@example.com", Password: "loquesea"})
	assert.ErrorIs(t, err, domain.ErrUsuarioNoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verificación y refresco de token
// ──────────────────────────────────────────────────────────────────────────────

func TestVerificarSesion_TokenVigente(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	registrado, err := uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	resp, err := uc.VerificarSesion(registrado.Token)
	require.NoError(t, err)

	assert.Equal(t, "Token válido", resp.Mensaje)
	assert.Equal(t, registrado.Token, resp.Token, "verificar no debe emitir un token nuevo")
	assert.Equal(t, registrado.IDUsuario, resp.IDUsuario)
}

func TestVerificarToken_TokenAjeno(t *testing.T) {
	uc := newUseCase(newFakeUsuarioRepo())

	_, _, err := uc.VerificarToken("token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrTokenMalformado)
}

func TestRefrescarToken_ExpiraEstrictamenteDespues(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	registrado, err := uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	// Token emitido una hora atrás, aún vigente (TTL de test = 1h con margen).
	viejo, err := pkgjwt.Generate(testSecret, registrado.IDUsuario, registrado.Email,
		time.Now().Add(-30*time.Minute), testTTL)
	require.NoError(t, err)

	resp, err := uc.RefrescarToken(viejo)
	require.NoError(t, err)
	assert.Equal(t, "Token refrescado exitosamente", resp.Mensaje)

	// Mismo sujeto, expiración estrictamente posterior.
	idViejo, _, err := pkgjwt.Parse(testSecret, viejo)
	require.NoError(t, err)
	idNuevo, _, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, idViejo, idNuevo)

	assert.True(t, expiracion(t, resp.Token).After(expiracion(t, viejo)),
		"el token refrescado debe expirar después que el original")
}

func TestRefrescarToken_TokenExpiradoNoRefresca(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	registrado, err := uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	expirado, err := pkgjwt.Generate(testSecret, registrado.IDUsuario, registrado.Email,
		time.Now().Add(-2*testTTL), testTTL)
	require.NoError(t, err)

	_, err = uc.RefrescarToken(expirado)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenExpirado,
		"un token ya expirado no puede refrescarse")
}

func TestRefrescarToken_UsuarioEliminado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := newUseCase(repo)

	registrado, err := uc.RegistrarUsuario(registroValido())
	require.NoError(t, err)

	delete(repo.usuarios, registrado.IDUsuario)

	_, err = uc.RefrescarToken(registrado.Token)
	assert.ErrorIs(t, err, domain.ErrUsuarioNoEncontrado)
}
