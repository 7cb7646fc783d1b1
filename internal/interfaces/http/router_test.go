package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistema-ventas/facturacion-api/internal/application/auth"
	appboleta "github.com/sistema-ventas/facturacion-api/internal/application/boleta"
	"github.com/sistema-ventas/facturacion-api/internal/application/usuario"
	"github.com/sistema-ventas/facturacion-api/internal/domain/entity"
	"github.com/sistema-ventas/facturacion-api/internal/domain/repository"
	apphttp "github.com/sistema-ventas/facturacion-api/internal/interfaces/http"
	"github.com/sistema-ventas/facturacion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para levantar la API completa sin base de datos
// ──────────────────────────────────────────────────────────────────────────────

type memUsuarioRepo struct {
	nextID   int64
	usuarios map[int64]*entity.Usuario
}

func newMemUsuarioRepo() *memUsuarioRepo {
	return &memUsuarioRepo{nextID: 1, usuarios: map[int64]*entity.Usuario{}}
}

func (r *memUsuarioRepo) Create(u *entity.Usuario) error {
	u.IDUsuario = r.nextID
	r.nextID++
	cp := *u
	r.usuarios[u.IDUsuario] = &cp
	return nil
}

func (r *memUsuarioRepo) GetByID(id int64) (*entity.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsuarioRepo) ExistsByEmail(email string) (bool, error) {
	u, _ := r.GetByEmail(email)
	return u != nil, nil
}

func (r *memUsuarioRepo) ExistsByNumeroDocumento(numero string) (bool, error) {
	for _, u := range r.usuarios {
		if u.NumeroDocumento == numero {
			return true, nil
		}
	}
	return false, nil
}

type memBoletaRepo struct {
	nextBoletaID  int64
	nextDetalleID int64
	boletas       map[int64]*entity.Boleta
	detalles      map[int64]*entity.DetalleBoleta
}

func newMemBoletaRepo() *memBoletaRepo {
	return &memBoletaRepo{
		nextBoletaID:  1,
		nextDetalleID: 1,
		boletas:       map[int64]*entity.Boleta{},
		detalles:      map[int64]*entity.DetalleBoleta{},
	}
}

func (r *memBoletaRepo) Create(b *entity.Boleta) error {
	b.IDBoleta = r.nextBoletaID
	r.nextBoletaID++
	cp := *b
	r.boletas[b.IDBoleta] = &cp
	return nil
}

func (r *memBoletaRepo) CreateDetalle(d *entity.DetalleBoleta) error {
	d.IDDetalle = r.nextDetalleID
	r.nextDetalleID++
	cp := *d
	r.detalles[d.IDDetalle] = &cp
	return nil
}

func (r *memBoletaRepo) GetByID(id int64) (*entity.Boleta, error) {
	b, ok := r.boletas[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBoletaRepo) ListByUsuario(idUsuario int64) ([]*entity.Boleta, error) {
	var out []*entity.Boleta
	for _, b := range r.boletas {
		if b.IDUsuario == idUsuario {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDBoleta < out[j].IDBoleta })
	return out, nil
}

func (r *memBoletaRepo) ListByUsuarioOrdenadas(idUsuario int64) ([]*entity.Boleta, error) {
	out, _ := r.ListByUsuario(idUsuario)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FechaCreacion.Equal(out[j].FechaCreacion) {
			return out[i].FechaCreacion.After(out[j].FechaCreacion)
		}
		return out[i].IDBoleta < out[j].IDBoleta
	})
	return out, nil
}

func (r *memBoletaRepo) GetDetallesByBoletaID(idBoleta int64) ([]*entity.DetalleBoleta, error) {
	var out []*entity.DetalleBoleta
	for _, d := range r.detalles {
		if d.IDBoleta == idBoleta {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDDetalle < out[j].IDDetalle })
	return out, nil
}

func (r *memBoletaRepo) DeleteDetallesByBoletaID(idBoleta int64) error {
	for id, d := range r.detalles {
		if d.IDBoleta == idBoleta {
			delete(r.detalles, id)
		}
	}
	return nil
}

func (r *memBoletaRepo) Delete(id int64) error {
	delete(r.boletas, id)
	return nil
}

type memTxRunner struct {
	repo *memBoletaRepo
}

func (tx *memTxRunner) Run(_ context.Context, fn func(repo repository.BoletaRepository) error) error {
	return fn(tx.repo)
}

// stubPDFGenerator devuelve un PDF mínimo sin pasar por Maroto.
type stubPDFGenerator struct{}

func (stubPDFGenerator) GenerateBoletaPDF(context.Context, *entity.Boleta, *entity.Usuario, []*entity.DetalleBoleta) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de test con la API completa
// ──────────────────────────────────────────────────────────────────────────────

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()

	usuarioRepo := newMemUsuarioRepo()
	boletaRepo := newMemBoletaRepo()
	log := logger.Nop()

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{Secret: testJWTSecret, TTL: time.Hour}, log)
	usuarioUC := usuario.NewUsuarioUseCase(usuarioRepo)
	boletaUC := appboleta.NewBoletaUseCase(
		&memTxRunner{repo: boletaRepo}, boletaRepo, usuarioRepo,
		appboleta.Config{}, log,
	)
	pdfUC := appboleta.NewPDFUseCase(boletaRepo, usuarioRepo, stubPDFGenerator{})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		UsuarioUC: usuarioUC,
		BoletaUC:  boletaUC,
		PDFUC:     pdfUC,
		JWTSecret: testJWTSecret,
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, token string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// registrar crea un usuario vía la API y devuelve su token.
func registrar(t *testing.T, app *fiber.App, email, documento string) string {
	t.Helper()
	resp := postJSON(t, app, "/api/usuarios/registro", "", map[string]string{
		"email":           email,
		"password":        "secreta123",
		"nombres":         "Carla",
		"apellidos":       "Muñoz",
		"numeroDocumento": documento,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func boletaPayload() map[string]any {
	return map[string]any{
		"cartItems": []map[string]any{
			{"nombreProducto": "Café molido", "precioUnitario": "10.00", "cantidad": 2},
			{"nombreProducto": "Azúcar", "precioUnitario": "5.00", "cantidad": 1},
		},
		"total":         "25.00",
		"nombreCliente": "Ana Torres",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistroYLogin(t *testing.T) {
	app := buildAPI(t)

	registrar(t, app, "carla@example.com", "12345678")

	// Email duplicado responde 400.
	resp := postJSON(t, app, "/api/usuarios/registro", "", map[string]string{
		"email": "carla@example.com", "password": "otra", "nombres": "Otra",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Login correcto.
	resp = postJSON(t, app, "/api/usuarios/login", "", map[string]string{
		"email": "carla@example.com", "password": "secreta123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	// Contraseña incorrecta y email inexistente responden el mismo 401.
	resp = postJSON(t, app, "/api/usuarios/login", "", map[string]string{
		"email": "carla@example.com", "password": "equivocada",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/usuarios/login", "", map[string]string{
		"email": "nadie@example.com", "password": "secreta123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_VerificarEmail(t *testing.T) {
	app := buildAPI(t)

	resp := get(t, app, "/api/usuarios/verificar-email/libre@example.com", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, resp)["success"])

	registrar(t, app, "ocupado@example.com", "12345678")

	resp = get(t, app, "/api/usuarios/verificar-email/ocupado@example.com", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decode(t, resp)["success"])
}

func TestAPI_VerificarYRefrescarToken(t *testing.T) {
	app := buildAPI(t)
	token := registrar(t, app, "carla@example.com", "12345678")

	resp := postJSON(t, app, "/api/usuarios/verificar-token", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Token válido", decode(t, resp)["mensaje"])

	resp = postJSON(t, app, "/api/usuarios/refrescar-token", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Token refrescado exitosamente", body["mensaje"])
	assert.NotEmpty(t, body["token"])

	resp = postJSON(t, app, "/api/usuarios/verificar-token", "token-invalido", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_Perfil(t *testing.T) {
	app := buildAPI(t)
	token := registrar(t, app, "carla@example.com", "12345678")

	resp := get(t, app, "/api/usuarios/perfil", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "carla@example.com", body["email"])
	assert.Equal(t, "Carla Muñoz", body["nombreCompleto"])

	resp = get(t, app, "/api/usuarios/perfil", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Boletas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CrearYListarBoletas(t *testing.T) {
	app := buildAPI(t)
	token := registrar(t, app, "carla@example.com", "12345678")

	// Sin token no hay checkout.
	resp := postJSON(t, app, "/api/boletas", "", boletaPayload())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/boletas", token, boletaPayload())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	require.NotNil(t, body["boletaId"])

	resp = get(t, app, "/api/boletas", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var boletas []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&boletas))
	resp.Body.Close()
	require.Len(t, boletas, 1)
	assert.Equal(t, "Ana Torres", boletas[0]["nombreCliente"])

	resp = get(t, app, "/api/boletas/ordenadas", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_CarritoVacioRetorna400(t *testing.T) {
	app := buildAPI(t)
	token := registrar(t, app, "carla@example.com", "12345678")

	payload := boletaPayload()
	payload["cartItems"] = []map[string]any{}

	resp := postJSON(t, app, "/api/boletas", token, payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "El carrito está vacío", decode(t, resp)["mensaje"])
}

func TestAPI_BoletaAjenaRetorna404(t *testing.T) {
	app := buildAPI(t)
	tokenDuenia := registrar(t, app, "duenia@example.com", "11111111")
	tokenIntruso := registrar(t, app, "intruso@example.com", "22222222")

	resp := postJSON(t, app, "/api/boletas", tokenDuenia, boletaPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	idBoleta := decode(t, resp)["boletaId"]

	path := fmt.Sprintf("/api/boletas/%v", idBoleta)

	// La dueña la ve; el intruso recibe el mismo 404 que un id inexistente.
	resp = get(t, app, path, tokenDuenia)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = get(t, app, path, tokenIntruso)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = get(t, app, path+"/detalles", tokenIntruso)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = get(t, app, "/api/boletas/99999", tokenDuenia)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_DescargarPDF(t *testing.T) {
	app := buildAPI(t)
	token := registrar(t, app, "carla@example.com", "12345678")

	resp := postJSON(t, app, "/api/boletas", token, boletaPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	idBoleta := decode(t, resp)["boletaId"]

	resp = get(t, app, fmt.Sprintf("/api/boletas/%v/pdf", idBoleta), token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "boleta-")
	resp.Body.Close()
}

func TestAPI_EliminarBoleta(t *testing.T) {
	app := buildAPI(t)
	token := registrar(t, app, "carla@example.com", "12345678")

	resp := postJSON(t, app, "/api/boletas", token, boletaPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	idBoleta := decode(t, resp)["boletaId"]

	path := fmt.Sprintf("/api/boletas/%v", idBoleta)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	delResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, delResp.StatusCode)
	delResp.Body.Close()

	resp = get(t, app, path, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"la boleta eliminada ya no debe existir")
	resp.Body.Close()
}
