package app_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sasgp-api/internal/app"
	"github.com/noah-isme/sasgp-api/internal/config"
	"github.com/noah-isme/sasgp-api/internal/database"
	"github.com/noah-isme/sasgp-api/internal/page"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	cfg := config.Config{
		AppName:          "SASGP API",
		AppEnv:           "test",
		EventSubject:     "sasgp",
		SolutionCacheTTL: time.Minute,
	}

	return app.New(cfg, app.Backends{DB: db, Cache: cache}, zerolog.Nop())
}

func call(t *testing.T, server *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := server.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeEnvelope(t *testing.T, raw []byte, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestSolutionLifecycle(t *testing.T) {
	server := setupApp(t)

	var created struct {
		SolutionID string `json:"solution_id"`
		DocID      string `json:"doc_id"`
	}
	resp, raw := call(t, server, http.MethodPost, "/api/v1/solutions", map[string]interface{}{
		"name":   "Coleta de agua da chuva",
		"fields": map[string]interface{}{"area": "sustentabilidade"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.True(t, decodeEnvelope(t, raw, &created).Success)
	require.NotEmpty(t, created.SolutionID)
	require.NotEmpty(t, created.DocID)

	var listed []struct {
		DocID      string                 `json:"doc_id"`
		SolutionID string                 `json:"solution_id"`
		Name       string                 `json:"name"`
		Fields     map[string]interface{} `json:"fields"`
		CreatedAt  time.Time              `json:"created_at"`
	}
	_, raw = call(t, server, http.MethodGet, "/api/v1/solutions", nil)
	decodeEnvelope(t, raw, &listed)
	require.Len(t, listed, 1)
	require.Equal(t, created.SolutionID, listed[0].SolutionID)
	createdAt := listed[0].CreatedAt

	resp, raw = call(t, server, http.MethodPatch, "/api/v1/solutions/"+created.DocID, map[string]interface{}{
		"fields": map[string]interface{}{"fase": "prototipo"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated struct {
		SolutionID string                 `json:"solution_id"`
		Name       string                 `json:"name"`
		Fields     map[string]interface{} `json:"fields"`
		CreatedAt  time.Time              `json:"created_at"`
	}
	decodeEnvelope(t, raw, &updated)
	require.Equal(t, created.SolutionID, updated.SolutionID)
	require.Equal(t, "Coleta de agua da chuva", updated.Name)
	require.Equal(t, "sustentabilidade", updated.Fields["area"])
	require.Equal(t, "prototipo", updated.Fields["fase"])
	require.True(t, createdAt.Equal(updated.CreatedAt))

	resp, raw = call(t, server, http.MethodPatch, "/api/v1/solutions/missing", map[string]interface{}{"name": "x"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.False(t, decodeEnvelope(t, raw, nil).Success)

	for i := 0; i < 2; i++ {
		resp, raw = call(t, server, http.MethodDelete, "/api/v1/solutions/"+created.DocID, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.True(t, decodeEnvelope(t, raw, nil).Success)
	}

	_, raw = call(t, server, http.MethodGet, "/api/v1/solutions", nil)
	listed = nil
	decodeEnvelope(t, raw, &listed)
	require.Empty(t, listed)
}

func TestRecordsAndStatusFlow(t *testing.T) {
	server := setupApp(t)
	base := "/api/v1/solutions/sol-1"

	resp, _ := call(t, server, http.MethodPost, base+"/form-answers", map[string]interface{}{
		"answers": map[string]interface{}{"Qual o problema?": "desperdicio"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = call(t, server, http.MethodPost, base+"/resources", map[string]interface{}{
		"resources": []string{"impressora 3d", "sensor"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = call(t, server, http.MethodPost, base+"/scores", map[string]interface{}{
		"kill_switch":     false,
		"positive_matrix": map[string]int{"impacto": 3},
		"negative_matrix": map[string]int{"custo": 1},
		"score":           7.5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = call(t, server, http.MethodPost, base+"/canvases", map[string]interface{}{
		"canvas": map[string]interface{}{"proposta_de_valor": "economia"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, raw := call(t, server, http.MethodPost, base+"/evaluations", map[string]interface{}{
		"evaluator": "Ana", "comment": "promissor", "estrelas": 6,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.False(t, decodeEnvelope(t, raw, nil).Success)

	for _, stars := range []int{4, 5} {
		resp, _ = call(t, server, http.MethodPost, base+"/evaluations", map[string]interface{}{
			"evaluator": "Ana", "comment": "promissor", "estrelas": stars,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	var summary struct {
		Count   int     `json:"count"`
		Average float64 `json:"average"`
		Stars   string  `json:"stars"`
	}
	_, raw = call(t, server, http.MethodGet, base+"/evaluations/summary", nil)
	decodeEnvelope(t, raw, &summary)
	require.Equal(t, 2, summary.Count)
	require.InDelta(t, 4.5, summary.Average, 0.0001)
	require.Equal(t, "⭐⭐⭐⭐½", summary.Stars)

	for _, path := range []string{"/form-answers", "/resources", "/scores", "/canvases"} {
		var items []map[string]interface{}
		_, raw = call(t, server, http.MethodGet, base+path, nil)
		decodeEnvelope(t, raw, &items)
		require.Len(t, items, 1, path)
	}

	var report struct {
		DocID string `json:"doc_id"`
	}
	for _, title := range []string{"Sprint 1", "Sprint 2"} {
		_, raw = call(t, server, http.MethodPost, base+"/reports", map[string]interface{}{"title": title})
		decodeEnvelope(t, raw, &report)
	}

	resp, _ = call(t, server, http.MethodDelete, "/api/v1/reports/"+report.DocID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reports []struct {
		Title string `json:"title"`
	}
	_, raw = call(t, server, http.MethodGet, base+"/reports", nil)
	decodeEnvelope(t, raw, &reports)
	require.Len(t, reports, 1)
	require.Equal(t, "Sprint 1", reports[0].Title)

	var status struct {
		Status string `json:"status"`
	}
	_, raw = call(t, server, http.MethodGet, "/api/v1/solutions/doc-1/status", nil)
	require.True(t, decodeEnvelope(t, raw, &status).Success)
	require.Equal(t, "", status.Status)

	resp, raw = call(t, server, http.MethodPut, "/api/v1/solutions/doc-1/status", map[string]string{"status": "aprovada"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeEnvelope(t, raw, &status)
	require.Equal(t, "aprovada", status.Status)
}

func TestPagesRedirectAndLoad(t *testing.T) {
	server := setupApp(t)

	resp, _ := call(t, server, http.MethodGet, "/pages/evaluation?solution_id=only-logical", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, page.LandingPath, resp.Header.Get(fiber.HeaderLocation))

	var created struct {
		SolutionID string `json:"solution_id"`
		DocID      string `json:"doc_id"`
	}
	_, raw := call(t, server, http.MethodPost, "/api/v1/solutions", map[string]interface{}{"name": "Horta vertical"})
	decodeEnvelope(t, raw, &created)

	query := "?solution_id=" + created.SolutionID + "&doc_id=" + created.DocID
	resp, raw = call(t, server, http.MethodGet, "/pages/history"+query, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view struct {
		Solution struct {
			Name string `json:"name"`
		} `json:"solution"`
		Reports []interface{} `json:"reports"`
	}
	decodeEnvelope(t, raw, &view)
	require.Equal(t, "Horta vertical", view.Solution.Name)
	require.Empty(t, view.Reports)
}

func TestHealthReportsStore(t *testing.T) {
	server := setupApp(t)

	resp, raw := call(t, server, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var health struct {
		Status string `json:"status"`
		Store  string `json:"store"`
	}
	decodeEnvelope(t, raw, &health)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Store)

	resp, _ = call(t, server, http.MethodGet, "/api/v1/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUnhandledErrorsHideDetails(t *testing.T) {
	server := setupApp(t)
	server.Get("/boom", func(*fiber.Ctx) error {
		return errors.New("dial tcp 10.0.0.5:5432: password authentication failed")
	})

	resp, raw := call(t, server, http.MethodGet, "/boom", nil)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	env := decodeEnvelope(t, raw, nil)
	require.False(t, env.Success)
	require.Equal(t, "internal server error", env.Error)
	require.NotContains(t, string(raw), "password")

	resp, raw = call(t, server, http.MethodGet, "/api/v1/nowhere", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.False(t, decodeEnvelope(t, raw, nil).Success)
}

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile("file://" + filepath.ToSlash(path))
	require.NoError(t, err)
	return schema
}

func TestEnvelopeContract(t *testing.T) {
	server := setupApp(t)
	envelopeSchema := compileSchema(t, "envelope.schema.json")
	listSchema := compileSchema(t, "solution_list.schema.json")

	_, raw := call(t, server, http.MethodPost, "/api/v1/solutions", map[string]interface{}{"name": "Compostagem"})
	validate(t, envelopeSchema, raw)

	_, raw = call(t, server, http.MethodGet, "/api/v1/solutions", nil)
	validate(t, envelopeSchema, raw)
	validate(t, listSchema, raw)

	_, raw = call(t, server, http.MethodGet, "/api/v1/solutions/unknown", nil)
	validate(t, envelopeSchema, raw)

	_, raw = call(t, server, http.MethodPost, "/api/v1/solutions/sol-1/evaluations", map[string]interface{}{"estrelas": 0})
	validate(t, envelopeSchema, raw)
}

func validate(t *testing.T, schema *jsonschema.Schema, raw []byte) {
	t.Helper()
	var payload interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.NoError(t, schema.Validate(payload))
}
