package routes

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	numberSvc "tahfidz_backend/internals/features/certificates/certificate_numbers/service"
	certSvc "tahfidz_backend/internals/features/certificates/certificates/service"
	tasmiSvc "tahfidz_backend/internals/features/tasmi/exams/service"
	studentModel "tahfidz_backend/internals/features/users/students/model"
	awardSvc "tahfidz_backend/internals/features/wisuda/awards/service"
	"tahfidz_backend/internals/databases/testdb"
	"tahfidz_backend/internals/helpers/queue"
)

const testSecret = "rahasia-test"

type envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
	Data      map[string]any      `json:"data"`
}

type harness struct {
	app    *fiber.App
	db     *gorm.DB
	events *queue.MemoryPublisher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testdb.Open(t)
	events := &queue.MemoryPublisher{}
	certs := certSvc.NewStore(db, numberSvc.NewAllocator(nil))

	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	SetupRoutes(app, db, Services{
		Certs:  certs,
		Tasmi:  tasmiSvc.New(db, certs, events, 70),
		Awards: awardSvc.New(db, certs, events, 100),
	}, testSecret)
	return &harness{app: app, db: db, events: events}
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   uuid.NewString(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func (h *harness) do(t *testing.T, method, path, tok string, body any) (int, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if tok != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, sonic.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (h *harness) student(t *testing.T) studentModel.StudentModel {
	t.Helper()
	st := studentModel.StudentModel{StudentName: "Fatimah", StudentNIS: "2025002", StudentGender: studentModel.GenderFemale}
	require.NoError(t, h.db.Create(&st).Error)
	return st
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	code, _ := h.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestAuthGuards(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		path string
		tok  string
		want int
	}{
		{"tanpa token", "/api/a/tasmi", "", fiber.StatusUnauthorized},
		{"token rusak", "/api/a/tasmi", "abc.def.ghi", fiber.StatusUnauthorized},
		{"santri ke admin", "/api/a/tasmi", token(t, "student"), fiber.StatusForbidden},
		{"guru ke admin", "/api/a/tasmi", token(t, "teacher"), fiber.StatusOK},
		{"guru ke wisuda", "/api/a/wisuda/events", token(t, "teacher"), fiber.StatusForbidden},
		{"admin ke wisuda", "/api/a/wisuda/events", token(t, "admin"), fiber.StatusOK},
		{"role kapital", "/api/a/wisuda/events", token(t, "OWNER"), fiber.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := h.do(t, http.MethodGet, tc.path, tc.tok, nil)
			assert.Equal(t, tc.want, code)
		})
	}
}

func TestExpiredToken(t *testing.T) {
	h := newHarness(t)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   uuid.NewString(),
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	code, _ := h.do(t, http.MethodGet, "/api/a/tasmi", s, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestRegisterValidation(t *testing.T) {
	h := newHarness(t)
	st := h.student(t)

	code, env := h.do(t, http.MethodPost, "/api/u/tasmi", token(t, "student"), map[string]any{
		"student_id": st.StudentID,
		"juz":        31,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	assert.Contains(t, env.Errors, "juz")

	code, env = h.do(t, http.MethodPost, "/api/u/tasmi", token(t, "student"), map[string]any{
		"student_id": uuid.New(),
		"juz":        1,
	})
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func TestTasmiFlowToPublicVerification(t *testing.T) {
	h := newHarness(t)
	st := h.student(t)
	teacher := token(t, "teacher")

	code, env := h.do(t, http.MethodPost, "/api/u/tasmi", token(t, "student"), map[string]any{
		"student_id":      st.StudentID,
		"juz":             30,
		"academic_period": "2024/2025-GENAP",
	})
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	id := env.Data["tasmi_exam_id"].(string)
	assert.Equal(t, "PENDING", env.Data["tasmi_exam_status"])

	// sertifikat belum boleh terbit sebelum dinilai
	code, env = h.do(t, http.MethodPost, "/api/a/tasmi/"+id+"/certificate", teacher, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	code, env = h.do(t, http.MethodPost, "/api/a/tasmi/"+id+"/verify", teacher, map[string]any{"approve": true})
	require.Equal(t, fiber.StatusOK, code, env.Message)
	assert.Equal(t, "APPROVED", env.Data["tasmi_exam_status"])

	code, env = h.do(t, http.MethodPost, "/api/a/tasmi/"+id+"/verify", teacher, map[string]any{"approve": false})
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "INVALID_STATE", env.ErrorCode)

	code, env = h.do(t, http.MethodPost, "/api/a/tasmi/"+id+"/assessment", teacher, map[string]any{
		"scores": []map[string]any{
			{"name": "kelancaran", "score": 90},
			{"name": "tajwid", "score": 80},
		},
	})
	require.Equal(t, fiber.StatusOK, code, env.Message)
	assert.Equal(t, 85.0, env.Data["tasmi_exam_final_score"])
	assert.Equal(t, true, env.Data["tasmi_exam_passed"])

	code, env = h.do(t, http.MethodPost, "/api/a/tasmi/"+id+"/publish", teacher, nil)
	require.Equal(t, fiber.StatusOK, code, env.Message)
	assert.NotNil(t, env.Data["tasmi_exam_published_at"])

	code, env = h.do(t, http.MethodPost, "/api/a/tasmi/"+id+"/certificate", teacher, nil)
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	number := env.Data["certificate_number"].(string)
	assert.True(t, strings.HasPrefix(number, "CERT/TASMI/"), number)
	assert.Equal(t, true, env.Data["created"])

	// terbit ulang mengembalikan sertifikat yang sama
	code, env = h.do(t, http.MethodPost, "/api/a/tasmi/"+id+"/certificate", teacher, nil)
	require.Equal(t, fiber.StatusOK, code, env.Message)
	assert.Equal(t, number, env.Data["certificate_number"])
	assert.Equal(t, false, env.Data["created"])
	assert.Equal(t, 1, h.events.Count(queue.EventCertificateIssued))

	code, env = h.do(t, http.MethodGet, "/api/public/certificates/"+url.PathEscape(number), "", nil)
	require.Equal(t, fiber.StatusOK, code, env.Message)
	assert.Equal(t, number, env.Data["certificate_number"])
	assert.Equal(t, "Fatimah", env.Data["student_name"])
	assert.Equal(t, 30.0, env.Data["juz"])
}

func TestPublicVerificationErrors(t *testing.T) {
	h := newHarness(t)

	code, _ := h.do(t, http.MethodGet, "/api/public/certificates/"+url.PathEscape("CERT/TASMI/20250601/0099"), "", nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = h.do(t, http.MethodGet, "/api/public/certificates/bukan-nomor", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
