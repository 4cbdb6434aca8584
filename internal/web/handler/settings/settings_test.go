package settings

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emailcapture/emailcapture/internal/config"
	"github.com/emailcapture/emailcapture/internal/db/controller/setting"
	"github.com/emailcapture/emailcapture/internal/db/dbtest"
	"github.com/emailcapture/emailcapture/internal/db/models"
	"github.com/emailcapture/emailcapture/internal/web/handler"
)

func setupApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	app := fiber.New()
	service := &Service{}
	require.NoError(t, service.Init(app, &config.Config{}, db))

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, body string) (int, []byte) {
	t.Helper()

	contentType := ""
	if body != "" {
		contentType = fiber.MIMEApplicationJSON
	}

	return doRequestWithType(t, app, method, contentType, body)
}

func doRequestWithType(t *testing.T, app *fiber.App, method, contentType, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, Path, reader)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, out
}

func TestInit(t *testing.T) {
	service := &Service{}
	require.Error(t, service.Init(nil, &config.Config{}, nil))
}

func TestService_Get(t *testing.T) {
	testCases := []struct {
		name          string
		seedData      []models.Settings
		expectedCount int
	}{
		{
			name:          "empty store returns an empty list",
			expectedCount: 0,
		},
		{
			name: "seeded record",
			seedData: []models.Settings{
				{LogoURL: setting.DefaultLogoURL, ButtonText: setting.DefaultButtonText, UserEmail: setting.AdminEmail},
			},
			expectedCount: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := dbtest.New(t)
			dbtest.Seed(t, db, tc.seedData...)

			status, body := doRequest(t, setupApp(t, db), http.MethodGet, "")
			assert.Equal(t, fiber.StatusOK, status)

			var got []models.Settings
			require.NoError(t, json.Unmarshal(body, &got))
			assert.NotNil(t, got)
			assert.Len(t, got, tc.expectedCount)

			if tc.expectedCount > 0 {
				assert.Contains(t, string(body), `"logoUrl":"https://example.com/logo.png"`)
				assert.Contains(t, string(body), `"buttonText":"Click me!"`)
				assert.Contains(t, string(body), `"userEmail":"admin@gmail.com"`)
			}
		})
	}
}

func TestService_Get_StorageFailure(t *testing.T) {
	db := dbtest.New(t)
	app := setupApp(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status, body := doRequest(t, app, http.MethodGet, "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, handler.MsgInternalServerError, string(body))
}

func TestService_Put(t *testing.T) {
	stored := models.Settings{LogoURL: "A", ButtonText: "B", UserEmail: setting.AdminEmail}

	testCases := []struct {
		name           string
		seedData       []models.Settings
		contentType    string
		body           string
		expectedStatus int
		expectedError  string
		expected       models.Settings
	}{
		{
			name:           "not the admin",
			seedData:       []models.Settings{stored},
			body:           `{"logoUrl":"C","userEmail":"user@gmail.com"}`,
			expectedStatus: fiber.StatusForbidden,
			expectedError:  MsgPermissionDenied,
			expected:       stored,
		},
		{
			name:           "no user email",
			seedData:       []models.Settings{stored},
			body:           `{"logoUrl":"C"}`,
			expectedStatus: fiber.StatusForbidden,
			expectedError:  MsgPermissionDenied,
			expected:       stored,
		},
		{
			name:           "no body",
			seedData:       []models.Settings{stored},
			expectedStatus: fiber.StatusForbidden,
			expectedError:  MsgPermissionDenied,
			expected:       stored,
		},
		{
			name:           "json content type without body",
			seedData:       []models.Settings{stored},
			contentType:    fiber.MIMEApplicationJSON,
			expectedStatus: fiber.StatusForbidden,
			expectedError:  MsgPermissionDenied,
			expected:       stored,
		},
		{
			name:           "plain text body is not parsed",
			seedData:       []models.Settings{stored},
			contentType:    fiber.MIMETextPlain,
			body:           `{"logoUrl":"C","userEmail":"admin@gmail.com"}`,
			expectedStatus: fiber.StatusForbidden,
			expectedError:  MsgPermissionDenied,
			expected:       stored,
		},
		{
			name:           "admin row missing",
			body:           `{"logoUrl":"C","userEmail":"admin@gmail.com"}`,
			expectedStatus: fiber.StatusNotFound,
			expectedError:  MsgNotFound,
		},
		{
			name:           "invalid json",
			seedData:       []models.Settings{stored},
			body:           `{"logoUrl":`,
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  handler.MsgInvalidBody,
			expected:       stored,
		},
		{
			name:           "partial update",
			seedData:       []models.Settings{stored},
			body:           `{"logoUrl":"C","userEmail":"admin@gmail.com"}`,
			expectedStatus: fiber.StatusOK,
			expected:       models.Settings{LogoURL: "C", ButtonText: "B", UserEmail: setting.AdminEmail},
		},
		{
			name:           "empty strings keep stored values",
			seedData:       []models.Settings{stored},
			body:           `{"logoUrl":"","buttonText":"","userEmail":"admin@gmail.com"}`,
			expectedStatus: fiber.StatusOK,
			expected:       stored,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := dbtest.New(t)
			dbtest.Seed(t, db, tc.seedData...)

			contentType := tc.contentType
			if contentType == "" && tc.body != "" {
				contentType = fiber.MIMEApplicationJSON
			}

			status, body := doRequestWithType(t, setupApp(t, db), http.MethodPut, contentType, tc.body)
			assert.Equal(t, tc.expectedStatus, status)

			if tc.expectedError != "" {
				var errResp handler.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &errResp))
				assert.Equal(t, tc.expectedError, errResp.Error)
			} else {
				var got models.Settings
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, tc.expected.LogoURL, got.LogoURL)
				assert.Equal(t, tc.expected.ButtonText, got.ButtonText)
				assert.Equal(t, tc.expected.UserEmail, got.UserEmail)
				assert.NotZero(t, got.ID)
			}

			if len(tc.seedData) == 0 {
				return
			}

			var row models.Settings
			require.NoError(t, db.First(&row).Error)
			assert.Equal(t, tc.expected, models.Settings{
				LogoURL:    row.LogoURL,
				ButtonText: row.ButtonText,
				UserEmail:  row.UserEmail,
			})
		})
	}
}

func TestService_Put_StorageFailure(t *testing.T) {
	db := dbtest.New(t)
	app := setupApp(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status, body := doRequest(t, app, http.MethodPut, `{"userEmail":"admin@gmail.com"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, handler.MsgInternalServerError, string(body))
}
