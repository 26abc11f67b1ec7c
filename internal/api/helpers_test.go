package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/middleware"
	"github.com/credtrailhq/credtrail/internal/models"
)

// Fixed UUIDs for the authenticated user and for path parameters.
const (
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testUserEmail  = "coordinator@clinic.test"
	testProviderID = "00000000-0000-0000-0000-000000000010"
	testLicenseID  = "00000000-0000-0000-0000-000000000020"
	testPhaseID    = "00000000-0000-0000-0000-000000000030"
	testFacilityID = "00000000-0000-0000-0000-000000000040"
	testCommID     = "00000000-0000-0000-0000-000000000050"
	testDocumentID = "00000000-0000-0000-0000-000000000060"
	testAccountID  = "00000000-0000-0000-0000-000000000070"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// newTestRouter creates a gin engine seeded with the user context the auth
// middleware would normally set.
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, testUserID)
		c.Set(middleware.CtxUserEmail, testUserEmail)
		c.Set(middleware.CtxUserRole, string(models.RoleCoordinator))
		c.Next()
	})

	return r
}

// doRequest performs an HTTP request against the test router and returns the recorder.
func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}
