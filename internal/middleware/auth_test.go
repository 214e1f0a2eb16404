package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hr_training_backend/internal/model"
	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func runRoleMiddleware(role *model.EmployeeRole, allowed ...model.EmployeeRole) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if role != nil {
		c.Set("employee", &util.Claims{EmployeeID: 1, Role: *role})
	}

	RoleMiddleware(allowed...)(c)
	return w
}

func TestRoleMiddlewareDeniesInsufficientRole(t *testing.T) {
	role := model.Employee
	w := runRoleMiddleware(&role, model.HR)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), util.ErrPermissionDenied.Error())
}

func TestRoleMiddlewareAllowsListedRole(t *testing.T) {
	role := model.HR
	w := runRoleMiddleware(&role, model.HR)
	assert.NotEqual(t, http.StatusForbidden, w.Code)
}

func TestRoleMiddlewareAdminBypassesRoleList(t *testing.T) {
	role := model.Admin
	w := runRoleMiddleware(&role, model.HR)
	assert.NotEqual(t, http.StatusForbidden, w.Code)
}

func TestRoleMiddlewareRequiresClaims(t *testing.T) {
	w := runRoleMiddleware(nil, model.HR)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}