package service

import (
	"testing"
	"time"

	"hr_training_backend/internal/config"
	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/testutil"
	"hr_training_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-unit-tests-only-32ch"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewEmployeeRepository(db), cfg)
}

func TestRegisterHashesPasswordAndRejectsDuplicates(t *testing.T) {
	db := testutil.DB(t)
	svc := newAuthService(db)

	emp := &model.EmployeeAccount{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "super-secret-1",
		Role:     model.Employee,
	}
	require.NoError(t, svc.Register(emp))
	assert.NotEqual(t, "super-secret-1", emp.Password, "密码必须哈希存储")

	dup := &model.EmployeeAccount{
		Name:     "李四",
		Email:    "zhangsan@example.com",
		Password: "another-secret",
	}
	assert.ErrorIs(t, svc.Register(dup), util.ErrEmailRegistered)
}

func TestLoginIssuesParsableToken(t *testing.T) {
	db := testutil.DB(t)
	svc := newAuthService(db)

	emp := &model.EmployeeAccount{
		Name:     "王五",
		Email:    "wangwu@example.com",
		Password: "correct-horse-1",
		Role:     model.HR,
	}
	require.NoError(t, svc.Register(emp))

	token, err := svc.Login("wangwu@example.com", "correct-horse-1")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, claims.EmployeeID)
	assert.Equal(t, model.HR, claims.Role)

	_, err = svc.Login("wangwu@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "whatever-1234")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
