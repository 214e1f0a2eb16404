package service

import (
	"errors"

	"hr_training_backend/internal/config"
	"hr_training_backend/internal/model"
	"hr_training_backend/internal/repository"
	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	EmployeeRepo *repository.EmployeeRepository
	Cfg          *config.Config
}

func NewAuthService(employeeRepo *repository.EmployeeRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		EmployeeRepo: employeeRepo,
		Cfg:          cfg,
	}
}

func (s *AuthService) Register(emp *model.EmployeeAccount) error {
	_, err := s.EmployeeRepo.FindByEmail(emp.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(emp.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	emp.Password = string(hashedPassword)
	return s.EmployeeRepo.Create(emp)
}

func (s *AuthService) Login(email, password string) (string, error) {
	emp, err := s.EmployeeRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(emp, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentEmployee(c *gin.Context) *model.EmployeeAccount {
	claims := util.GetEmployeeFromContext(c)
	if claims == nil {
		return nil
	}

	emp, _ := s.EmployeeRepo.FindByID(claims.EmployeeID)
	return emp
}

// ListEmployees 管理端选人用的全量员工列表
func (s *AuthService) ListEmployees() ([]model.EmployeeAccount, error) {
	employees, err := s.EmployeeRepo.ListAll()
	if err != nil {
		return nil, err
	}
	for i := range employees {
		employees[i].Password = ""
	}
	return employees, nil
}
