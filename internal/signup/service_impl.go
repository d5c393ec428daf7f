package signup

import (
	"context"
	"strings"

	authdomain "github.com/reachway/reachway/internal/auth/domain"
	companydomain "github.com/reachway/reachway/internal/company/domain"
	"github.com/reachway/reachway/internal/permission"
	"github.com/reachway/reachway/internal/signup/domain"
	"go.uber.org/zap"
)

type service struct {
	log        *zap.Logger
	authsvc    authdomain.Service
	companysvc companydomain.Service
}

func NewService(log *zap.Logger, authsvc authdomain.Service, companysvc companydomain.Service) domain.Service {
	return &service{
		log:        log.Named("signup.service"),
		authsvc:    authsvc,
		companysvc: companysvc,
	}
}

// Signup creates the company, its first admin, and an initial session.
func (s *service) Signup(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidRequest
	}

	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return nil, domain.ErrInvalidRequest
	}

	company, err := s.companysvc.Create(ctx, companydomain.CreateCompanyRequest{
		Name:     companyName,
		Industry: req.CompanyIndustry,
		Website:  req.CompanyWebsite,
	})
	if err != nil {
		return nil, err
	}

	user, err := s.authsvc.CreateUser(ctx, authdomain.CreateUserRequest{
		CompanyID: company.ID,
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		Role:      permission.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	login, err := s.authsvc.Login(ctx, authdomain.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: req.UserAgent,
		IPAddress: req.IPAddress,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("signup completed",
		zap.String("company_id", company.ID.String()),
		zap.String("user_id", user.ID.String()))

	return &domain.Result{
		Company:   company,
		User:      *user,
		RawToken:  login.RawToken,
		ExpiresAt: login.ExpiresAt,
	}, nil
}
