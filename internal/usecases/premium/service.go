package premium

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/infrastructure/repository"
	"github.com/vendafacil/vendafacil-api/internal/config"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

var (
	ErrInvalidLicense = errors.New("licença premium inválida ou expirada")
)

// Checker é a visão mínima consumida pelo motor de relatórios
type Checker interface {
	IsPremium() (bool, error)
}

type Manager interface {
	Checker
	Activate(licenseToken string) (*domain.StoreSettings, error)
	Deactivate() error
	Status() (*domain.StoreSettings, error)
}

// LicenseClaims são as claims esperadas no token de licença emitido pelo
// backend de cobrança
type LicenseClaims struct {
	Plan string `json:"plan"`
	jwt.RegisteredClaims
}

type Service struct {
	settingsRepo repository.SettingsRepository
	cfg          *config.Config
}

func NewService(settingsRepo repository.SettingsRepository, cfg *config.Config) Manager {
	return &Service{
		settingsRepo: settingsRepo,
		cfg:          cfg,
	}
}

// IsPremium consulta o flag persistido. Erros de leitura rebaixam para
// "não premium" em vez de derrubar a chamada, já que o gate precisa de uma
// resposta booleana.
func (s *Service) IsPremium() (bool, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar o status premium")
		return false, err
	}

	return settings.PremiumActive(time.Now()), nil
}

// Activate valida o token de licença e persiste a assinatura na loja
func (s *Service) Activate(licenseToken string) (*domain.StoreSettings, error) {
	claims := &LicenseClaims{}

	token, err := jwt.ParseWithClaims(licenseToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Premium.LicenseSecret), nil
	})
	if err != nil || !token.Valid {
		logrus.WithError(err).Warn("Token de licença premium rejeitado")
		return nil, ErrInvalidLicense
	}

	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configurações da loja: %w", err)
	}

	now := time.Now()
	if settings == nil {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar identificador das configurações: %w", err)
		}

		settings = &domain.StoreSettings{
			ID:        id,
			CreatedAt: now,
		}
	}

	settings.Premium = true
	if claims.Plan != "" {
		settings.PremiumPlan = &claims.Plan
	}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		settings.PremiumExpiresAt = &expiresAt
	} else {
		settings.PremiumExpiresAt = nil
	}
	settings.UpdatedAt = now

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, fmt.Errorf("erro ao salvar assinatura premium: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"plan":       claims.Plan,
		"expires_at": settings.PremiumExpiresAt,
	}).Info("Assinatura premium ativada")

	return settings, nil
}

// Deactivate remove a assinatura, mantendo o restante das configurações
func (s *Service) Deactivate() error {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return fmt.Errorf("erro ao carregar configurações da loja: %w", err)
	}
	if settings == nil {
		return nil
	}

	settings.Premium = false
	settings.PremiumPlan = nil
	settings.PremiumExpiresAt = nil
	settings.UpdatedAt = time.Now()

	return s.settingsRepo.Save(settings)
}

func (s *Service) Status() (*domain.StoreSettings, error) {
	return s.settingsRepo.Get()
}
