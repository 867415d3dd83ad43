package premium

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/vendafacil/vendafacil-api/infrastructure/repository/mocks"
	"github.com/vendafacil/vendafacil-api/internal/config"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"go.uber.org/mock/gomock"
)

const testSecret = "segredo-de-teste"

func testConfig() *config.Config {
	return &config.Config{
		Premium: config.Premium{LicenseSecret: testSecret},
	}
}

func signLicense(t *testing.T, plan string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, LicenseClaims{
		Plan: plan,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func TestService_IsPremium(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settingsRepo := mocks.NewMockSettingsRepository(ctrl)
	service := NewService(settingsRepo, testConfig())

	t.Run("sem configurações gravadas não é premium", func(t *testing.T) {
		settingsRepo.EXPECT().Get().Return(nil, nil)

		ok, err := service.IsPremium()
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("assinatura ativa", func(t *testing.T) {
		expires := time.Now().Add(24 * time.Hour)
		settingsRepo.EXPECT().Get().Return(&domain.StoreSettings{
			Premium:          true,
			PremiumExpiresAt: &expires,
		}, nil)

		ok, err := service.IsPremium()
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("assinatura expirada", func(t *testing.T) {
		expires := time.Now().Add(-time.Hour)
		settingsRepo.EXPECT().Get().Return(&domain.StoreSettings{
			Premium:          true,
			PremiumExpiresAt: &expires,
		}, nil)

		ok, err := service.IsPremium()
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestService_Activate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settingsRepo := mocks.NewMockSettingsRepository(ctrl)
	service := NewService(settingsRepo, testConfig())

	t.Run("licença válida ativa a assinatura", func(t *testing.T) {
		expires := time.Now().Add(30 * 24 * time.Hour)
		token := signLicense(t, "mensal", expires)

		settingsRepo.EXPECT().Get().Return(&domain.StoreSettings{ID: "s1", StoreName: "Mercadinho"}, nil)
		settingsRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(s *domain.StoreSettings) error {
			assert.True(t, s.Premium)
			assert.Equal(t, "mensal", *s.PremiumPlan)
			assert.NotNil(t, s.PremiumExpiresAt)
			assert.Equal(t, "Mercadinho", s.StoreName)
			return nil
		})

		settings, err := service.Activate(token)
		assert.NoError(t, err)
		assert.True(t, settings.Premium)
	})

	t.Run("licença expirada é rejeitada", func(t *testing.T) {
		token := signLicense(t, "mensal", time.Now().Add(-time.Hour))

		_, err := service.Activate(token)
		assert.ErrorIs(t, err, ErrInvalidLicense)
	})

	t.Run("assinatura errada é rejeitada", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, LicenseClaims{Plan: "anual"})
		signed, err := token.SignedString([]byte("outro-segredo"))
		assert.NoError(t, err)

		_, err = service.Activate(signed)
		assert.ErrorIs(t, err, ErrInvalidLicense)
	})

	t.Run("cria as configurações quando a loja ainda não tem", func(t *testing.T) {
		token := signLicense(t, "anual", time.Now().Add(365*24*time.Hour))

		settingsRepo.EXPECT().Get().Return(nil, nil)
		settingsRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(s *domain.StoreSettings) error {
			assert.NotEmpty(t, s.ID)
			assert.True(t, s.Premium)
			return nil
		})

		settings, err := service.Activate(token)
		assert.NoError(t, err)
		assert.NotNil(t, settings)
	})
}

func TestService_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settingsRepo := mocks.NewMockSettingsRepository(ctrl)
	service := NewService(settingsRepo, testConfig())

	plan := "mensal"
	expires := time.Now().Add(time.Hour)
	settingsRepo.EXPECT().Get().Return(&domain.StoreSettings{
		ID:               "s1",
		Premium:          true,
		PremiumPlan:      &plan,
		PremiumExpiresAt: &expires,
	}, nil)
	settingsRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(s *domain.StoreSettings) error {
		assert.False(t, s.Premium)
		assert.Nil(t, s.PremiumPlan)
		assert.Nil(t, s.PremiumExpiresAt)
		return nil
	})

	assert.NoError(t, service.Deactivate())
}
