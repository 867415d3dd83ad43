package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Reports           Reports           `mapstructure:",squash"`
	Premium           Premium           `mapstructure:",squash"`
	Export            Export            `mapstructure:",squash"`
	RecurringExpenses RecurringExpenses `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	Path string `mapstructure:"database_path"`
}

// Reports controla a política de fallback do motor de relatórios. UseMock
// força o motor simulado; FallbackOnEmpty substitui resultados vazios por
// dados simulados para que a UI tenha o que exibir antes da primeira venda.
type Reports struct {
	UseMock         bool `mapstructure:"use_reports_mock"`
	FallbackOnEmpty bool `mapstructure:"reports_fallback_on_empty"`
}

type Premium struct {
	LicenseSecret string `mapstructure:"premium_license_secret"`
}

type Export struct {
	Dir string `mapstructure:"export_dir"`
}

type RecurringExpenses struct {
	CronSchedule string `mapstructure:"recurring_expenses_cron"`
	Enabled      bool   `mapstructure:"recurring_expenses_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_PATH", "venda.db")

	viper.SetDefault("USE_REPORTS_MOCK", false)
	viper.SetDefault("REPORTS_FALLBACK_ON_EMPTY", true)

	viper.SetDefault("PREMIUM_LICENSE_SECRET", "your_license_secret") // ONLY LOCAL

	viper.SetDefault("EXPORT_DIR", os.TempDir())

	viper.SetDefault("RECURRING_EXPENSES_CRON", "0 5 1 * *") // Primeiro dia de cada mês às 5h
	viper.SetDefault("RECURRING_EXPENSES_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
