package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/infrastructure/database/sqlite"
	"github.com/vendafacil/vendafacil-api/infrastructure/repository"
	"github.com/vendafacil/vendafacil-api/internal/api"
	"github.com/vendafacil/vendafacil-api/internal/config"
	"github.com/vendafacil/vendafacil-api/internal/scheduler"
	"github.com/vendafacil/vendafacil-api/internal/usecases/exporting"
	"github.com/vendafacil/vendafacil-api/internal/usecases/managing"
	"github.com/vendafacil/vendafacil-api/internal/usecases/premium"
	"github.com/vendafacil/vendafacil-api/internal/usecases/reporting"
	"github.com/vendafacil/vendafacil-api/internal/usecases/selling"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)
	defer conn.Close()

	productRepo := repository.NewProductRepository(conn)
	customerRepo := repository.NewCustomerRepository(conn)
	saleRepo := repository.NewSaleRepository(conn)
	expenseRepo := repository.NewExpenseRepository(conn)
	settingsRepo := repository.NewSettingsRepository(conn)
	reportRepo := repository.NewReportRepository(conn)

	premiumService := premium.NewService(settingsRepo, cfg)
	reportService := reporting.NewService(reportRepo, premiumService, cfg.Reports)
	exportService := exporting.NewService(conn, premiumService, reportService, cfg.Export)
	storeService := managing.NewService(productRepo, customerRepo, expenseRepo, settingsRepo)
	saleService := selling.NewService(saleRepo, productRepo)

	// Agendador da virada mensal de despesas recorrentes
	recurringExpensesService := scheduler.NewRecurringExpensesService(expenseRepo, cfg)
	if err := recurringExpensesService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de despesas recorrentes")
	} else {
		logrus.Info("Agendador de despesas recorrentes iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportService,
		exportService,
		storeService,
		saleService,
		premiumService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// dbconn abre o banco SQLite e aplica as migrações
func dbconn(ctx context.Context, dbConfig config.Database) *sqlite.Connection {
	conn, err := sqlite.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o banco SQLite")
	}

	if err := sqlite.Migrate(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao migrar o banco SQLite")
	}

	logrus.Info("Conexão com SQLite estabelecida com sucesso")
	return conn
}
