package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/infrastructure/repository"
	"github.com/vendafacil/vendafacil-api/internal/config"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

// RecurringExpensesService gerencia o agendamento da virada mensal das
// despesas recorrentes: cada despesa marcada como recorrente gera uma cópia
// em aberto no mês corrente.
type RecurringExpensesService struct {
	scheduler   *gocron.Scheduler
	config      config.RecurringExpenses
	expenseRepo repository.ExpenseRepository
	rollRunning bool
	rollMutex   sync.Mutex
	lastRollAt  time.Time
	now         func() time.Time
}

// NewRecurringExpensesService cria uma nova instância do serviço de despesas recorrentes
func NewRecurringExpensesService(
	expenseRepo repository.ExpenseRepository,
	appConfig *config.Config,
) *RecurringExpensesService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.RecurringExpenses.CronSchedule,
		"enabled":       appConfig.RecurringExpenses.Enabled,
	}).Info("Configuração do agendador de despesas recorrentes carregada")

	return &RecurringExpensesService{
		scheduler:   scheduler,
		config:      appConfig.RecurringExpenses,
		expenseRepo: expenseRepo,
		now:         time.Now,
	}
}

// Start inicia o agendador
func (s *RecurringExpensesService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Virada de despesas recorrentes desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de despesas recorrentes")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RollExpenses()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar virada de despesas recorrentes: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de despesas recorrentes")
		s.scheduler.Stop()
	}()

	return nil
}

// RollExpenses materializa as despesas recorrentes do mês corrente. Despesas
// que já possuem uma cópia no mês (mesmo nome, mesmo mês de vencimento) são
// ignoradas, o que torna a execução idempotente dentro do mês.
func (s *RecurringExpensesService) RollExpenses() {
	s.rollMutex.Lock()
	if s.rollRunning {
		s.rollMutex.Unlock()
		logrus.Info("Virada de despesas recorrentes já em andamento, ignorando")
		return
	}
	s.rollRunning = true
	s.rollMutex.Unlock()

	defer func() {
		s.rollMutex.Lock()
		s.rollRunning = false
		s.rollMutex.Unlock()
	}()

	startTime := s.now()
	logrus.Info("Iniciando virada mensal de despesas recorrentes")

	templates, err := s.expenseRepo.ListRecurring()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar despesas recorrentes")
		return
	}

	if len(templates) == 0 {
		logrus.Info("Nenhuma despesa recorrente encontrada")
		return
	}

	all, err := s.expenseRepo.List()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar despesas para deduplicação")
		return
	}

	created := 0
	for _, template := range templates {
		if s.hasCopyInCurrentMonth(all, template) {
			continue
		}

		monthly, err := s.buildMonthlyCopy(template)
		if err != nil {
			logrus.WithError(err).WithField("expense_id", template.ID).
				Error("Erro ao montar cópia mensal da despesa recorrente")
			continue
		}

		if err := s.expenseRepo.Create(monthly); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"expense_id":   template.ID,
				"expense_name": template.Name,
			}).Error("Erro ao criar cópia mensal da despesa recorrente")
			continue
		}

		created++
	}

	s.lastRollAt = s.now()
	logrus.WithFields(logrus.Fields{
		"templates": len(templates),
		"created":   created,
		"duration":  time.Since(startTime).String(),
	}).Info("Virada mensal de despesas recorrentes concluída")
}

// hasCopyInCurrentMonth verifica se já existe, no mês corrente, uma despesa
// com o mesmo nome do modelo recorrente (incluindo o próprio modelo, quando
// criado neste mês).
func (s *RecurringExpensesService) hasCopyInCurrentMonth(all []*domain.Expense, template *domain.Expense) bool {
	currentMonth := s.now().Format("2006-01")

	for _, expense := range all {
		if expense.Name != template.Name {
			continue
		}
		if expense.BucketDate().Format("2006-01") == currentMonth {
			return true
		}
	}

	return false
}

// buildMonthlyCopy monta a cópia em aberto do mês corrente, preservando o dia
// de vencimento do modelo (limitado ao último dia do mês quando necessário).
func (s *RecurringExpensesService) buildMonthlyCopy(template *domain.Expense) (*domain.Expense, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador da despesa: %w", err)
	}

	now := s.now()
	dueDate := s.dueDateInCurrentMonth(template, now)

	return &domain.Expense{
		ID:         id,
		Name:       template.Name,
		Amount:     template.Amount,
		DueDate:    &dueDate,
		Paid:       false,
		Recurring:  false,
		CustomerID: template.CustomerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (s *RecurringExpensesService) dueDateInCurrentMonth(template *domain.Expense, now time.Time) string {
	day := template.BucketDate().Day()

	lastDay := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location()).Format(time.DateOnly)
}
