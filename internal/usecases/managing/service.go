package managing

import (
	"errors"
	"fmt"
	"time"

	"github.com/vendafacil/vendafacil-api/infrastructure/repository"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

var (
	ErrInvalidProduct  = errors.New("Produto inválido: nome e preço são obrigatórios")
	ErrInvalidCustomer = errors.New("Cliente inválido: nome é obrigatório")
	ErrInvalidExpense  = errors.New("Despesa inválida: nome e valor são obrigatórios")
	ErrNotFound        = errors.New("Registro não encontrado")
)

// Manager concentra o CRUD de catálogo, clientes, despesas e configurações
// da loja usado pelos handlers da API.
type Manager interface {
	CreateProduct(product *domain.Product) error
	UpdateProduct(product *domain.Product) error
	DeleteProduct(id string) error
	GetProduct(id string) (*domain.Product, error)
	ListProducts() ([]*domain.Product, error)

	CreateCustomer(customer *domain.Customer) error
	UpdateCustomer(customer *domain.Customer) error
	DeleteCustomer(id string) error
	GetCustomer(id string) (*domain.Customer, error)
	ListCustomers() ([]*domain.Customer, error)

	CreateExpense(expense *domain.Expense) error
	UpdateExpense(expense *domain.Expense) error
	DeleteExpense(id string) error
	GetExpense(id string) (*domain.Expense, error)
	ListExpenses() ([]*domain.Expense, error)

	GetSettings() (*domain.StoreSettings, error)
	SaveSettings(settings *domain.StoreSettings) (*domain.StoreSettings, error)
}

type Service struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	expenseRepo  repository.ExpenseRepository
	settingsRepo repository.SettingsRepository
}

func NewService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	expenseRepo repository.ExpenseRepository,
	settingsRepo repository.SettingsRepository,
) Manager {
	return &Service{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		expenseRepo:  expenseRepo,
		settingsRepo: settingsRepo,
	}
}

func (s *Service) CreateProduct(product *domain.Product) error {
	if product.Name == "" || product.Price < 0 {
		return ErrInvalidProduct
	}

	if product.Type == "" {
		product.Type = domain.ProductTypeProduct
	}

	if product.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar identificador do produto: %w", err)
		}
		product.ID = id
	}

	return s.productRepo.Create(product)
}

func (s *Service) UpdateProduct(product *domain.Product) error {
	if product.Name == "" || product.Price < 0 {
		return ErrInvalidProduct
	}

	current, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}

	return s.productRepo.Update(product)
}

func (s *Service) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

func (s *Service) GetProduct(id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

func (s *Service) ListProducts() ([]*domain.Product, error) {
	return s.productRepo.List()
}

func (s *Service) CreateCustomer(customer *domain.Customer) error {
	if customer.Name == "" {
		return ErrInvalidCustomer
	}

	if customer.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar identificador do cliente: %w", err)
		}
		customer.ID = id
	}

	return s.customerRepo.Create(customer)
}

func (s *Service) UpdateCustomer(customer *domain.Customer) error {
	if customer.Name == "" {
		return ErrInvalidCustomer
	}

	current, err := s.customerRepo.GetByID(customer.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}

	return s.customerRepo.Update(customer)
}

func (s *Service) DeleteCustomer(id string) error {
	return s.customerRepo.Delete(id)
}

func (s *Service) GetCustomer(id string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return customer, nil
}

func (s *Service) ListCustomers() ([]*domain.Customer, error) {
	return s.customerRepo.List()
}

func (s *Service) CreateExpense(expense *domain.Expense) error {
	if expense.Name == "" || expense.Amount <= 0 {
		return ErrInvalidExpense
	}

	if expense.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar identificador da despesa: %w", err)
		}
		expense.ID = id
	}

	// Vencimento vazio quer dizer "vence na criação" e é guardado como NULL
	if expense.DueDate != nil && *expense.DueDate == "" {
		expense.DueDate = nil
	}

	now := time.Now()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	return s.expenseRepo.Create(expense)
}

func (s *Service) UpdateExpense(expense *domain.Expense) error {
	if expense.Name == "" || expense.Amount <= 0 {
		return ErrInvalidExpense
	}

	current, err := s.expenseRepo.GetByID(expense.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}

	// Marca o pagamento quando a despesa passa de aberta para paga
	if expense.Paid && !current.Paid && expense.PaidAt == nil {
		now := time.Now()
		expense.PaidAt = &now
	}
	if !expense.Paid {
		expense.PaidAt = nil
	}

	if expense.DueDate != nil && *expense.DueDate == "" {
		expense.DueDate = nil
	}

	expense.CreatedAt = current.CreatedAt
	expense.UpdatedAt = time.Now()

	return s.expenseRepo.Update(expense)
}

func (s *Service) DeleteExpense(id string) error {
	return s.expenseRepo.Delete(id)
}

func (s *Service) GetExpense(id string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrNotFound
	}
	return expense, nil
}

func (s *Service) ListExpenses() ([]*domain.Expense, error) {
	return s.expenseRepo.List()
}

func (s *Service) GetSettings() (*domain.StoreSettings, error) {
	return s.settingsRepo.Get()
}

// SaveSettings atualiza os dados cadastrais da loja preservando o estado
// premium, que só muda pelos fluxos de licença.
func (s *Service) SaveSettings(settings *domain.StoreSettings) (*domain.StoreSettings, error) {
	current, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if current == nil {
		if settings.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return nil, fmt.Errorf("erro ao gerar identificador das configurações: %w", err)
			}
			settings.ID = id
		}
		settings.Premium = false
		settings.PremiumPlan = nil
		settings.PremiumExpiresAt = nil
		settings.CreatedAt = now
		settings.UpdatedAt = now

		if err := s.settingsRepo.Save(settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	current.StoreName = settings.StoreName
	current.OwnerName = settings.OwnerName
	current.PixKey = settings.PixKey
	current.UpdatedAt = now

	if err := s.settingsRepo.Save(current); err != nil {
		return nil, err
	}
	return current, nil
}
