package selling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/infrastructure/repository"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

var (
	ErrEmptySale            = errors.New("venda precisa de pelo menos um item")
	ErrInvalidPaymentMethod = errors.New("meio de pagamento inválido")
	ErrUnknownProduct       = errors.New("produto não encontrado")
	ErrSaleNotFound         = errors.New("venda não encontrada")
)

// NewSaleItem é a entrada de um item no fechamento da venda
type NewSaleItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// NewSaleRequest é o payload de fechamento de venda
type NewSaleRequest struct {
	CustomerID    *string       `json:"customerId,omitempty"`
	PaymentMethod string        `json:"paymentMethod"`
	Observation   *string       `json:"observation,omitempty"`
	Items         []NewSaleItem `json:"items"`
}

type Seller interface {
	CreateSale(ctx context.Context, req *NewSaleRequest) (*domain.Sale, error)
	DeleteSale(ctx context.Context, id string) error
	GetSale(id string) (*domain.Sale, error)
	ListSales(limit uint64) ([]*domain.Sale, error)
}

type Service struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) Seller {
	return &Service{
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// CreateSale valida os itens, congela os preços de venda e fecha a venda
// descontando o estoque dos produtos físicos. Serviços não movimentam
// estoque.
func (s *Service) CreateSale(ctx context.Context, req *NewSaleRequest) (*domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptySale
	}
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	saleID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador da venda: %w", err)
	}

	sale := &domain.Sale{
		ID:            saleID,
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
		Observation:   req.Observation,
		CreatedAt:     time.Now(),
	}

	stockDeltas := make(map[string]int)

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantidade inválida para o produto %s", item.ProductID)
		}

		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar produto %s: %w", item.ProductID, err)
		}
		if product == nil {
			return nil, ErrUnknownProduct
		}

		total := utils.RoundWithTwoDecimalPlace(float64(item.Quantity) * product.Price)

		itemID, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar identificador do item da venda: %w", err)
		}

		sale.Items = append(sale.Items, domain.SaleItem{
			ID:        itemID,
			SaleID:    sale.ID,
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Total:     total,
		})
		sale.Total = utils.RoundWithTwoDecimalPlace(sale.Total + total)

		if product.Type == domain.ProductTypeProduct {
			stockDeltas[product.ID] += item.Quantity
		}
	}

	if err := s.saleRepo.CreateWithItems(ctx, sale, stockDeltas); err != nil {
		return nil, fmt.Errorf("erro ao registrar venda: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"sale_id": sale.ID,
		"total":   sale.Total,
		"items":   len(sale.Items),
	}).Info("Venda registrada")

	return sale, nil
}

// DeleteSale exclui a venda devolvendo ao estoque as quantidades dos
// produtos físicos
func (s *Service) DeleteSale(ctx context.Context, id string) error {
	sale, err := s.saleRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("erro ao buscar venda %s: %w", id, err)
	}
	if sale == nil {
		return ErrSaleNotFound
	}

	stockDeltas := make(map[string]int)
	for _, item := range sale.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return fmt.Errorf("erro ao buscar produto %s: %w", item.ProductID, err)
		}
		if product != nil && product.Type == domain.ProductTypeProduct {
			stockDeltas[item.ProductID] += item.Quantity
		}
	}

	if err := s.saleRepo.DeleteWithStockReversal(ctx, id, stockDeltas); err != nil {
		return fmt.Errorf("erro ao excluir venda: %w", err)
	}

	return nil
}

func (s *Service) GetSale(id string) (*domain.Sale, error) {
	sale, err := s.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

func (s *Service) ListSales(limit uint64) ([]*domain.Sale, error) {
	return s.saleRepo.List(limit)
}
