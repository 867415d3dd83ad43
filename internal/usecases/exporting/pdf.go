package exporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/sirupsen/logrus"
	"github.com/vendafacil/vendafacil-api/infrastructure/database/sqlite"
	"github.com/vendafacil/vendafacil-api/internal/config"
	"github.com/vendafacil/vendafacil-api/internal/domain"
	"github.com/vendafacil/vendafacil-api/internal/usecases/premium"
	"github.com/vendafacil/vendafacil-api/internal/usecases/reporting"
	"github.com/vendafacil/vendafacil-api/pkg/utils"
)

// Teto de linhas do RFV na tabela do PDF. O relatório completo pode trazer
// centenas de clientes e o documento ficaria impraticável.
const rfvPDFRowLimit = 100

var ErrExportPremium = fmt.Errorf("Funcionalidade premium: exportar dados.")

// Exporter produz os relatórios em PDF e os despejos CSV/JSON da base
type Exporter interface {
	ReportPDF(reportID string, opts domain.ReportOptions) (string, error)
	ReportHTML(reportID string, opts domain.ReportOptions) (string, error)
	TableCSV(table string) (string, string, error)
	DatabaseJSON() (string, string, error)
	ImportDatabase(content []byte) (int, error)
	ImportTableCSV(table string, csvData []byte) (int, error)
}

type Service struct {
	conn    *sqlite.Connection
	premium premium.Checker
	reports reporting.Engine
	cfg     config.Export
	now     func() time.Time
}

func NewService(conn *sqlite.Connection, premiumChecker premium.Checker, reports reporting.Engine, cfg config.Export) Exporter {
	return &Service{
		conn:    conn,
		premium: premiumChecker,
		reports: reports,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *Service) checkPremium() error {
	ok, err := s.premium.IsPremium()
	if err != nil || !ok {
		return ErrExportPremium
	}
	return nil
}

// ReportHTML monta o documento completo do relatório: gráfico, resumo e
// tabela dentro do shell padrão
func (s *Service) ReportHTML(reportID string, opts domain.ReportOptions) (string, error) {
	data, err := s.reports.GetReportData(reportID, opts)
	if err != nil {
		return "", err
	}

	now := s.now()

	tableRows := data.Rows
	if reportID == domain.ReportCustomerRFV && len(tableRows) > rfvPDFRowLimit {
		tableRows = tableRows[:rfvPDFRowLimit]
	}

	body := RenderChartHTML(reportID, data.Rows, now) + RenderTable(tableRows)

	return HTMLShell(data.Title, s.periodLabel(opts), now.Format("02/01/2006 15:04"), body), nil
}

// ReportPDF gera o arquivo em disco e devolve o caminho. O nome segue
// {titulo-normalizado}{DDMMYYYY}.pdf.
func (s *Service) ReportPDF(reportID string, opts domain.ReportOptions) (string, error) {
	html, err := s.ReportHTML(reportID, opts)
	if err != nil {
		return "", err
	}

	now := s.now()
	filename := utils.SlugifyTitle(domain.ReportTitle(reportID)) + now.Format("02012006") + ".pdf"
	path := filepath.Join(s.cfg.Dir, filename)

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("erro ao preparar diretório de exportação: %w", err)
	}

	if err := s.writePDF(html, path); err != nil {
		// remove o arquivo parcial, se sobrou algum
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			logrus.WithError(rmErr).WithField("path", path).Warn("Erro ao limpar PDF parcial")
		}
		return "", fmt.Errorf("erro ao gerar PDF do relatório: %w", err)
	}

	return path, nil
}

func (s *Service) writePDF(html, path string) error {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return err
	}

	pdfg.Dpi.Set(150)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.EnableLocalFileAccess.Set(false)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return err
	}

	return pdfg.WriteFile(path)
}

// periodLabel descreve o intervalo consultado no cabeçalho do documento
func (s *Service) periodLabel(opts domain.ReportOptions) string {
	switch opts.Period {
	case domain.PeriodMonthly:
		return "Mês atual"
	case domain.PeriodYearly:
		return "Ano atual"
	}

	period, err := reporting.ResolvePeriod(opts, s.now())
	if err != nil {
		return fmt.Sprintf("%s a %s", opts.Start, opts.End)
	}

	return fmt.Sprintf("%s a %s", period.Start.Format("02/01/2006"), period.End.Format("02/01/2006"))
}
