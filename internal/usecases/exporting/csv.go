package exporting

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
)

// Tabelas cobertas pela exportação, na ordem de importação que respeita as
// chaves estrangeiras
var exportTables = []string{"products", "customers", "sales", "sale_items", "expenses", "store_settings"}

// ErrUnknownTable indica uma tabela fora da lista de exportação
var ErrUnknownTable = fmt.Errorf("Tabela desconhecida para exportação")

// Colunas coagidas para número na importação
var numericColumns = map[string]bool{
	"price":      true,
	"stock":      true,
	"min_stock":  true,
	"whatsapp":   true,
	"paid":       true,
	"recurring":  true,
	"quantity":   true,
	"unit_price": true,
	"total":      true,
	"amount":     true,
	"premium":    true,
}

func validExportTable(table string) bool {
	for _, t := range exportTables {
		if t == table {
			return true
		}
	}
	return false
}

// TableCSV exporta uma tabela como CSV. Devolve o nome sugerido do arquivo
// e o conteúdo.
func (s *Service) TableCSV(table string) (string, string, error) {
	if err := s.checkPremium(); err != nil {
		return "", "", err
	}

	if !validExportTable(table) {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	content, err := s.dumpTableCSV(table)
	if err != nil {
		return "", "", err
	}

	timestamp := strings.NewReplacer(":", "-", ".", "-").Replace(s.now().UTC().Format("2006-01-02T15:04:05.000Z"))
	filename := fmt.Sprintf("%s_%s.csv", table, timestamp)

	return filename, content, nil
}

// DatabaseJSON exporta a base inteira: um JSON com o CSV de cada tabela
func (s *Service) DatabaseJSON() (string, string, error) {
	if err := s.checkPremium(); err != nil {
		return "", "", err
	}

	exports := make(map[string]string, len(exportTables))
	for _, table := range exportTables {
		content, err := s.dumpTableCSV(table)
		if err != nil {
			return "", "", err
		}
		exports[table] = content
	}

	payload, err := jsoniter.MarshalIndent(exports, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("erro ao serializar exportação: %w", err)
	}

	timestamp := strings.NewReplacer(":", "-", ".", "-").Replace(s.now().UTC().Format("2006-01-02T15:04:05.000Z"))
	filename := fmt.Sprintf("database_export_%s.json", timestamp)

	return filename, string(payload), nil
}

func (s *Service) dumpTableCSV(table string) (string, error) {
	rows, err := s.conn.Queryx("SELECT * FROM " + table)
	if err != nil {
		return "", fmt.Errorf("erro ao ler a tabela %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("erro ao ler colunas da tabela %s: %w", table, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return "", err
	}

	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return "", fmt.Errorf("erro ao escanear a tabela %s: %w", table, err)
		}

		record := make([]string, len(values))
		for i, v := range values {
			record[i] = cellString(v)
		}

		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ImportDatabase restaura um despejo gerado por DatabaseJSON. Devolve o
// total de linhas inseridas.
func (s *Service) ImportDatabase(content []byte) (int, error) {
	if err := s.checkPremium(); err != nil {
		return 0, err
	}

	exports := map[string]string{}
	if err := jsoniter.Unmarshal(content, &exports); err != nil {
		return 0, fmt.Errorf("erro ao interpretar o arquivo de importação: %w", err)
	}

	total := 0
	for _, table := range exportTables {
		csvString, ok := exports[table]
		if !ok || csvString == "" {
			continue
		}

		n, err := s.insertCSVRows(table, csvString)
		if err != nil {
			return total, err
		}
		total += n
	}

	return total, nil
}

// ImportTableCSV insere as linhas de um CSV em uma única tabela
func (s *Service) ImportTableCSV(table string, csvData []byte) (int, error) {
	if err := s.checkPremium(); err != nil {
		return 0, err
	}

	if !validExportTable(table) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	return s.insertCSVRows(table, string(csvData))
}

func (s *Service) insertCSVRows(table, csvString string) (int, error) {
	r := csv.NewReader(strings.NewReader(csvString))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("erro ao interpretar CSV da tabela %s: %w", table, err)
	}
	if len(records) < 2 {
		return 0, nil
	}

	columns := records[0]

	inserted := 0
	for _, record := range records[1:] {
		values := make([]interface{}, len(columns))
		for i, column := range columns {
			raw := ""
			if i < len(record) {
				raw = strings.TrimSpace(record[i])
			}
			values[i] = coerceValue(column, raw)
		}

		query, args, err := squirrel.
			Insert(table).
			Columns(columns...).
			Values(values...).
			ToSql()
		if err != nil {
			return inserted, fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := s.conn.Exec(query, args...); err != nil {
			return inserted, fmt.Errorf("erro ao importar linha na tabela %s: %w", table, err)
		}
		inserted++
	}

	return inserted, nil
}

func coerceValue(column, raw string) interface{} {
	if raw == "" || raw == "null" || raw == "undefined" {
		return nil
	}
	if numericColumns[column] {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return raw
}
