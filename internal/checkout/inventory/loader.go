package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tillpoint/checkout/internal/checkout/model"
	errx "github.com/tillpoint/checkout/internal/core/error"
	logx "github.com/tillpoint/checkout/pkg/logger"
)

const (
	colName = iota
	colPrice
	colQuantity
	colExpiry
	colShipping
	colWeight
	colProductionDate
	colExpirationDays

	requiredColumns = colWeight + 1
	dateLayout      = "2006-01-02"
)

// LoadFile reads a catalog CSV from disk.
func LoadFile(path string) ([]model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	products, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	logx.Info().Str("path", path).Int("products", len(products)).Msg("catalog loaded")
	return products, nil
}

// LoadCSV parses a catalog with a header row followed by one product per
// row: name, price, quantity, expiryPolicy, shippingPolicy, weightKg and the
// optional productionDate (YYYY-MM-DD) and expirationDays.
func LoadCSV(r io.Reader) ([]model.Product, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errx.Newf(errx.KindInvalidInput, "catalog is empty")
		}
		return nil, errx.New(err, errx.KindInvalidInput, "read catalog header")
	}

	var products []model.Product
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errx.New(err, errx.KindInvalidInput, "read catalog")
		}
		line, _ := cr.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		p, err := parseRecord(rec)
		if err != nil {
			return nil, errx.New(err, errx.KindInvalidInput, fmt.Sprintf("catalog line %d", line))
		}
		products = append(products, p)
	}
	return products, nil
}

func parseRecord(rec []string) (model.Product, error) {
	if len(rec) < requiredColumns {
		return model.Product{}, fmt.Errorf("expected at least %d fields, got %d", requiredColumns, len(rec))
	}
	name := strings.TrimSpace(rec[colName])
	if name == "" {
		return model.Product{}, fmt.Errorf("name is required")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(rec[colPrice]))
	if err != nil {
		return model.Product{}, fmt.Errorf("price: %w", err)
	}
	if price.IsNegative() {
		return model.Product{}, fmt.Errorf("price must not be negative")
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rec[colQuantity]))
	if err != nil {
		return model.Product{}, fmt.Errorf("quantity: %w", err)
	}
	if qty < 0 {
		return model.Product{}, fmt.Errorf("quantity must not be negative")
	}
	expiry, err := model.ParseExpiryPolicy(rec[colExpiry])
	if err != nil {
		return model.Product{}, err
	}
	shipping, err := model.ParseShippingPolicy(rec[colShipping])
	if err != nil {
		return model.Product{}, err
	}
	weight, err := decimal.NewFromString(strings.TrimSpace(rec[colWeight]))
	if err != nil {
		return model.Product{}, fmt.Errorf("weight: %w", err)
	}

	p := model.NewProduct(name, price, qty, expiry, shipping, weight)

	if len(rec) > colProductionDate && strings.TrimSpace(rec[colProductionDate]) != "" {
		d, err := time.Parse(dateLayout, strings.TrimSpace(rec[colProductionDate]))
		if err != nil {
			return model.Product{}, fmt.Errorf("production date: %w", err)
		}
		p.ProductionDate = &d
	}
	if len(rec) > colExpirationDays && strings.TrimSpace(rec[colExpirationDays]) != "" {
		days, err := strconv.Atoi(strings.TrimSpace(rec[colExpirationDays]))
		if err != nil {
			return model.Product{}, fmt.Errorf("expiration days: %w", err)
		}
		p.ExpirationDays = &days
	}
	return p, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
