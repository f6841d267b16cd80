package dataset

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"retailx-assistant/pkg/models"

	"github.com/xuri/excelize/v2"
)

// Load reads the four retail tables from dir. Each table is read from
// <name>.csv or <name>.xlsx (first sheet), whichever exists. Columns are
// located by header name, case-insensitively, with common aliases accepted.
// The customers table is optional; the other three are required.
func Load(dir string) (*Tables, error) {
	t := &Tables{}

	products, err := loadTable(dir, "products", parseProduct)
	if err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	t.Products = products

	orders, err := loadTable(dir, "orders", parseOrder)
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	t.Orders = orders

	stores, err := loadTable(dir, "stores", parseStore)
	if err != nil {
		return nil, fmt.Errorf("stores: %w", err)
	}
	t.Stores = stores

	// customersはダイアログから参照されないため任意
	customers, err := loadTable(dir, "customers", parseCustomer)
	if err != nil {
		log.Printf("⚠️ customers table not loaded: %v", err)
	} else {
		t.Customers = customers
	}

	log.Printf("📊 dataset loaded: %d products, %d orders, %d stores, %d customers",
		len(t.Products), len(t.Orders), len(t.Stores), len(t.Customers))
	return t, nil
}

// loadTable reads rows for one table and converts them with parse.
// Rows that fail to parse are skipped with a log line, not fatal.
func loadTable[T any](dir, name string, parse func(header, row []string) (T, error)) ([]T, error) {
	rows, err := readRows(dir, name)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file needs a header row and at least one data row")
	}

	header := normalizeHeader(rows[0])
	var out []T
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		item, err := parse(header, row)
		if err != nil {
			log.Printf("⚠️ %s: skipping row %d: %v", name, i+2, err)
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid rows")
	}
	return out, nil
}

// readRows loads raw rows from <name>.csv or <name>.xlsx under dir.
func readRows(dir, name string) ([][]string, error) {
	csvPath := filepath.Join(dir, name+".csv")
	if _, err := os.Stat(csvPath); err == nil {
		f, err := os.Open(csvPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		return r.ReadAll()
	}

	xlsxPath := filepath.Join(dir, name+".xlsx")
	if _, err := os.Stat(xlsxPath); err == nil {
		f, err := excelize.OpenFile(xlsxPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return f.GetRows(f.GetSheetName(0))
	}

	return nil, fmt.Errorf("neither %s.csv nor %s.xlsx found in %s", name, name, dir)
}

// normalizeHeader lowercases and trims header cells
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

// findIndex finds the index of the first matching candidate in a normalized header
func findIndex(header []string, candidates ...string) int {
	for _, candidate := range candidates {
		for i, h := range header {
			if strings.EqualFold(h, candidate) {
				return i
			}
		}
	}
	return -1
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// cell returns the trimmed value at idx, tolerating short rows
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseProduct(header, row []string) (models.Product, error) {
	idIdx := findIndex(header, "productid", "product_id", "id")
	nameIdx := findIndex(header, "productname", "product_name", "name")
	descIdx := findIndex(header, "description", "desc")
	catIdx := findIndex(header, "category")
	priceIdx := findIndex(header, "price")
	stockIdx := findIndex(header, "stock", "quantity")

	if idIdx == -1 || nameIdx == -1 || catIdx == -1 || priceIdx == -1 || stockIdx == -1 {
		return models.Product{}, fmt.Errorf("required column missing (header: %v)", header)
	}

	id, err := strconv.Atoi(cell(row, idIdx))
	if err != nil {
		return models.Product{}, fmt.Errorf("bad ProductID %q", cell(row, idIdx))
	}
	stock, err := strconv.Atoi(cell(row, stockIdx))
	if err != nil {
		return models.Product{}, fmt.Errorf("bad Stock %q", cell(row, stockIdx))
	}

	return models.Product{
		ProductID:   id,
		ProductName: cell(row, nameIdx),
		Description: cell(row, descIdx),
		Category:    cell(row, catIdx),
		Price:       cell(row, priceIdx),
		Stock:       stock,
	}, nil
}

func parseOrder(header, row []string) (models.Order, error) {
	idIdx := findIndex(header, "productid", "product_id")
	qtyIdx := findIndex(header, "quantity", "qty")
	dateIdx := findIndex(header, "orderdate", "order_date", "date")
	statusIdx := findIndex(header, "status")

	if idIdx == -1 || qtyIdx == -1 || dateIdx == -1 || statusIdx == -1 {
		return models.Order{}, fmt.Errorf("required column missing (header: %v)", header)
	}

	id, err := strconv.Atoi(cell(row, idIdx))
	if err != nil {
		return models.Order{}, fmt.Errorf("bad ProductID %q", cell(row, idIdx))
	}
	qty, err := strconv.Atoi(cell(row, qtyIdx))
	if err != nil {
		return models.Order{}, fmt.Errorf("bad Quantity %q", cell(row, qtyIdx))
	}

	return models.Order{
		ProductID: id,
		Quantity:  qty,
		OrderDate: cell(row, dateIdx),
		Status:    cell(row, statusIdx),
	}, nil
}

func parseStore(header, row []string) (models.Store, error) {
	cityIdx := findIndex(header, "city")
	nameIdx := findIndex(header, "storename", "store_name", "name")
	addrIdx := findIndex(header, "address")
	stateIdx := findIndex(header, "state")
	phoneIdx := findIndex(header, "phone")
	hoursIdx := findIndex(header, "hours", "working_hours", "workinghours")

	if cityIdx == -1 || nameIdx == -1 {
		return models.Store{}, fmt.Errorf("required column missing (header: %v)", header)
	}

	return models.Store{
		City:      cell(row, cityIdx),
		StoreName: cell(row, nameIdx),
		Address:   cell(row, addrIdx),
		State:     cell(row, stateIdx),
		Phone:     cell(row, phoneIdx),
		Hours:     cell(row, hoursIdx),
	}, nil
}

func parseCustomer(header, row []string) (models.Customer, error) {
	idIdx := findIndex(header, "customerid", "customer_id", "id")
	nameIdx := findIndex(header, "name", "customername", "customer_name")
	emailIdx := findIndex(header, "email")
	cityIdx := findIndex(header, "city")

	if idIdx == -1 {
		return models.Customer{}, fmt.Errorf("required column missing (header: %v)", header)
	}

	return models.Customer{
		CustomerID: cell(row, idIdx),
		Name:       cell(row, nameIdx),
		Email:      cell(row, emailIdx),
		City:       cell(row, cityIdx),
	}, nil
}
