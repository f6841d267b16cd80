package dataset

import (
	"testing"

	"retailx-assistant/pkg/models"

	"github.com/stretchr/testify/assert"
)

func testTables() *Tables {
	return &Tables{
		Products: []models.Product{
			{ProductID: 101, ProductName: "Smartphone X", Description: "Flagship phone", Category: "Electronics", Price: "₹74,999.00", Stock: 25},
			{ProductID: 102, ProductName: "Laptop Pro", Description: "Work laptop", Category: "Electronics", Price: "₹1,20,000", Stock: 10},
			{ProductID: 103, ProductName: "Cotton Kurta", Description: "Festive wear", Category: "Clothing", Price: "₹1,499", Stock: 80},
			{ProductID: 104, ProductName: "Steel Bottle", Description: "1L bottle", Category: "Home", Price: "₹599", Stock: 200},
		},
		Orders: []models.Order{
			{ProductID: 101, Quantity: 2, OrderDate: "2024-02-01", Status: "Shipped"},
			{ProductID: 101, Quantity: 5, OrderDate: "2024-03-15", Status: "Delivered"},
			{ProductID: 103, Quantity: 1, OrderDate: "2024-02-20", Status: "Processing"},
		},
		Stores: []models.Store{
			{City: "Mumbai", StoreName: "RetailX Andheri", Address: "12 Link Road", State: "Maharashtra", Phone: "022-1234", Hours: "9am-9pm"},
			{City: "Navi Mumbai", StoreName: "RetailX Vashi", Address: "3 Palm Beach Road", State: "Maharashtra", Phone: "022-5678", Hours: "10am-8pm"},
			{City: "Delhi", StoreName: "RetailX CP", Address: "7 Connaught Place", State: "Delhi", Phone: "011-9999", Hours: "9am-9pm"},
		},
	}
}

func TestFindProductByName(t *testing.T) {
	tables := testTables()

	// 大文字小文字を無視した部分一致
	p := tables.FindProductByName("phone")
	assert.NotNil(t, p)
	assert.Equal(t, "Smartphone X", p.ProductName)

	p = tables.FindProductByName("LAPTOP")
	assert.NotNil(t, p)
	assert.Equal(t, 102, p.ProductID)

	// 一致なし
	assert.Nil(t, tables.FindProductByName("television"))
}

func TestFindOrderByProductID(t *testing.T) {
	tables := testTables()

	// 同じProductIDを持つ注文が複数ある場合、最初の行だけが返る
	o := tables.FindOrderByProductID(101)
	assert.NotNil(t, o)
	assert.Equal(t, 2, o.Quantity)
	assert.Equal(t, "Shipped", o.Status)

	assert.Nil(t, tables.FindOrderByProductID(999))
}

func TestFindStoreByCity(t *testing.T) {
	tables := testTables()

	// "mumbai" は部分一致で最初の行（Mumbai）を返す
	s := tables.FindStoreByCity("mumbai")
	assert.NotNil(t, s)
	assert.Equal(t, "RetailX Andheri", s.StoreName)

	s = tables.FindStoreByCity("delhi")
	assert.NotNil(t, s)
	assert.Equal(t, "RetailX CP", s.StoreName)

	assert.Nil(t, tables.FindStoreByCity("Chennai"))
}

func TestFilterProductsByCategory(t *testing.T) {
	tables := testTables()

	filtered := tables.FilterProductsByCategory("electronics")
	assert.Len(t, filtered, 2)
	// テーブル順が維持される
	assert.Equal(t, 101, filtered[0].ProductID)
	assert.Equal(t, 102, filtered[1].ProductID)

	assert.Empty(t, tables.FilterProductsByCategory("Toys"))
}

func TestCategories(t *testing.T) {
	tables := testTables()

	// 重複を除き、最初に現れた順
	assert.Equal(t, []string{"Electronics", "Clothing", "Home"}, tables.Categories())
}

func TestNormalizePrice(t *testing.T) {
	cases := []struct {
		raw      string
		expected float64
	}{
		{"1999", 1999},
		{"1,999.00", 1999},
		{"₹74,999.00", 74999},
		{"?2,500.50", 2500.5}, // 文字化けした通貨記号
		{"  ₹ 599 ", 599},
	}
	for _, tc := range cases {
		v, err := NormalizePrice(tc.raw)
		assert.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.expected, v, "raw=%q", tc.raw)
	}

	// 数値に還元できない文字列はバリデーションエラー。
	// 数字混じりのゴミ（"500rs" など）も500として通さない
	for _, raw := range []string{"", "abc", "₹", "1.2.3", "-100", "500rs", "5 stars", "abc123", "N/A"} {
		_, err := NormalizePrice(raw)
		assert.Error(t, err, "raw=%q", raw)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	}
}
