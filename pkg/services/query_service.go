package services

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"

	"retailx-assistant/pkg/dataset"
	"retailx-assistant/pkg/supportlog"
)

// Fixed reply strings. These are part of the conversation contract and must
// not drift between releases.
const (
	MsgProductNotAvailable = "Sorry, this product is not available."
	MsgInvalidProductID    = "Invalid ProductID. Please enter a numeric ProductID."
	MsgNoOrderFound        = "No order found with the provided ProductID."
	MsgInvalidPrice        = "Invalid price. Please provide a numeric value for the price."
	MsgNoCategoryProducts  = "No products found in this category."
	MsgNoCloseProducts     = "No products found close to your specified price."
	MsgInquiryLogged       = "Your inquiry has been logged. Our team will get back to you soon."
)

// QueryService exposes the read/query operations of the assistant over the
// immutable dataset tables. Apart from the support log sink every operation
// is side-effect free.
type QueryService struct {
	tables *dataset.Tables
	sink   supportlog.Sink
}

// NewQueryService creates a new QueryService
func NewQueryService(tables *dataset.Tables, sink supportlog.Sink) *QueryService {
	return &QueryService{
		tables: tables,
		sink:   sink,
	}
}

// CheckProductAvailability は商品名の部分一致で在庫を回答します。
func (q *QueryService) CheckProductAvailability(productName string) string {
	product := q.tables.FindProductByName(productName)
	if product == nil {
		return MsgProductNotAvailable
	}
	return fmt.Sprintf("%s is available with %d units in stock.", product.ProductName, product.Stock)
}

// TrackOrder はProductIDで注文を検索します。数値でない入力は
// ユーザー向けの案内メッセージとして返します（エラーにはしない）。
func (q *QueryService) TrackOrder(rawID string) string {
	productID, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return MsgInvalidProductID
	}

	order := q.tables.FindOrderByProductID(productID)
	if order == nil {
		return MsgNoOrderFound
	}
	return fmt.Sprintf(
		"Order Details for ProductID %d:\nQuantity: %d\nOrder Date: %s\nStatus: %s\n",
		productID, order.Quantity, order.OrderDate, order.Status,
	)
}

// FindNearestStore は都市名の部分一致で最初の店舗の連絡先を返します。
func (q *QueryService) FindNearestStore(city string) string {
	store := q.tables.FindStoreByCity(city)
	if store == nil {
		return fmt.Sprintf("No store found in %s.", city)
	}
	return fmt.Sprintf(
		"Nearest store:\nStore Name: %s\nAddress: %s, %s, %s\nPhone: %s\nWorking Hours: %s",
		store.StoreName, store.Address, store.City, store.State, store.Phone, store.Hours,
	)
}

// ListCategories returns the distinct categories as a single line,
// in first-seen table order.
func (q *QueryService) ListCategories() string {
	categories := strings.Join(q.tables.Categories(), ", ")
	return fmt.Sprintf("Here are the available categories:\n%s", categories)
}

// priceCandidate is one product ranked by distance to the target price
type priceCandidate struct {
	index    int // 元のテーブル順（安定ソートのタイブレーク確認用）
	price    float64
	distance float64
}

// RecommendByPrice は指定カテゴリの商品を目標価格との差の昇順で5件返します。
// 同額の場合はテーブルの元の並び順を維持します。
func (q *QueryService) RecommendByPrice(category, rawPrice string) string {
	targetPrice, err := dataset.NormalizePrice(rawPrice)
	if err != nil {
		return MsgInvalidPrice
	}

	filtered := q.tables.FilterProductsByCategory(category)
	if len(filtered) == 0 {
		return MsgNoCategoryProducts
	}

	// 価格を正規化できない商品はランキングから除外する
	candidates := make([]priceCandidate, 0, len(filtered))
	for i, p := range filtered {
		price, err := dataset.NormalizePrice(p.Price)
		if err != nil {
			log.Printf("⚠️ recommend: unparsable price for ProductID %d: %v", p.ProductID, err)
			continue
		}
		candidates = append(candidates, priceCandidate{
			index:    i,
			price:    price,
			distance: math.Abs(price - targetPrice),
		})
	}
	if len(candidates) == 0 {
		return MsgNoCloseProducts
	}

	// 安定ソート: 距離が等しい商品はテーブル順を保つ
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}

	blocks := make([]string, 0, len(candidates))
	for _, c := range candidates {
		p := filtered[c.index]
		blocks = append(blocks, fmt.Sprintf(
			"ProductID: %d\nProductName: %s\nDescription: %s\nPrice: ₹%.2f\nStock: %d\nCategory: %s",
			p.ProductID, p.ProductName, p.Description, c.price, p.Stock, p.Category,
		))
	}

	return "Here are the products closest to your specified price:\n" + strings.Join(blocks, "\n\n")
}

// LogSupportInquiry appends one record to the support log sink. Append
// failures are logged and swallowed: the sink is fire-and-forget from the
// dialog's perspective and the acknowledgment is returned regardless.
func (q *QueryService) LogSupportInquiry(customerID, inquiry string) string {
	if err := q.sink.Append(customerID, inquiry); err != nil {
		log.Printf("❌ support log append failed: %v", err)
	}
	return MsgInquiryLogged
}
