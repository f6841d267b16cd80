package models

// ChatRequest represents an incoming chat turn
type ChatRequest struct {
	UserInput string   `json:"user_input"`
	SessionID string   `json:"session_id,omitempty"` // サーバー側セッションミラー用の任意ID
	Session   *Session `json:"session"`
}

// ChatResponse represents the reply for one chat turn
type ChatResponse struct {
	Response  string   `json:"response"`
	Session   *Session `json:"session"`
	SessionID string   `json:"session_id,omitempty"`
}

// Session is the caller-carried conversation state. It must be echoed back
// unchanged on the next turn; the server keeps no copy unless the optional
// Redis mirror is enabled.
type Session struct {
	Context  string `json:"context"`            // 現在の会話コンテキストタグ
	Category string `json:"category,omitempty"` // レコメンドフローで選択されたカテゴリ
}

// Context tags. The vocabulary is part of the wire contract: the carrier
// round-trips through the caller between turns.
const (
	ContextNone                = ""
	ContextProductAvailability = "product_availability"
	ContextCheckAnotherProduct = "check_another_product"
	ContextTrackOrder          = "track_order"
	ContextCheckAnotherOrder   = "check_another_order"
	ContextFindNearestStore    = "find_nearest_store"
	ContextCheckAnotherStore   = "check_another_location"
	ContextSelectCategory      = "select_category"
	ContextSelectPrice         = "select_price"
	ContextCheckAnotherPrice   = "check_another_category_or_price"
	ContextCustomerSupport     = "customer_support"
	ContextCheckAnotherInquiry = "check_another_inquiry"
)

// Product represents one row of the products table
type Product struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"` // 生の価格文字列（通貨記号・桁区切りを含む）
	Stock       int    `json:"stock"`
}

// Order represents one row of the orders table.
// ProductID is NOT unique here: several orders may reference the same product.
type Order struct {
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	OrderDate string `json:"order_date"`
	Status    string `json:"status"`
}

// Store represents one row of the stores table
type Store struct {
	City      string `json:"city"`
	StoreName string `json:"store_name"`
	Address   string `json:"address"`
	State     string `json:"state"`
	Phone     string `json:"phone"`
	Hours     string `json:"hours"`
}

// Customer represents one row of the customers table.
// The dialog never reads it; it is loaded for the admin stats surface.
type Customer struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	City       string `json:"city"`
}

// SupportInquiry is one appended record of the support log sink
type SupportInquiry struct {
	RecordID   string `json:"record_id"`
	Timestamp  string `json:"timestamp"`
	CustomerID string `json:"customer_id"`
	Inquiry    string `json:"inquiry"`
}
