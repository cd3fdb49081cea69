package domain

// Seller is the descriptor denormalized onto books and order snapshots.
// Columns are aliased to the dotted form (seller_name AS "seller.name")
// so sqlx scans into the nested struct.
type Seller struct {
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Image string `db:"image" json:"image"`
}

type Book struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Category    string  `db:"category" json:"category"`
	Price       float64 `db:"price" json:"price"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Image       string  `db:"image" json:"image"`
	Seller      Seller  `db:"seller" json:"seller"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
	UpdatedAt   string  `db:"updated_at" json:"updated_at,omitempty"`
}

// Order is materialized only by the checkout workflow once the gateway
// reports the session complete. TransactionID is the gateway's
// payment-intent identifier and is unique across orders.
type Order struct {
	ID            string  `db:"id" json:"id"`
	BookID        string  `db:"book_id" json:"bookId"`
	TransactionID string  `db:"transaction_id" json:"transactionId"`
	Customer      string  `db:"customer_email" json:"customer"`
	Status        string  `db:"status" json:"status"`
	Name          string  `db:"name" json:"name"`
	Category      string  `db:"category" json:"category"`
	Price         float64 `db:"price" json:"price"`
	Image         string  `db:"image" json:"image"`
	Seller        Seller  `db:"seller" json:"seller"`
	Quantity      int     `db:"quantity" json:"quantity"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}

type User struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name"`
	Image     string `db:"image" json:"image"`
	Role      string `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"created_at"`
	LastLogin string `db:"last_login" json:"last_loggedIn"`
}

type SellerRequest struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type WishlistEntry struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	BookID    string `db:"book_id" json:"bookId"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type Review struct {
	ID        string `db:"id" json:"id"`
	BookID    string `db:"book_id" json:"bookId"`
	Email     string `db:"email" json:"email"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"review"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int    `db:"count" json:"count"`
}

type Stats struct {
	TotalBooks     int             `json:"totalBooks"`
	TotalCustomers int             `json:"totalCustomers"`
	TotalSellers   int             `json:"totalSellers"`
	TotalOrders    int             `json:"totalOrders"`
	TotalRevenue   float64         `json:"totalRevenue"`
	Categories     []CategoryCount `json:"categories"`
}
