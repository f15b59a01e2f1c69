package transaction

// Transaction is the API response model for a ledger record.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID            string `json:"id" doc:"Transaction UUID"`
	ProductID     string `json:"productId" doc:"Product UUID"`
	ProductName   string `json:"productName" doc:"Product name at purchase time"`
	Quantity      int64  `json:"quantity" doc:"Units bought"`
	TotalPrice    int64  `json:"totalPrice" doc:"Price paid"`
	TotalLabel    string `json:"totalLabel" doc:"Formatted price paid"`
	MoneyInserted int64  `json:"moneyInserted" doc:"Money inserted"`
	Change        int64  `json:"change" doc:"Change returned"`
	Timestamp     string `json:"timestamp" doc:"RFC3339 purchase time"`
}
