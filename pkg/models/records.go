package models

// Customer is one row of customers.csv.
type Customer struct {
	CustomerID string
	Name       string
	Email      string
	Address    string
}

// Transaction is one row of transactions.csv. Amount stays as text until it
// is written.
type Transaction struct {
	TransactionID   string
	CustomerID      string
	TransactionDate string
	Amount          string
}

// Product is one row of products.csv. Price stays as text until it is written.
type Product struct {
	ProductID   string
	ProductName string
	Category    string
	Price       string
}

// CustomerFromFields builds a Customer from fields ordered as EntityCustomers.Header().
func CustomerFromFields(f []string) Customer {
	return Customer{CustomerID: f[0], Name: f[1], Email: f[2], Address: f[3]}
}

// TransactionFromFields builds a Transaction from fields ordered as EntityTransactions.Header().
func TransactionFromFields(f []string) Transaction {
	return Transaction{TransactionID: f[0], CustomerID: f[1], TransactionDate: f[2], Amount: f[3]}
}

// ProductFromFields builds a Product from fields ordered as EntityProducts.Header().
func ProductFromFields(f []string) Product {
	return Product{ProductID: f[0], ProductName: f[1], Category: f[2], Price: f[3]}
}
