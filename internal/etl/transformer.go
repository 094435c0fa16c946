package etl

import (
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BartekS5/retail-etl/pkg/models"
	"github.com/BartekS5/retail-etl/pkg/utils"
)

// MissingDate replaces a transaction date that cannot be normalized.
const MissingDate = "missing"

// FilterCustomers keeps the customers whose email passes IsValidEmail, in
// their original order.
func FilterCustomers(in []models.Customer) []models.Customer {
	out := make([]models.Customer, 0, len(in))
	for _, c := range in {
		if IsValidEmail(c.Email) {
			out = append(out, c)
		}
	}
	return out
}

// DedupeTransactions drops rows that repeat an earlier row field for field.
// The first occurrence wins and order is preserved.
func DedupeTransactions(in []models.Transaction) []models.Transaction {
	seen := make(map[uint64][]models.Transaction, len(in))
	out := make([]models.Transaction, 0, len(in))
	for _, t := range in {
		h := xxh3.HashString(rowKey(t))
		dup := false
		for _, prev := range seen[h] {
			if prev == t {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], t)
		out = append(out, t)
	}
	return out
}

// rowKey joins the fields with the ASCII unit separator, which does not occur
// in CSV text.
func rowKey(t models.Transaction) string {
	return strings.Join([]string{t.TransactionID, t.CustomerID, t.TransactionDate, t.Amount}, "\x1f")
}

// FilterTransactions keeps the transactions whose date passes IsValidDate.
func FilterTransactions(in []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(in))
	for _, t := range in {
		if IsValidDate(t.TransactionDate) {
			out = append(out, t)
		}
	}
	return out
}

// NormalizeTransactionDates rewrites every date as YYYY-MM-DD. A date that
// does not parse becomes MissingDate; the row is kept.
func NormalizeTransactionDates(in []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(in))
	for i, t := range in {
		if d, ok := utils.NormalizeDate(t.TransactionDate); ok {
			t.TransactionDate = d
		} else {
			t.TransactionDate = MissingDate
		}
		out[i] = t
	}
	return out
}

// NormalizeProducts upper-cases product names and categories using full
// Unicode case mapping ("straße" becomes "STRASSE").
func NormalizeProducts(in []models.Product) []models.Product {
	upper := cases.Upper(language.Und)
	out := make([]models.Product, len(in))
	for i, p := range in {
		p.ProductName = upper.String(p.ProductName)
		p.Category = upper.String(p.Category)
		out[i] = p
	}
	return out
}

// TransformCustomers is the customer pipeline's transform step.
func TransformCustomers(in []models.Customer) []models.Customer {
	return FilterCustomers(in)
}

// TransformTransactions dedupes, drops rows with an invalid date and
// normalizes the remaining dates, in that order.
func TransformTransactions(in []models.Transaction) []models.Transaction {
	return NormalizeTransactionDates(FilterTransactions(DedupeTransactions(in)))
}

// TransformProducts is the product pipeline's transform step.
func TransformProducts(in []models.Product) []models.Product {
	return NormalizeProducts(in)
}
