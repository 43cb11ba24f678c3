package invoice_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"invoicedesk/internal/invoice"
)

// Example demonstrates fetching the inbox invoices and rendering their display values.
func Example() {
	// Load .env file (using godotenv in main)
	// and build the client from config.Load().API.

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := invoice.NewClient(invoice.ClientConfig{
		BaseURL:  "https://invoices.example.com/api",
		UserID:   "user-id",
		ClientID: "client-id",
	})
	if err != nil {
		log.Fatal(err)
	}

	drafts, err := client.FetchDrafts(ctx)
	if err != nil {
		var netErr *invoice.NetworkError
		if errors.As(err, &netErr) {
			log.Fatalf("endpoint unreachable (status %d): %v", netErr.StatusCode, err)
		}
		log.Fatal(err)
	}

	for _, d := range drafts {
		fmt.Printf("%s  %s  %s  %s\n",
			d.DisplayVendor(), d.InvoiceNumber, d.DisplayDueDate(time.Local), d.DisplayAmount())
	}
}

func ExampleFormatAmount() {
	fmt.Println(invoice.FormatAmount(invoice.NewAmount(1234.5)))
	fmt.Println(invoice.FormatAmount(invoice.AmountFromAny("abc")))
	// Output:
	// ₹ 1234.50
	// N/A
}

func ExampleFormatDate() {
	formatted, err := invoice.FormatDate("2024-12-23T00:00:00Z", time.UTC)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(formatted)

	_, err = invoice.FormatDate("next tuesday", time.UTC)
	fmt.Println(errors.Is(err, invoice.ErrUnparseableDate))
	// Output:
	// 23 Dec, 2024
	// true
}

func ExampleDifficultyLabel() {
	fmt.Println(invoice.DifficultyLabel("few-issues"))
	// Output: Few Issues
}
