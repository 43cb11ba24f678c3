package invoice

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ListingField is the top-level response field holding the invoice array.
const ListingField = "invoiceListingDtos"

type listingEnvelope struct {
	Listing *[]json.RawMessage `json:"invoiceListingDtos"`
}

type vendorInformationDTO struct {
	VendorName string `json:"vendorName"`
	VendorCode string `json:"vendorCode"`
	GSTIN      string `json:"gstin"`
	SiteID     string `json:"siteId"`
}

// invoiceDTO is the wire shape shared by both categories. Fields absent from
// one category simply stay empty.
type invoiceDTO struct {
	VendorName        string                `json:"vendorName"`
	InvoiceNumber     string                `json:"invoiceNumber"`
	InvoiceStatus     string                `json:"invoiceStatus"`
	DueDate           string                `json:"dueDate"`
	InvoiceDifficulty string                `json:"invoiceDifficulty"`
	TotalAmount       Amount                `json:"totalAmount"`
	VendorInformation *vendorInformationDTO `json:"vendorInformation"`
	PONumbers         StringList            `json:"poNumbers"`
	InvoiceID         string                `json:"invoiceId"`
	Currency          string                `json:"currency"`
}

// RejectedRecord describes a listing element that was skipped.
type RejectedRecord struct {
	Index  int
	Reason string
}

// decodeListing validates the envelope and decodes each element. Elements that
// are not objects, carry wrong-typed fields, or lack an invoice number are
// rejected individually; only an unusable envelope fails the whole response.
func decodeListing(op string, category Category, body []byte) ([]invoiceDTO, []RejectedRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil, NewSchemaError(op, category, "", ErrMalformedBody)
	}

	var envelope listingEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == ListingField {
			return nil, nil, NewSchemaError(op, category, ListingField,
				fmt.Errorf("%w: expected array, got %s", ErrMissingListing, typeErr.Value))
		}
		return nil, nil, NewSchemaError(op, category, "", fmt.Errorf("%w: %v", ErrMalformedBody, err))
	}
	if envelope.Listing == nil {
		return nil, nil, NewSchemaError(op, category, ListingField, ErrMissingListing)
	}

	raw := *envelope.Listing
	records := make([]invoiceDTO, 0, len(raw))
	var rejected []RejectedRecord

	for i, element := range raw {
		element = bytes.TrimSpace(element)
		if len(element) == 0 || element[0] != '{' {
			rejected = append(rejected, RejectedRecord{Index: i, Reason: "element is not an object"})
			continue
		}

		var dto invoiceDTO
		if err := json.Unmarshal(element, &dto); err != nil {
			rejected = append(rejected, RejectedRecord{Index: i, Reason: err.Error()})
			continue
		}
		if strings.TrimSpace(dto.InvoiceNumber) == "" {
			rejected = append(rejected, RejectedRecord{Index: i, Reason: "missing invoiceNumber"})
			continue
		}

		records = append(records, dto)
	}

	return records, rejected, nil
}

func (d invoiceDTO) summary() Summary {
	vendor := d.VendorName
	if vendor == "" && d.VendorInformation != nil {
		// Older payloads nest the vendor name.
		vendor = d.VendorInformation.VendorName
	}
	return Summary{
		VendorName:        vendor,
		InvoiceNumber:     d.InvoiceNumber,
		InvoiceStatus:     d.InvoiceStatus,
		DueDate:           d.DueDate,
		InvoiceDifficulty: d.InvoiceDifficulty,
		TotalAmount:       d.TotalAmount,
	}
}

func (d invoiceDTO) toInvoice() Invoice {
	inv := Invoice{Summary: d.summary()}
	if d.VendorInformation != nil {
		inv.VendorInformation = VendorInformation{
			VendorCode: d.VendorInformation.VendorCode,
			GSTIN:      d.VendorInformation.GSTIN,
			SiteID:     d.VendorInformation.SiteID,
		}
	}
	return inv
}

func (d invoiceDTO) toProcessed() ProcessedInvoice {
	return ProcessedInvoice{
		Summary:   d.summary(),
		PONumbers: string(d.PONumbers),
		InvoiceID: d.InvoiceID,
		Currency:  d.Currency,
	}
}
