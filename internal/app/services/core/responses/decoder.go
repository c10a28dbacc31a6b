package responses

import (
	"strconv"
	"strings"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/markupscan"
)

// Decode extracts the fields this pipeline needs from raw response content.
// Missing sections yield nil fields, never errors; only empty input is
// rejected. The extraction is tag-scoped and tolerant, it does not validate
// the wire format.
func Decode(content []byte) (*models.ClearinghouseResponse, error) {
	text := strings.TrimSpace(string(content))
	if text == "" {
		return nil, exceptions.ErrResponseEmptyContent(nil)
	}

	decoded := &models.ClearinghouseResponse{}

	if payload, ok := markupscan.FindElement(text, "payload"); ok {
		decoded.RequestType = payload.AttrOr("type", "")
		decoded.RequestSubtype = payload.AttrOr("subtype", "")
		if ts := payload.AttrOr("response_timestamp", ""); ts != "" {
			decoded.Timestamp = parseEpoch(ts)
		}
	}

	if invoice, ok := markupscan.FindElement(text, "invoice"); ok {
		decoded.InvoiceRef = &models.ResponseInvoiceRef{
			ID:   invoice.AttrOr("request_id", ""),
			Date: invoice.AttrOr("request_date", ""),
		}
	}

	decoded.Biller = decodeParty(text, "biller")
	decoded.Provider = decodeParty(text, "provider")
	decoded.Insurance = decodeParty(text, "insurance")
	decoded.Patient = decodePatient(text)

	if accepted, ok := markupscan.FindElement(text, "accepted"); ok {
		decoded.Accepted = &models.AcceptedBlock{
			ResponseStatusBlock: statusBlock(accepted),
		}
	}
	if rejected, ok := markupscan.FindElement(text, "rejected"); ok {
		decoded.Rejected = &models.RejectedBlock{
			ResponseStatusBlock: statusBlock(rejected),
			Errors:              decodeErrors(rejected.Inner),
		}
	}
	if pending, ok := markupscan.FindElement(text, "pending"); ok {
		decoded.Pending = &models.PendingBlock{
			ResponseStatusBlock: statusBlock(pending),
			Messages:            decodeMessages(pending.Inner),
		}
	}

	if balance, ok := markupscan.FindElement(text, "balance"); ok {
		decoded.Balance = &models.ResponseBalance{
			Amount:     parseAmount(balance.AttrOr("amount", "")),
			AmountDue:  parseAmount(balance.AttrOr("amount_due", "")),
			AmountPaid: parseAmount(balance.AttrOr("amount_paid", "")),
			Currency:   balance.AttrOr("currency", constvars.DefaultCurrency),
		}
	}

	return decoded, nil
}

func statusBlock(element *markupscan.Element) models.ResponseStatusBlock {
	return models.ResponseStatusBlock{
		Explanation: element.AttrOr("explanation", ""),
		StatusIn:    element.AttrOr("status_in", ""),
		StatusOut:   element.AttrOr("status_out", ""),
	}
}

// decodeParty extracts a party block's routing identifier and address. The
// address name comes from the person block when present, else the company
// block; the postal block is read independently of that choice.
func decodeParty(content, name string) *models.ResponseParty {
	element, ok := markupscan.FindElement(content, name)
	if !ok {
		return nil
	}
	return &models.ResponseParty{
		GLN:     element.AttrOr("ean_party", ""),
		Address: decodeAddress(element.Inner),
	}
}

func decodeAddress(inner string) models.ResponseAddress {
	var address models.ResponseAddress

	if person, ok := markupscan.FindElement(inner, "person"); ok {
		address.Salutation = person.AttrOr("salutation", "")
		address.GivenName = innerTextOf(person.Inner, "givenname")
		address.FamilyName = innerTextOf(person.Inner, "familyname")
	} else if company, ok := markupscan.FindElement(inner, "company"); ok {
		address.CompanyName = innerTextOf(company.Inner, "companyname")
		if address.CompanyName == "" {
			address.CompanyName = company.InnerText()
		}
	}

	if postal, ok := markupscan.FindElement(inner, "postal"); ok {
		address.Street = innerTextOf(postal.Inner, "street")
		address.City = innerTextOf(postal.Inner, "city")
		if zip, ok := markupscan.FindElement(postal.Inner, "zip"); ok {
			address.ZIP = zip.InnerText()
		}
	}

	return address
}

func decodePatient(content string) *models.ResponsePatient {
	element, ok := markupscan.FindElement(content, "patient")
	if !ok {
		return nil
	}
	return &models.ResponsePatient{
		SSN:       element.AttrOr("ssn", ""),
		BirthDate: element.AttrOr("birthdate", ""),
		Gender:    element.AttrOr("gender", ""),
		Address:   decodeAddress(element.Inner),
	}
}

func decodeErrors(inner string) []models.ResponseError {
	elements := markupscan.FindElements(inner, "error")
	errors := make([]models.ResponseError, 0, len(elements))
	for _, element := range elements {
		errors = append(errors, models.ResponseError{
			Code:       element.AttrOr("code", ""),
			Text:       element.AttrOr("text", ""),
			ErrorValue: element.AttrOr("error_value", ""),
			ValidValue: element.AttrOr("valid_value", ""),
		})
	}
	return errors
}

func decodeMessages(inner string) []models.ResponseMessage {
	elements := markupscan.FindElements(inner, "message")
	messages := make([]models.ResponseMessage, 0, len(elements))
	for _, element := range elements {
		messages = append(messages, models.ResponseMessage{
			Code: element.AttrOr("code", ""),
			Text: element.AttrOr("text", ""),
		})
	}
	return messages
}

func innerTextOf(content, name string) string {
	if element, ok := markupscan.FindElement(content, name); ok {
		return element.InnerText()
	}
	return ""
}

func parseAmount(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func parseEpoch(value string) *time.Time {
	seconds, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return nil
	}
	parsed := time.Unix(seconds, 0).UTC()
	return &parsed
}
