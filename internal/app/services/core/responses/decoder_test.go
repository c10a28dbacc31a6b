package responses

import (
	"testing"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rejectedResponse = `
<response>
  <payload type="response" subtype="status" response_timestamp="1767000000"/>
  <invoice request_id="2026-0042" request_date="2026-03-10"/>
  <biller ean_party="7601000000001">
    <company><companyname>Praxis Test</companyname></company>
    <postal><street>Teststrasse 1</street><zip>8000</zip><city>Zurich</city></postal>
  </biller>
  <patient ssn="756.1234.5678.90" birthdate="1990-04-02" gender="female">
    <person salutation="Frau"><givenname>Anna</givenname><familyname>Muster</familyname></person>
    <postal><street>Weg 2</street><zip>8004</zip><city>Zurich</city></postal>
  </patient>
  <rejected explanation="tariff validation failed" status_in="10" status_out="40">
    <error code="1001" text="invalid tariff code" error_value="99.9999" valid_value="00.0010"/>
    <error code="1002" text="missing responsible"/>
  </rejected>
  <balance amount="150.00" amount_due="150.00" amount_paid="0.00" currency="CHF"/>
</response>`

func TestDecode_RejectedResponse(t *testing.T) {
	decoded, err := Decode([]byte(rejectedResponse))
	require.NoError(t, err)

	assert.Equal(t, "response", decoded.RequestType)
	assert.Equal(t, "status", decoded.RequestSubtype)
	require.NotNil(t, decoded.Timestamp)
	assert.Equal(t, int64(1767000000), decoded.Timestamp.Unix())

	require.NotNil(t, decoded.InvoiceRef)
	assert.Equal(t, "2026-0042", decoded.InvoiceRef.ID)

	require.NotNil(t, decoded.Biller)
	assert.Equal(t, "7601000000001", decoded.Biller.GLN)
	assert.Equal(t, "Praxis Test", decoded.Biller.Address.CompanyName)
	assert.Equal(t, "8000", decoded.Biller.Address.ZIP)

	require.NotNil(t, decoded.Patient)
	assert.Equal(t, "756.1234.5678.90", decoded.Patient.SSN)
	assert.Equal(t, "Anna", decoded.Patient.Address.GivenName)
	assert.Equal(t, "Muster", decoded.Patient.Address.FamilyName)
	assert.Equal(t, "Frau", decoded.Patient.Address.Salutation)

	require.NotNil(t, decoded.Rejected)
	assert.Nil(t, decoded.Accepted)
	assert.Nil(t, decoded.Pending)
	assert.Equal(t, "tariff validation failed", decoded.Rejected.Explanation)
	assert.Equal(t, "40", decoded.Rejected.StatusOut)
	require.Len(t, decoded.Rejected.Errors, 2)
	assert.Equal(t, "1001", decoded.Rejected.Errors[0].Code)
	assert.Equal(t, "99.9999", decoded.Rejected.Errors[0].ErrorValue)

	require.NotNil(t, decoded.Balance)
	assert.InDelta(t, 150.0, decoded.Balance.Amount, 0.0001)
	assert.Equal(t, "CHF", decoded.Balance.Currency)

	outcome, ok := decoded.Outcome()
	require.True(t, ok)
	assert.Equal(t, models.ResponseOutcomeRejected, outcome)
}

func TestDecode_AcceptedMinimal(t *testing.T) {
	decoded, err := Decode([]byte(`<invoice request_id="INV-7"/><accepted explanation="processed" status_out="20"/>`))
	require.NoError(t, err)

	require.NotNil(t, decoded.Accepted)
	assert.Equal(t, "processed", decoded.Accepted.Explanation)
	assert.Nil(t, decoded.Rejected)
	assert.Nil(t, decoded.Pending)
	assert.Nil(t, decoded.Balance)
	assert.Nil(t, decoded.Biller)

	outcome, ok := decoded.Outcome()
	require.True(t, ok)
	assert.Equal(t, models.ResponseOutcomeAccepted, outcome)
}

func TestDecode_PendingWithMessages(t *testing.T) {
	decoded, err := Decode([]byte(`
<pending explanation="queued at insurer" status_out="15">
  <message code="210" text="forwarded"/>
</pending>`))
	require.NoError(t, err)

	require.NotNil(t, decoded.Pending)
	require.Len(t, decoded.Pending.Messages, 1)
	assert.Equal(t, "210", decoded.Pending.Messages[0].Code)
}

func TestDecode_NoOutcomeBlock(t *testing.T) {
	decoded, err := Decode([]byte(`<invoice request_id="INV-7"/>`))
	require.NoError(t, err)

	_, ok := decoded.Outcome()
	assert.False(t, ok)
}

func TestDecode_EmptyContentRejected(t *testing.T) {
	_, err := Decode(nil)
	assert.Error(t, err)

	_, err = Decode([]byte("   \n\t "))
	assert.Error(t, err)
}

func TestDecode_UnknownContentTolerated(t *testing.T) {
	decoded, err := Decode([]byte(`<totally><unrelated stuff="yes"/></totally>`))
	require.NoError(t, err)
	assert.Nil(t, decoded.InvoiceRef)
	assert.Nil(t, decoded.Balance)
}

func TestDecode_BalanceCurrencyDefaults(t *testing.T) {
	decoded, err := Decode([]byte(`<balance amount="99.95"/>`))
	require.NoError(t, err)
	require.NotNil(t, decoded.Balance)
	assert.Equal(t, "CHF", decoded.Balance.Currency)
	assert.Zero(t, decoded.Balance.AmountDue)
}
