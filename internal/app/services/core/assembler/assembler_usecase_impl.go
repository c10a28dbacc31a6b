package assembler

import (
	"context"
	"sync"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/utils"

	"go.uber.org/zap"
)

type invoiceAssembler struct {
	InvoiceRepository contracts.InvoiceRepository
	PatientRepository contracts.PatientRepository
	InsurerRepository contracts.InsurerRepository
	ClinicRepository  contracts.ClinicRepository
	LineGenerator     contracts.LineGenerator
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	invoiceAssemblerInstance contracts.InvoiceAssembler
	onceInvoiceAssembler     sync.Once
)

func NewInvoiceAssembler(
	invoiceRepository contracts.InvoiceRepository,
	patientRepository contracts.PatientRepository,
	insurerRepository contracts.InsurerRepository,
	clinicRepository contracts.ClinicRepository,
	lineGenerator contracts.LineGenerator,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.InvoiceAssembler {
	onceInvoiceAssembler.Do(func() {
		if lineGenerator == nil {
			lineGenerator = DefaultLineGenerator
		}
		invoiceAssemblerInstance = &invoiceAssembler{
			InvoiceRepository: invoiceRepository,
			PatientRepository: patientRepository,
			InsurerRepository: insurerRepository,
			ClinicRepository:  clinicRepository,
			LineGenerator:     lineGenerator,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
	})
	return invoiceAssemblerInstance
}

func (uc *invoiceAssembler) Assemble(ctx context.Context, input contracts.AssembleInput) (*contracts.AssembledInvoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceAssembler.Assemble called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, input.InvoiceID),
		zap.String(constvars.LoggingRecordIDKey, input.RecordID),
	)

	clinic, err := uc.ClinicRepository.GetClinicSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.InvoiceID != "" {
		return uc.assembleFromInvoice(ctx, input, clinic)
	}
	return uc.assembleFromRecord(ctx, input, clinic)
}

func (uc *invoiceAssembler) assembleFromInvoice(ctx context.Context, input contracts.AssembleInput, clinic *models.ClinicSettings) (*contracts.AssembledInvoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	invoice, err := uc.InvoiceRepository.FindInvoiceByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, exceptions.ErrInvoiceNotFound(nil)
	}

	patientID := resolveString(input.PatientID, invoice.PatientID)
	patient, err := uc.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	insurer, err := uc.findInsurer(ctx, resolveString(invoice.InsurerID, patient.InsurerID))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	overrides := input.Overrides
	invoiceDate := resolveTime(now, overrides.InvoiceDate, invoice.InvoiceDate)
	dueDate := resolveTime(uc.defaultDueDate(invoiceDate, clinic), overrides.DueDate, invoice.DueDate)
	providerGLN := resolveString(invoice.ProviderGLN, clinic.ProviderGLN, clinic.GLN)

	lines, err := uc.resolveLines(ctx, invoice, overrides, invoiceDate, providerGLN)
	if err != nil {
		uc.Log.Error("invoiceAssembler.Assemble error no resolvable service lines",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingInvoiceIDKey, invoice.ID),
		)
		return nil, err
	}

	canonical := &models.CanonicalInvoice{
		InvoiceNumber:  resolveString(overrides.InvoiceNumber, invoice.InvoiceNumber, utils.GenerateInvoiceNumber(now)),
		InvoiceDate:    invoiceDate,
		DueDate:        dueDate,
		TreatmentStart: resolveTime(earliestServiceDate(lines, invoiceDate), invoice.TreatmentStart),
		TreatmentEnd:   resolveTime(latestServiceDate(lines, invoiceDate), invoice.TreatmentEnd),
		Biller:         uc.billerParty(clinic),
		Provider:       uc.providerParty(clinic, providerGLN),
		Insurer:        insurerParty(insurer),
		Patient:        patientParty(patient),
		LawType:        resolveLawType(overrides.LawType, invoice.LawType),
		BillingType:    resolveBillingType(overrides.BillingType, invoice.BillingType),
		ReminderLevel:  resolveInt(invoice.ReminderLevel, overrides.ReminderLevel),
		AccidentRef:    resolveString(overrides.AccidentRef, invoice.AccidentRef),
		CaseNumber:     resolveString(overrides.CaseNumber, invoice.CaseNumber),
		Lines:          lines,
		Diagnoses:      invoice.Diagnoses,
		Total:          invoice.Total,
		Currency:       resolveString(invoice.Currency, constvars.DefaultCurrency),
	}
	uc.warnOnTotalDrift(requestID, canonical)

	return &contracts.AssembledInvoice{
		Invoice: canonical,
		Refs: contracts.LifecycleRefs{
			InvoiceID: invoice.ID,
			PatientID: patient.ID,
			InsurerID: insurerID(insurer),
		},
		Insurer: insurer,
		Clinic:  clinic,
	}, nil
}

func (uc *invoiceAssembler) assembleFromRecord(ctx context.Context, input contracts.AssembleInput, clinic *models.ClinicSettings) (*contracts.AssembledInvoice, error) {
	record, err := uc.InvoiceRepository.FindRecordByID(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrInvoiceNotFound(nil)
	}

	patient, err := uc.findPatient(ctx, resolveString(input.PatientID, record.PatientID))
	if err != nil {
		return nil, err
	}

	insurer, err := uc.findInsurer(ctx, patient.InsurerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	overrides := input.Overrides
	invoiceDate := resolveTime(now, overrides.InvoiceDate, record.Date)
	providerGLN := resolveString(record.ProviderGLN, clinic.ProviderGLN, clinic.GLN)
	serviceDate := resolveTime(invoiceDate, record.Date)

	duration := uc.resolveDuration(record, overrides)
	lines := uc.LineGenerator(duration, serviceDate, providerGLN)
	if len(lines) == 0 {
		return nil, exceptions.ErrIncompleteInvoiceData(nil)
	}

	canonical := &models.CanonicalInvoice{
		InvoiceNumber:  resolveString(overrides.InvoiceNumber, utils.GenerateInvoiceNumber(now)),
		InvoiceDate:    invoiceDate,
		DueDate:        resolveTime(uc.defaultDueDate(invoiceDate, clinic), overrides.DueDate),
		TreatmentStart: serviceDate,
		TreatmentEnd:   serviceDate,
		Biller:         uc.billerParty(clinic),
		Provider:       uc.providerParty(clinic, providerGLN),
		Insurer:        insurerParty(insurer),
		Patient:        patientParty(patient),
		LawType:        resolveLawType(overrides.LawType, record.LawType),
		BillingType:    resolveBillingType(overrides.BillingType, ""),
		ReminderLevel:  resolveInt(0, overrides.ReminderLevel),
		AccidentRef:    overrides.AccidentRef,
		CaseNumber:     overrides.CaseNumber,
		Lines:          lines,
		Currency:       constvars.DefaultCurrency,
	}

	return &contracts.AssembledInvoice{
		Invoice: canonical,
		Refs: contracts.LifecycleRefs{
			PatientID: patient.ID,
			InsurerID: insurerID(insurer),
		},
		Insurer: insurer,
		Clinic:  clinic,
	}, nil
}

func (uc *invoiceAssembler) resolveLines(ctx context.Context, invoice *models.Invoice, overrides contracts.AssembleOverrides, invoiceDate time.Time, providerGLN string) ([]models.ServiceLine, error) {
	if len(invoice.LineItems) > 0 {
		return mapLineItems(invoice.LineItems, invoiceDate, providerGLN), nil
	}

	if invoice.RecordID != "" {
		record, err := uc.InvoiceRepository.FindRecordByID(ctx, invoice.RecordID)
		if err != nil {
			return nil, err
		}
		if record != nil {
			serviceDate := resolveTime(invoiceDate, record.Date)
			if record.ProviderGLN != "" {
				providerGLN = record.ProviderGLN
			}
			lines := uc.LineGenerator(uc.resolveDuration(record, overrides), serviceDate, providerGLN)
			if len(lines) > 0 {
				return lines, nil
			}
		}
	}

	if overrides.DurationMinutes > 0 {
		lines := uc.LineGenerator(overrides.DurationMinutes, invoiceDate, providerGLN)
		if len(lines) > 0 {
			return lines, nil
		}
	}

	return nil, exceptions.ErrIncompleteInvoiceData(nil)
}

// resolveDuration picks the consultation duration: caller override, then the
// explicitly captured value, then a duration token parsed out of the record
// content, then the documented default.
func (uc *invoiceAssembler) resolveDuration(record *models.Record, overrides contracts.AssembleOverrides) int {
	if overrides.DurationMinutes > 0 {
		return overrides.DurationMinutes
	}
	if record.DurationMinutes > 0 {
		return record.DurationMinutes
	}
	if minutes, ok := utils.ParseConsultationDuration(record.Content); ok {
		return minutes
	}
	return constvars.DefaultConsultationDuration
}

func (uc *invoiceAssembler) findPatient(ctx context.Context, patientID string) (*models.Patient, error) {
	if patientID == "" {
		return nil, exceptions.ErrPatientNotFound(nil)
	}
	patient, err := uc.PatientRepository.FindPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}
	return patient, nil
}

// findPatient's insurer counterpart tolerates absence: a missing insurer
// reference yields nil and the canonical invoice falls back to the default
// insurer identity.
func (uc *invoiceAssembler) findInsurer(ctx context.Context, insurerID string) (*models.Insurer, error) {
	if insurerID == "" {
		return nil, nil
	}
	insurer, err := uc.InsurerRepository.FindInsurerByID(ctx, insurerID)
	if err != nil {
		return nil, err
	}
	return insurer, nil
}

func (uc *invoiceAssembler) defaultDueDate(invoiceDate time.Time, clinic *models.ClinicSettings) time.Time {
	days := clinic.PaymentPeriodDays
	if days <= 0 {
		days = constvars.DefaultPaymentPeriodDays
	}
	return invoiceDate.AddDate(0, 0, days)
}

func (uc *invoiceAssembler) billerParty(clinic *models.ClinicSettings) models.Party {
	return models.Party{
		GLN:    clinic.GLN,
		Name:   clinic.Name,
		Street: clinic.Street,
		ZIP:    clinic.ZIP,
		City:   clinic.City,
		Canton: resolveString(clinic.Canton, constvars.DefaultCanton),
		Phone:  clinic.Phone,
		Email:  clinic.Email,
	}
}

func (uc *invoiceAssembler) providerParty(clinic *models.ClinicSettings, providerGLN string) models.Party {
	party := uc.billerParty(clinic)
	party.GLN = providerGLN
	if clinic.ProviderName != "" {
		party.Name = clinic.ProviderName
	}
	return party
}

// warnOnTotalDrift flags a mismatch between the explicit upstream total and
// the sum of line amounts; the explicit total still wins.
func (uc *invoiceAssembler) warnOnTotalDrift(requestID string, invoice *models.CanonicalInvoice) {
	if invoice.Total == 0 {
		return
	}
	diff := invoice.Total - invoice.LineTotal()
	if diff < 0 {
		diff = -diff
	}
	if diff > 0.005 {
		uc.Log.Warn("invoiceAssembler.Assemble explicit total differs from line total",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingInvoiceNoKey, invoice.InvoiceNumber),
			zap.Float64("explicitTotal", invoice.Total),
			zap.Float64("lineTotal", invoice.LineTotal()),
		)
	}
}

func insurerParty(insurer *models.Insurer) models.Party {
	if insurer == nil {
		return models.Party{GLN: constvars.DefaultInsurerGLN}
	}
	return models.Party{
		GLN:    resolveString(insurer.GLN, constvars.DefaultInsurerGLN),
		Name:   insurer.Name,
		Street: insurer.Street,
		ZIP:    insurer.ZIP,
		City:   insurer.City,
	}
}

func patientParty(patient *models.Patient) models.PatientParty {
	return models.PatientParty{
		Party: models.Party{
			Name:       patient.FamilyName,
			GivenName:  patient.GivenName,
			FamilyName: patient.FamilyName,
			Street:     patient.Street,
			ZIP:        patient.ZIP,
			City:       patient.City,
			Canton:     resolveString(patient.Canton, constvars.DefaultCanton),
		},
		BirthDate: patient.BirthDate,
		Sex:       patient.Sex,
		SSN:       patient.SSN,
	}
}

func insurerID(insurer *models.Insurer) string {
	if insurer == nil {
		return ""
	}
	return insurer.ID
}

func resolveLawType(sources ...models.LawType) models.LawType {
	for _, source := range sources {
		if source != "" {
			return source
		}
	}
	return models.LawTypeHealth
}

func resolveBillingType(sources ...models.BillingType) models.BillingType {
	for _, source := range sources {
		if source != "" {
			return source
		}
	}
	return models.BillingTypeTP
}

func earliestServiceDate(lines []models.ServiceLine, fallback time.Time) time.Time {
	earliest := fallback
	for _, line := range lines {
		if !line.DateOfService.IsZero() && line.DateOfService.Before(earliest) {
			earliest = line.DateOfService
		}
	}
	return earliest
}

func latestServiceDate(lines []models.ServiceLine, fallback time.Time) time.Time {
	latest := fallback
	for _, line := range lines {
		if line.DateOfService.After(latest) {
			latest = line.DateOfService
		}
	}
	return latest
}
