package constvars

const (
	MongoCollectionInvoices          = "invoices"
	MongoCollectionRecords           = "records"
	MongoCollectionPatients          = "patients"
	MongoCollectionInsurers          = "insurers"
	MongoCollectionClinicSettings    = "clinic_settings"
	MongoCollectionSubmissions       = "submissions"
	MongoCollectionSubmissionHistory = "submission_history"
)
