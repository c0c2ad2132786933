package constvars

// Billing backend resource paths, relative to the configured base URL.
const (
	ResourceConsommation    = "/consommation"
	ResourceGlobalBill      = "/globalBill"
	ResourceInsurance       = "/insurance"
	ResourceInsurancePolicy = "/insurancePolicy"
)

const (
	URLQueryParamGlobalBillID    = "globalBillId"
	URLQueryParamInsuranceCardNo = "insuranceCardNo"
	URLQueryParamRepresentation  = "v"
	URLQueryParamLimit           = "limit"
	URLQueryParamOrder           = "order"

	RepresentationFull = "full"
	OrderDescending    = "desc"
)

const (
	URLParamConsommationID = "consommationId"
	URLParamGlobalBillID   = "globalBillId"
)

// Known signatures of the backend's response-serialization defect. A create
// that fails with one of these may still have persisted the record, so the
// failure is ambiguous and recovery is attempted.
const (
	DefectMarkerInternalField  = "patientServiceBill"
	DefectMarkerExceptionClass = "ConversionException"
)
