// Package openmrsdto mirrors the billing backend's REST payloads. The
// backend omits fields freely on older records, so every nested reference is
// a pointer and readers go through the accessor helpers instead of chained
// field access.
package openmrsdto

type Consommation struct {
	ConsommationID int          `json:"consommationId"`
	Department     *Department  `json:"department,omitempty"`
	BillItems      []BillItem   `json:"billItems,omitempty"`
	PatientBill    *PatientBill `json:"patientBill,omitempty"`
	InsuranceBill  *PatientBill `json:"insuranceBill,omitempty"`
	GlobalBill     *GlobalBill  `json:"globalBill,omitempty"`
	PaymentStatus  string       `json:"paymentStatus,omitempty"`
}

type Department struct {
	DepartmentID int    `json:"departmentId"`
	Name         string `json:"name,omitempty"`
}

type BillItem struct {
	Quantity     float64     `json:"quantity"`
	UnitPrice    float64     `json:"unitPrice"`
	PaidQuantity float64     `json:"paidQuantity,omitempty"`
	Service      *ServiceRef `json:"service,omitempty"`
}

type ServiceRef struct {
	ServiceID int    `json:"serviceId"`
	Name      string `json:"name,omitempty"`
}

type PatientBill struct {
	PatientBillID  int       `json:"patientBillId,omitempty"`
	PolicyIDNumber string    `json:"policyIdNumber,omitempty"`
	BeneficiaryName string   `json:"beneficiaryName,omitempty"`
	InsuranceName  string    `json:"insuranceName,omitempty"`
	Amount         float64   `json:"amount,omitempty"`
	IsPaid         bool      `json:"isPaid,omitempty"`
	Status         string    `json:"status,omitempty"`
	Payments       []Payment `json:"payments,omitempty"`
}

type Payment struct {
	AmountPaid float64 `json:"amountPaid"`
}

type GlobalBill struct {
	GlobalBillID int        `json:"globalBillId"`
	BillIdentifier string   `json:"billIdentifier,omitempty"`
	Admission    *Admission `json:"admission,omitempty"`
	Closed       bool       `json:"closed,omitempty"`
	GlobalAmount float64    `json:"globalAmount,omitempty"`
}

type Admission struct {
	AdmissionDate   string           `json:"admissionDate,omitempty"`
	InsurancePolicy *InsurancePolicy `json:"insurancePolicy,omitempty"`
}

type InsurancePolicy struct {
	InsuranceCardNo string     `json:"insuranceCardNo,omitempty"`
	Insurance       *Insurance `json:"insurance,omitempty"`
	Owner           *Person    `json:"owner,omitempty"`
}

type Person struct {
	PersonID int    `json:"personId,omitempty"`
	Display  string `json:"display,omitempty"`
}

type Insurance struct {
	InsuranceID int      `json:"insuranceId"`
	Name        string   `json:"name,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
}

// List envelopes, matching the backend's `{results: [...]}` shape.

type ConsommationListResponse struct {
	Results []Consommation `json:"results"`
}

type InsuranceListResponse struct {
	Results []Insurance `json:"results"`
}

type InsurancePolicyListResponse struct {
	Results []InsurancePolicy `json:"results"`
}
