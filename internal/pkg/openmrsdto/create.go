package openmrsdto

// ConsommationCreateRequest is the POST /consommation payload.
type ConsommationCreateRequest struct {
	GlobalBill  GlobalBillRef      `json:"globalBill"`
	Department  DepartmentRef      `json:"department"`
	Beneficiary BeneficiaryRef     `json:"beneficiary"`
	BillItems   []BillItemCreation `json:"billItems"`
}

type GlobalBillRef struct {
	GlobalBillID int `json:"globalBillId"`
}

type DepartmentRef struct {
	DepartmentID int `json:"departmentId"`
}

type BeneficiaryRef struct {
	BeneficiaryID int `json:"beneficiaryId"`
}

type BillItemCreation struct {
	Service       ServiceIDRef `json:"service"`
	UnitPrice     float64      `json:"unitPrice"`
	Quantity      int          `json:"quantity"`
	DrugFrequency string       `json:"drugFrequency"`
}

type ServiceIDRef struct {
	ServiceID int `json:"serviceId"`
}
