package requests

type CreateConsommation struct {
	GlobalBillID  int              `json:"global_bill_id" validate:"required,gt=0"`
	DepartmentID  int              `json:"department_id" validate:"required,gt=0"`
	BeneficiaryID int              `json:"beneficiary_id" validate:"required,gt=0"`
	BillItems     []CreateBillItem `json:"bill_items" validate:"required,min=1,dive"`
}

type CreateBillItem struct {
	ServiceID     int     `json:"service_id" validate:"required,gt=0"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	UnitPrice     float64 `json:"unit_price" validate:"gte=0"`
	DrugFrequency string  `json:"drug_frequency,omitempty"`
}

type ResolveRates struct {
	ConsommationID int `json:"consommation_id" validate:"required,gt=0"`
	// GlobalBillID is optional; when present the parent's current policy is
	// tried before the bill's own snapshot.
	GlobalBillID int `json:"global_bill_id" validate:"gte=0"`
}

type PollPaymentStatus struct {
	ConsommationIDs []int `json:"consommation_ids" validate:"required,min=1"`
}
