package openmrsdto

// CurrentInsuranceID walks admission -> insurancePolicy -> insurance and
// returns the insurance id the global bill currently carries.
func (g *GlobalBill) CurrentInsuranceID() (int, bool) {
	if g == nil || g.Admission == nil || g.Admission.InsurancePolicy == nil || g.Admission.InsurancePolicy.Insurance == nil {
		return 0, false
	}
	return g.Admission.InsurancePolicy.Insurance.InsuranceID, true
}

// PolicyCardNumber returns the card number denormalized onto the bill at
// creation time, if the backend recorded one.
func (c *Consommation) PolicyCardNumber() string {
	if c == nil || c.PatientBill == nil {
		return ""
	}
	return c.PatientBill.PolicyIDNumber
}

// RecordedInsuranceName returns the insurance name snapshot on the bill.
func (c *Consommation) RecordedInsuranceName() string {
	if c == nil || c.PatientBill == nil {
		return ""
	}
	return c.PatientBill.InsuranceName
}

// PatientShareAmount returns the backend-computed, insurance-adjusted amount
// due from the patient, or 0 when the backend omitted it.
func (c *Consommation) PatientShareAmount() float64 {
	if c == nil || c.PatientBill == nil {
		return 0
	}
	return c.PatientBill.Amount
}

// PaidAmount sums the recorded payments on the bill's patient share.
func (c *Consommation) PaidAmount() float64 {
	if c == nil || c.PatientBill == nil {
		return 0
	}
	var total float64
	for _, payment := range c.PatientBill.Payments {
		total += payment.AmountPaid
	}
	return total
}

// BilledTotal is the raw, insurance-unadjusted item total.
func (c *Consommation) BilledTotal() float64 {
	if c == nil {
		return 0
	}
	var total float64
	for _, item := range c.BillItems {
		total += item.Quantity * item.UnitPrice
	}
	return total
}

// IsPaid reports the backend's paid flag for the bill's patient share.
func (c *Consommation) IsPaid() bool {
	return c != nil && c.PatientBill != nil && c.PatientBill.IsPaid
}

// DepartmentName returns the owning department's display name, if present.
func (c *Consommation) DepartmentName() string {
	if c == nil || c.Department == nil {
		return ""
	}
	return c.Department.Name
}

// HasRate reports whether the insurance record carries a defined rate.
// Absence of rate means full patient liability, but callers must log it as a
// data-quality problem instead of assuming the record is correct.
func (i *Insurance) HasRate() bool {
	return i != nil && i.Rate != nil
}

// RateValue returns the covered-share percentage, 0 when undefined.
func (i *Insurance) RateValue() float64 {
	if !i.HasRate() {
		return 0
	}
	return *i.Rate
}
