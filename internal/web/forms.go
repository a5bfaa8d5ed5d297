package web

import (
	"net/url"
	"strings"

	"github.com/mgnrega-tools/entrydesk/internal/core"
)

// formField describes one input on an entry or edit form. The templates
// render a datalist-backed text input by default, a select when Options is
// set, and a textarea when Textarea is set.
type formField struct {
	Name     string
	Label    string
	Value    string
	List     string   // datalist id: "blocks", "panchayats", "villages", or ""
	Options  []string // render a <select> with these options when non-nil
	Optional bool
	Textarea bool
	Error    string
}

// setIfPresent overwrites dst only when the form payload actually carries the
// key. Absent keys leave the prior value untouched, which is what gives edit
// its merge semantics.
func setIfPresent(form url.Values, key string, dst *string) {
	if vs, ok := form[key]; ok && len(vs) > 0 {
		*dst = strings.TrimSpace(vs[0])
	}
}

// overlayRegistration applies present form fields onto a registration.
func overlayRegistration(form url.Values, r *core.Registration) {
	setIfPresent(form, "block_name", &r.BlockName)
	setIfPresent(form, "panchayat", &r.Panchayat)
	setIfPresent(form, "fin_year", &r.FinYear)
	setIfPresent(form, "work_code", &r.WorkCode)
	setIfPresent(form, "mason_name", &r.MasonName)
	setIfPresent(form, "reg_no", &r.RegNo)
	setIfPresent(form, "mapped_jc", &r.MappedJC)
	setIfPresent(form, "status_jc", &r.StatusJC)
	setIfPresent(form, "bank_name", &r.BankName)
	setIfPresent(form, "ac_no", &r.AcNo)
	setIfPresent(form, "ifsc", &r.IFSC)
	setIfPresent(form, "wagelist", &r.Wagelist)
	setIfPresent(form, "status_wl", &r.StatusWL)
	setIfPresent(form, "muster_roll", &r.MusterRoll)
}

// overlayJobcardRequest applies present form fields onto a job-card request.
func overlayJobcardRequest(form url.Values, r *core.JobcardRequest) {
	setIfPresent(form, "block_name", &r.BlockName)
	setIfPresent(form, "panchayat", &r.Panchayat)
	setIfPresent(form, "job_card_no", &r.JobCardNo)
	setIfPresent(form, "reason", &r.Reason)
}

// overlayVoucherRequest applies present form fields onto a voucher request.
func overlayVoucherRequest(form url.Values, r *core.VoucherRequest) {
	setIfPresent(form, "block_name", &r.BlockName)
	setIfPresent(form, "panchayat", &r.Panchayat)
	setIfPresent(form, "village", &r.Village)
	setIfPresent(form, "fin_year", &r.FinYear)
	setIfPresent(form, "scheme_name", &r.SchemeName)
	setIfPresent(form, "work_code", &r.WorkCode)
	setIfPresent(form, "bill_no", &r.BillNo)
	setIfPresent(form, "voucher_year", &r.VoucherYear)
	setIfPresent(form, "amount", &r.Amount)
}

// registrationFields builds the field list for the semi-skilled form.
func registrationFields(r core.Registration) []formField {
	years := core.FinancialYears()
	return []formField{
		{Name: "block_name", Label: "Block Name", Value: r.BlockName, List: "blocks"},
		{Name: "panchayat", Label: "Panchayat", Value: r.Panchayat, List: "panchayats"},
		{Name: "fin_year", Label: "Financial Year", Value: r.FinYear, Options: years},
		{Name: "work_code", Label: "Work Code", Value: r.WorkCode},
		{Name: "mason_name", Label: "Mason Name", Value: r.MasonName},
		{Name: "reg_no", Label: "Registration No", Value: r.RegNo},
		{Name: "mapped_jc", Label: "Mapped Job Card No", Value: r.MappedJC},
		{Name: "status_jc", Label: "Job Card Status", Value: r.StatusJC},
		{Name: "bank_name", Label: "Bank Name", Value: r.BankName},
		{Name: "ac_no", Label: "Account No", Value: r.AcNo},
		{Name: "ifsc", Label: "IFSC Code", Value: r.IFSC},
		{Name: "wagelist", Label: "Wagelist", Value: r.Wagelist},
		{Name: "status_wl", Label: "Wagelist Status", Value: r.StatusWL},
		{Name: "muster_roll", Label: "Muster Roll No", Value: r.MusterRoll},
	}
}

// jobcardFields builds the field list for the deleted-jobcard form.
func jobcardFields(r core.JobcardRequest) []formField {
	return []formField{
		{Name: "block_name", Label: "Block Name", Value: r.BlockName, List: "blocks"},
		{Name: "panchayat", Label: "Panchayat", Value: r.Panchayat, List: "panchayats"},
		{Name: "job_card_no", Label: "Job Card No", Value: r.JobCardNo},
		{Name: "reason", Label: "Reason", Value: r.Reason, Optional: true, Textarea: true},
	}
}

// voucherFields builds the field list for the delete-voucher form.
func voucherFields(r core.VoucherRequest) []formField {
	years := core.FinancialYears()
	return []formField{
		{Name: "block_name", Label: "Block Name", Value: r.BlockName, List: "blocks"},
		{Name: "panchayat", Label: "Panchayat", Value: r.Panchayat, List: "panchayats"},
		{Name: "village", Label: "Village", Value: r.Village, List: "villages"},
		{Name: "fin_year", Label: "Financial Year", Value: r.FinYear, Options: years},
		{Name: "scheme_name", Label: "Scheme Name", Value: r.SchemeName},
		{Name: "work_code", Label: "Work Code", Value: r.WorkCode},
		{Name: "bill_no", Label: "Bill No", Value: r.BillNo},
		{Name: "voucher_year", Label: "Voucher Entry Year", Value: r.VoucherYear, Options: years},
		{Name: "amount", Label: "Amount", Value: r.Amount},
	}
}

// applyFieldErrors copies per-field validation messages onto the field list.
func applyFieldErrors(fields []formField, verr *core.ValidationError) []formField {
	if verr == nil {
		return fields
	}
	for i := range fields {
		if msg, ok := verr.Fields[fields[i].Name]; ok {
			fields[i].Error = msg
		}
	}
	return fields
}
