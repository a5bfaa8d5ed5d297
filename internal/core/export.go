package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Export column headers. These match the reporting format the operators
// already use downstream, so the exact spelling and order matter.
var (
	registrationColumns = []string{
		"Sl.no", "Block Name", "Panchayat Name", "Financial Year", "Work Code",
		"Mason Name", "Registration no", "Mapped With concerned JC No",
		"Status of JC", "Bank Name", "A/c No", "IFSC Code",
		"Wagelist of concerned Registration", "Status of wagelist", "Muster Roll No",
	}
	jobcardColumns = []string{"Block", "PANCHAYAT", "JOB CARD NO"}
	voucherColumns = []string{
		"Block", "PANCHAYAT", "VILLAGE", "FINANCIAL YEAR", "SCHEME NAME",
		"WORK CODE", "BILL NO.", "FY (VOUCHER ENTRY YEAR)", "AMOUNT",
	}
)

// ExportFileName returns the suggested download filename for a category.
func ExportFileName(cat Category) string {
	switch cat {
	case CategorySemi:
		return "Semi_Skilled_Data.csv"
	case CategoryJobcard:
		return "Deleted_Jobcards.csv"
	default:
		return "Delete_Voucher_Data.csv"
	}
}

// ExportColumns returns the CSV header row for a category.
func ExportColumns(cat Category) []string {
	switch cat {
	case CategorySemi:
		return registrationColumns
	case CategoryJobcard:
		return jobcardColumns
	default:
		return voucherColumns
	}
}

// RegistrationRow projects a registration into its export row.
// slno is the 1-based position in the exported list, not the record id.
func RegistrationRow(slno int, r Registration) []string {
	return []string{
		strconv.Itoa(slno), r.BlockName, r.Panchayat, r.FinYear, r.WorkCode,
		r.MasonName, r.RegNo, r.MappedJC, r.StatusJC, r.BankName, r.AcNo,
		r.IFSC, r.Wagelist, r.StatusWL, r.MusterRoll,
	}
}

// JobcardRow projects a job-card deletion request into its export row.
func JobcardRow(r JobcardRequest) []string {
	return []string{r.BlockName, r.Panchayat, r.JobCardNo}
}

// VoucherRow projects a voucher deletion request into its export row.
func VoucherRow(r VoucherRequest) []string {
	return []string{
		r.BlockName, r.Panchayat, r.Village, r.FinYear, r.SchemeName,
		r.WorkCode, r.BillNo, r.VoucherYear, r.Amount,
	}
}

// ExportCSV writes the full record list for a category as UTF-8 CSV with a
// header row. Rows appear in list order; encoding/csv handles quoting of
// embedded commas, quotes and newlines in free-text fields.
func (s *Service) ExportCSV(ctx context.Context, cat Category, w io.Writer) error {
	if _, err := ParseCategory(string(cat)); err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(ExportColumns(cat)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	switch cat {
	case CategorySemi:
		regs, err := s.store.ListRegistrations(ctx, Filter{})
		if err != nil {
			return fmt.Errorf("list registrations: %w", err)
		}
		for i, r := range regs {
			if err := cw.Write(RegistrationRow(i+1, r)); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}

	case CategoryJobcard:
		jcs, err := s.store.ListJobcardRequests(ctx, Filter{})
		if err != nil {
			return fmt.Errorf("list jobcard requests: %w", err)
		}
		for _, r := range jcs {
			if err := cw.Write(JobcardRow(r)); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}

	case CategoryVoucher:
		vouchers, err := s.store.ListVoucherRequests(ctx, Filter{})
		if err != nil {
			return fmt.Errorf("list voucher requests: %w", err)
		}
		for _, r := range vouchers {
			if err := cw.Write(VoucherRow(r)); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}

	}

	cw.Flush()
	return cw.Error()
}
