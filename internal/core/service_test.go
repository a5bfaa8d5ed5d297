package core_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mgnrega-tools/entrydesk/internal/core"
	"github.com/mgnrega-tools/entrydesk/internal/store"
)

func validRegistration() core.Registration {
	return core.Registration{
		BlockName:  "Raghunathpur-I",
		Panchayat:  "Kashipur",
		FinYear:    "2023-2024",
		WorkCode:   "WC001",
		MasonName:  "A Mason",
		RegNo:      "REG-1",
		MappedJC:   "JC-100",
		StatusJC:   "Active",
		BankName:   "SBI",
		AcNo:       "123456",
		IFSC:       "SBIN0000001",
		Wagelist:   "WL-9",
		StatusWL:   "Generated",
		MusterRoll: "MR-77",
	}
}

func TestCreateRegistration_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(store.NewMemStore())

	reg := validRegistration()
	id, err := svc.CreateRegistration(ctx, &reg)
	if err != nil {
		t.Fatalf("CreateRegistration() error = %v", err)
	}
	if id == 0 {
		t.Fatal("CreateRegistration() returned id 0")
	}

	got, err := svc.GetRegistration(ctx, id)
	if err != nil {
		t.Fatalf("GetRegistration() error = %v", err)
	}
	if !reflect.DeepEqual(*got, reg) {
		t.Errorf("stored record = %+v, want %+v", *got, reg)
	}
}

func TestCreateRegistration_MissingFields(t *testing.T) {
	svc := core.NewService(store.NewMemStore())

	reg := validRegistration()
	reg.BlockName = ""
	reg.MusterRoll = ""

	_, err := svc.CreateRegistration(context.Background(), &reg)

	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateRegistration() error = %v, want ValidationError", err)
	}
	for _, field := range []string{"block_name", "muster_roll"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("ValidationError missing field %q: %v", field, verr.Fields)
		}
	}
	if len(verr.Fields) != 2 {
		t.Errorf("got %d field errors, want 2: %v", len(verr.Fields), verr.Fields)
	}
}

func TestCreateJobcardRequest_ReasonOptional(t *testing.T) {
	svc := core.NewService(store.NewMemStore())

	req := core.JobcardRequest{BlockName: "Para", Panchayat: "Anara", JobCardNo: "JC-1"}
	if _, err := svc.CreateJobcardRequest(context.Background(), &req); err != nil {
		t.Errorf("CreateJobcardRequest() without reason error = %v", err)
	}
}

func TestCreateVoucherRequest_MissingAmount(t *testing.T) {
	svc := core.NewService(store.NewMemStore())

	req := core.VoucherRequest{
		BlockName: "Para", Panchayat: "Anara", Village: "Amtala",
		FinYear: "2023-2024", SchemeName: "S", WorkCode: "W", BillNo: "B",
		VoucherYear: "2023-2024",
	}
	_, err := svc.CreateVoucherRequest(context.Background(), &req)

	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateVoucherRequest() error = %v, want ValidationError", err)
	}
	if _, ok := verr.Fields["amount"]; !ok {
		t.Errorf("ValidationError missing field %q: %v", "amount", verr.Fields)
	}
}

func TestUpdateRegistration_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(store.NewMemStore())

	reg := validRegistration()
	id, err := svc.CreateRegistration(ctx, &reg)
	if err != nil {
		t.Fatalf("CreateRegistration() error = %v", err)
	}

	update := validRegistration()
	update.ID = id
	update.BankName = "PNB"

	for i := 0; i < 2; i++ {
		if err := svc.UpdateRegistration(ctx, &update); err != nil {
			t.Fatalf("UpdateRegistration() #%d error = %v", i+1, err)
		}
	}

	got, err := svc.GetRegistration(ctx, id)
	if err != nil {
		t.Fatalf("GetRegistration() error = %v", err)
	}
	if !reflect.DeepEqual(*got, update) {
		t.Errorf("stored record = %+v, want %+v", *got, update)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(store.NewMemStore())

	req := core.JobcardRequest{BlockName: "Para", Panchayat: "Anara", JobCardNo: "JC-1"}
	id, err := svc.CreateJobcardRequest(ctx, &req)
	if err != nil {
		t.Fatalf("CreateJobcardRequest() error = %v", err)
	}

	if err := svc.Delete(ctx, core.CategoryJobcard, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := svc.GetJobcardRequest(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetJobcardRequest() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting again reports NotFound rather than crashing.
	if err := svc.Delete(ctx, core.CategoryJobcard, id); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestDelete_UnknownCategory(t *testing.T) {
	svc := core.NewService(store.NewMemStore())

	err := svc.Delete(context.Background(), core.Category("nope"), 1)
	if !errors.Is(err, core.ErrUnknownCategory) {
		t.Errorf("Delete(nope) error = %v, want ErrUnknownCategory", err)
	}
}

func TestAdmin_FilterAppliesToAllCategories(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(store.NewMemStore())

	for _, block := range []string{"Para", "Kashipur"} {
		reg := validRegistration()
		reg.BlockName = block
		if _, err := svc.CreateRegistration(ctx, &reg); err != nil {
			t.Fatalf("CreateRegistration() error = %v", err)
		}

		jc := core.JobcardRequest{BlockName: block, Panchayat: "Anara", JobCardNo: "JC"}
		if _, err := svc.CreateJobcardRequest(ctx, &jc); err != nil {
			t.Fatalf("CreateJobcardRequest() error = %v", err)
		}
	}
	// No vouchers in "Para": the filter must still return the other lists.
	voucher := core.VoucherRequest{
		BlockName: "Kashipur", Panchayat: "Anara", Village: "Amtala",
		FinYear: "2023-2024", SchemeName: "S", WorkCode: "W", BillNo: "B",
		VoucherYear: "2023-2024", Amount: "100",
	}
	if _, err := svc.CreateVoucherRequest(ctx, &voucher); err != nil {
		t.Fatalf("CreateVoucherRequest() error = %v", err)
	}

	view, err := svc.Admin(ctx, core.Filter{BlockName: "Para"})
	if err != nil {
		t.Fatalf("Admin() error = %v", err)
	}

	if len(view.Registrations) != 1 || view.Registrations[0].BlockName != "Para" {
		t.Errorf("Registrations = %+v, want exactly one for Para", view.Registrations)
	}
	if len(view.JobcardRequests) != 1 || view.JobcardRequests[0].BlockName != "Para" {
		t.Errorf("JobcardRequests = %+v, want exactly one for Para", view.JobcardRequests)
	}
	if len(view.VoucherRequests) != 0 {
		t.Errorf("VoucherRequests = %+v, want empty", view.VoucherRequests)
	}
	if view.Filter.BlockName != "Para" {
		t.Errorf("Filter.BlockName = %q, want Para", view.Filter.BlockName)
	}
}

func TestAdmin_FilterIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(store.NewMemStore())

	reg := validRegistration()
	reg.BlockName = "Para"
	if _, err := svc.CreateRegistration(ctx, &reg); err != nil {
		t.Fatalf("CreateRegistration() error = %v", err)
	}

	view, err := svc.Admin(ctx, core.Filter{BlockName: "para"})
	if err != nil {
		t.Fatalf("Admin() error = %v", err)
	}
	if len(view.Registrations) != 0 {
		t.Errorf("got %d registrations for lowercase filter, want 0", len(view.Registrations))
	}
}

func TestSuggestions(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(store.NewMemStore())

	reg := validRegistration()
	reg.BlockName = "Zeta"
	reg.Panchayat = "Anara"
	if _, err := svc.CreateRegistration(ctx, &reg); err != nil {
		t.Fatalf("CreateRegistration() error = %v", err)
	}

	// Duplicate block across tables must collapse to one suggestion.
	jc := core.JobcardRequest{BlockName: "Zeta", Panchayat: "Kashipur", JobCardNo: "JC"}
	if _, err := svc.CreateJobcardRequest(ctx, &jc); err != nil {
		t.Fatalf("CreateJobcardRequest() error = %v", err)
	}

	voucher := core.VoucherRequest{
		BlockName: "Alpha", Panchayat: "Anara", Village: "Amtala",
		FinYear: "2023-2024", SchemeName: "S", WorkCode: "W", BillNo: "B",
		VoucherYear: "2023-2024", Amount: "1",
	}
	if _, err := svc.CreateVoucherRequest(ctx, &voucher); err != nil {
		t.Fatalf("CreateVoucherRequest() error = %v", err)
	}

	sug, err := svc.Suggestions(ctx)
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}

	if want := []string{"Alpha", "Zeta"}; !reflect.DeepEqual(sug.Blocks, want) {
		t.Errorf("Blocks = %v, want %v", sug.Blocks, want)
	}
	if want := []string{"Anara", "Kashipur"}; !reflect.DeepEqual(sug.Panchayats, want) {
		t.Errorf("Panchayats = %v, want %v", sug.Panchayats, want)
	}
	if want := []string{"Amtala"}; !reflect.DeepEqual(sug.Villages, want) {
		t.Errorf("Villages = %v, want %v", sug.Villages, want)
	}
}
