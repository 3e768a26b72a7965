package schema

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/validation"
)

func TestNew_RejectsDuplicateNames(t *testing.T) {
	_, err := New(
		Field{Name: "nsd"},
		Field{Name: "nsd"},
	)
	if !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestNew_RejectsEmptyName(t *testing.T) {
	if _, err := New(Field{Name: "  "}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestMust_PanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Must(Field{Name: "a"}, Field{Name: "a"})
}

func TestSchema_OrderAndInitialValues(t *testing.T) {
	s := Must(
		Field{Name: "vehicle_num", Label: "Vehicle Number:"},
		Field{Name: "nsd", Label: "NSD Less Than:"},
	)
	if diff := cmp.Diff([]string{"vehicle_num", "nsd"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{"vehicle_num": "", "nsd": ""}
	if diff := cmp.Diff(want, s.InitialValues()); diff != "" {
		t.Fatalf("initial values mismatch (-want +got):\n%s", diff)
	}
	field, ok := s.Field("nsd")
	if !ok || field.Kind != KindText {
		t.Fatalf("expected nsd defaulted to text kind, got %#v", field)
	}
}

func TestSchema_FieldsAreCopies(t *testing.T) {
	s := Must(Field{Name: "mobile", MaxLength: Len(10)})
	fields := s.Fields()
	*fields[0].MaxLength = 99
	fields[0].Label = "changed"

	field, _ := s.Field("mobile")
	if *field.MaxLength != 10 || field.Label != "" {
		t.Fatalf("schema was mutated through accessor: %#v", field)
	}
}

func TestParseKind(t *testing.T) {
	if _, err := ParseKind("radio"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	kind, err := ParseKind(" Password ")
	if err != nil || kind != KindPassword {
		t.Fatalf("expected password kind, got %q (%v)", kind, err)
	}
}

func TestLoadFS_Filter(t *testing.T) {
	s, err := LoadFS(os.DirFS("testdata"), "filter.yaml", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"vehicle_num", "nsd"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	vehicle, _ := s.Field("vehicle_num")
	if res := vehicle.Validate("MH12 AB 1234"); !res.OK() {
		t.Fatalf("expected vehicle accepted, got %s", res)
	}
	if res := vehicle.Validate("MH-12"); res.Message() != "Letters, digits and spaces only." {
		t.Fatalf("unexpected vehicle result %s", res)
	}

	nsd, _ := s.Field("nsd")
	if res := nsd.Validate("4.00"); !res.OK() {
		t.Fatalf("expected nsd accepted, got %s", res)
	}
	if res := nsd.Validate("four"); res.OK() {
		t.Fatalf("expected nsd rejected")
	}
}

func TestLoad_UnknownValidator(t *testing.T) {
	_, err := Load([]byte("fields:\n  - name: a\n    validators: [missing]\n"), nil)
	if !errors.Is(err, validation.ErrUnknownValidator) {
		t.Fatalf("expected ErrUnknownValidator, got %v", err)
	}
}

func TestLoad_DuplicateNames(t *testing.T) {
	_, err := Load([]byte("fields:\n  - name: a\n  - name: a\n"), nil)
	if !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestFromOpenAPI_Login(t *testing.T) {
	data, err := os.ReadFile("testdata/login.openapi.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	s, err := FromOpenAPI(context.Background(), data, "login", nil)
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}

	if diff := cmp.Diff([]string{"mobile", "password", "remember_me"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	mobile, _ := s.Field("mobile")
	if mobile.Label != "Mobile Number" || !mobile.Required {
		t.Fatalf("unexpected mobile descriptor %#v", mobile)
	}
	if mobile.MaxLength == nil || *mobile.MaxLength != 10 {
		t.Fatalf("expected max length 10")
	}
	if res := mobile.Validate("98a"); res.Message() != validation.MessageMobileInvalid {
		t.Fatalf("expected mobile validator wired, got %s", res)
	}

	password, _ := s.Field("password")
	if password.Kind != KindPassword || password.Placeholder != "Enter your password" {
		t.Fatalf("unexpected password descriptor %#v", password)
	}

	remember, _ := s.Field("remember_me")
	if remember.Kind != KindCheckbox || remember.Label != "Remember Me" {
		t.Fatalf("unexpected checkbox descriptor %#v", remember)
	}
}

func TestFromOpenAPI_UnknownOperation(t *testing.T) {
	data, err := os.ReadFile("testdata/login.openapi.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if _, err := FromOpenAPI(context.Background(), data, "logout", nil); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}
