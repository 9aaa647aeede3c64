package validator

import (
	"testing"
	"time"

	"rentledger/constants"
	"rentledger/errors"
	"rentledger/models"
)

func day(s string) time.Time {
	d, err := models.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		wantCode errors.ErrorCode
	}{
		{"same day", day("2024-01-10"), day("2024-01-10"), ""},
		{"ordered", day("2024-01-10"), day("2024-01-20"), ""},
		{"reversed", day("2024-01-20"), day("2024-01-10"), errors.ErrCodeInvalidRange},
		{"missing start", time.Time{}, day("2024-01-10"), errors.ErrCodeRequiredField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.start, tt.end)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.HasCode(err, tt.wantCode) {
				t.Fatalf("expected code %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestValidateBlock_RejectsUnknownEnums(t *testing.T) {
	err := ValidateBlock(1, day("2024-01-01"), day("2024-01-02"), "booked", constants.BlockSourceAdmin)
	if !errors.HasCode(err, errors.ErrCodeInvalidStatus) {
		t.Errorf("expected invalid status, got %v", err)
	}

	err = ValidateBlock(1, day("2024-01-01"), day("2024-01-02"), constants.BlockStatusReserved, "airbnb")
	if !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("expected validation error for source, got %v", err)
	}

	err = ValidateBlock(0, day("2024-01-01"), day("2024-01-02"), constants.BlockStatusReserved, constants.BlockSourceAdmin)
	if !errors.HasCode(err, errors.ErrCodeRequiredField) {
		t.Errorf("expected required field error, got %v", err)
	}
}

func TestValidateContract(t *testing.T) {
	contract := &models.Contract{
		PropertyID: 1,
		LandlordID: 2,
		RenterName: "Acme Retail",
		StartDate:  day("2024-01-01"),
		EndDate:    day("2024-06-30"),
		Currency:   "USD",
	}
	if err := ValidateContract(contract); err != nil {
		t.Fatalf("expected valid contract, got %v", err)
	}

	contract.RenterName = ""
	if err := ValidateContract(contract); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("expected validation error for missing renter, got %v", err)
	}

	contract.RenterName = "Acme Retail"
	contract.EndDate = day("2023-12-31")
	if err := ValidateContract(contract); !errors.HasCode(err, errors.ErrCodeInvalidRange) {
		t.Errorf("expected invalid range, got %v", err)
	}

	contract.EndDate = day("2024-06-30")
	contract.PricingType = "hourly"
	if err := ValidateContract(contract); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("expected validation error for pricing type, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("startDate", "01/02/2024"); !errors.HasCode(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("expected invalid format, got %v", err)
	}
	d, err := ParseDate("startDate", "2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Day() != 29 || d.Location() != time.UTC {
		t.Errorf("unexpected parsed date %v", d)
	}
}
