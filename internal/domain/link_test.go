package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// requireValidationField asserts err wraps ErrValidation and the resulting
// ValidationError contains the expected field key.
func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()

	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("errors.Is(err, ErrValidation) = false, got %v", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As(err, *ValidationError) = false, got %T", err)
	}
	if _, ok := verr.Fields[field]; !ok {
		t.Errorf("ValidationError.Fields missing key %q, got %v", field, verr.Fields)
	}
}

func TestLinkStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status LinkStatus
		want   bool
	}{
		{
			name:   "active is valid",
			status: LinkActive,
			want:   true,
		},
		{
			name:   "hidden is valid",
			status: LinkHidden,
			want:   true,
		},
		{
			name:   "empty string is invalid",
			status: "",
			want:   false,
		},
		{
			name:   "unknown value is invalid",
			status: "paused",
			want:   false,
		},
		{
			name:   "case sensitive",
			status: "Active",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("LinkStatus(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func validTestLink() Link {
	return Link{
		ID:            uuid.New(),
		ProductID:     uuid.New(),
		MarketplaceID: uuid.New(),
		URL:           "https://shop.example.com/item/42",
		Price:         decimal.NewFromInt(100),
		Position:      1,
		Status:        LinkActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func TestLink_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*Link)
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid link passes",
			modify:  func(_ *Link) {},
			wantErr: false,
		},
		{
			name:    "zero price passes",
			modify:  func(l *Link) { l.Price = decimal.Zero },
			wantErr: false,
		},
		{
			name:      "nil product ID fails",
			modify:    func(l *Link) { l.ProductID = uuid.Nil },
			wantErr:   true,
			wantField: "product_id",
		},
		{
			name:      "nil marketplace ID fails",
			modify:    func(l *Link) { l.MarketplaceID = uuid.Nil },
			wantErr:   true,
			wantField: "marketplace_id",
		},
		{
			name:      "empty URL fails",
			modify:    func(l *Link) { l.URL = "" },
			wantErr:   true,
			wantField: "url",
		},
		{
			name:      "relative URL fails",
			modify:    func(l *Link) { l.URL = "/item/42" },
			wantErr:   true,
			wantField: "url",
		},
		{
			name:      "URL without host fails",
			modify:    func(l *Link) { l.URL = "https://" },
			wantErr:   true,
			wantField: "url",
		},
		{
			name:      "negative price fails",
			modify:    func(l *Link) { l.Price = decimal.NewFromInt(-1) },
			wantErr:   true,
			wantField: "price",
		},
		{
			name:      "negative position fails",
			modify:    func(l *Link) { l.Position = -1 },
			wantErr:   true,
			wantField: "position",
		},
		{
			name:      "invalid status fails",
			modify:    func(l *Link) { l.Status = "paused" },
			wantErr:   true,
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			link := validTestLink()
			tt.modify(&link)

			err := link.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			requireValidationField(t, err, tt.wantField)
		})
	}
}
