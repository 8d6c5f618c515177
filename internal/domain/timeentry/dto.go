package timeentry

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxSelfieSize is the largest accepted selfie upload.
const MaxSelfieSize = 10 << 20

var allowedSelfieExt = []string{".jpg", ".jpeg", ".png"}

type CheckInRequest struct {
	BranchID   string                `json:"branch_id"`
	Latitude   *float64              `json:"latitude"`
	Longitude  *float64              `json:"longitude"`
	Notes      *string               `json:"notes,omitempty"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	} else if !validator.IsValidUUID(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id must be a valid UUID",
		})
	}

	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)
	errs = append(errs, validateSelfie(r.FileHeader)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Latitude     *float64              `json:"latitude"`
	Longitude    *float64              `json:"longitude"`
	BreakMinutes int                   `json:"break_minutes"`
	Notes        *string               `json:"notes,omitempty"`
	File         multipart.File        `json:"-"`
	FileHeader   *multipart.FileHeader `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)

	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	errs = append(errs, validateSelfie(r.FileHeader)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateCoordinates(lat, lng *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if lat == nil {
		errs.Add("latitude", "latitude is required")
	} else if !validator.IsValidLatitude(*lat) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if lng == nil {
		errs.Add("longitude", "longitude is required")
	} else if !validator.IsValidLongitude(*lng) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}
	return errs
}

func validateSelfie(fh *multipart.FileHeader) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if fh == nil {
		errs.Add("selfie", "selfie photo is required")
		return errs
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !validator.IsInSlice(ext, allowedSelfieExt) {
		errs.Add("selfie", "invalid file type: only jpg, jpeg, png allowed")
	} else if fh.Size > MaxSelfieSize {
		errs.Add("selfie", "selfie photo size must not exceed 10MB")
	}
	return errs
}

type TimeEntryResponse struct {
	ID                string           `json:"id"`
	EmployeeID        string           `json:"employee_id"`
	EmployeeName      *string          `json:"employee_name,omitempty"`
	BranchID          string           `json:"branch_id"`
	BranchName        *string          `json:"branch_name,omitempty"`
	CheckInTime       string           `json:"check_in_time"`
	CheckOutTime      *string          `json:"check_out_time,omitempty"`
	BreakMinutes      int              `json:"break_minutes"`
	TotalHours        *decimal.Decimal `json:"total_hours,omitempty"`
	CheckInLatitude   *float64         `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64         `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64         `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64         `json:"check_out_longitude,omitempty"`
	CheckInSelfie     *string          `json:"check_in_selfie,omitempty"`
	CheckOutSelfie    *string          `json:"check_out_selfie,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
	IsOpen            bool             `json:"is_open"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
}

type TimeEntryFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	BranchID   *string `json:"branch_id,omitempty"`
	From       *string `json:"from,omitempty"` // YYYY-MM-DD, inclusive
	To         *string `json:"to,omitempty"`   // YYYY-MM-DD, inclusive
	OpenOnly   bool    `json:"open_only,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *TimeEntryFilter) Validate() error {
	errs := validator.NormalizePagination(&f.Page, &f.Limit)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.BranchID != nil && !validator.IsValidUUID(*f.BranchID) {
		errs.Add("branch_id", "branch_id must be a valid UUID")
	}

	from, to := f.From, f.To
	if from != nil {
		if _, ok := validator.IsValidDate(*from); !ok {
			errs.Add("from", "from must be in YYYY-MM-DD format")
		}
	}
	if to != nil {
		if _, ok := validator.IsValidDate(*to); !ok {
			errs.Add("to", "to must be in YYYY-MM-DD format")
		}
	}
	if from != nil && to != nil && *to < *from {
		errs.Add("to", "to must not be before from")
	}

	return errs.Err()
}

type ListTimeEntryResponse struct {
	TotalCount  int64               `json:"total_count"`
	Page        int                 `json:"page"`
	Limit       int                 `json:"limit"`
	TotalPages  int                 `json:"total_pages"`
	Showing     string              `json:"showing"`
	TimeEntries []TimeEntryResponse `json:"time_entries"`
}
