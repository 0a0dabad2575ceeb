package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Ritpra93/wanderlust/internal/split"
)

// newValidator builds the request validator: field names come from json
// tags and the positive_amount rule covers decimal money fields.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("positive_amount", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	})

	return v
}

// decode unmarshals and validates a JSON request body into dst. On
// failure it writes the error response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondError(w, toFieldErrors(verrs))
		} else {
			respondMessage(w, http.StatusBadRequest, "invalid request body")
		}
		return false
	}
	return true
}

// toFieldErrors converts validator failures into the API's field-error
// payload shape.
func toFieldErrors(verrs validator.ValidationErrors) split.ValidationErrors {
	out := make(split.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, split.FieldError{
			Field:   fe.Field(),
			Message: ruleMessage(fe),
		})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "positive_amount":
		return "must be a positive amount"
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "datetime":
		return "has an invalid date or time format"
	case "min":
		return "has too few entries"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createTripRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Destination string   `json:"destination"`
	Currency    string   `json:"currency" validate:"required,iso4217"`
	StartDate   string   `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	MemberIDs   []string `json:"memberIds"`
}

type updateTripRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Destination *string `json:"destination"`
	StartDate   *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type addMembersRequest struct {
	MemberIDs []string `json:"memberIds" validate:"required,min=1"`
}

type participantPayload struct {
	UserID     string          `json:"userId" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

type createExpenseRequest struct {
	Title        string               `json:"title" validate:"required"`
	Amount       decimal.Decimal      `json:"amount" validate:"positive_amount"`
	Currency     string               `json:"currency" validate:"omitempty,iso4217"`
	Category     string               `json:"category" validate:"required"`
	SplitType    string               `json:"splitType" validate:"required"`
	PayerID      string               `json:"payerId" validate:"required"`
	PaidAt       int64                `json:"paidAt"`
	Participants []participantPayload `json:"participants" validate:"required,min=1,dive"`
}

type recordSettlementRequest struct {
	FromUserID string          `json:"fromUserId" validate:"required"`
	ToUserID   string          `json:"toUserId" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"positive_amount"`
	Note       string          `json:"note"`
}

type createItineraryRequest struct {
	Title     string `json:"title" validate:"required"`
	Notes     string `json:"notes"`
	Location  string `json:"location"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"omitempty,datetime=15:04"`
}

type updateItineraryRequest struct {
	Title     *string `json:"title"`
	Notes     *string `json:"notes"`
	Location  *string `json:"location"`
	Date      *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime   *string `json:"endTime" validate:"omitempty,datetime=15:04"`

	// UpdatedAt is the client's last-seen version; omit to force.
	UpdatedAt *int64 `json:"updatedAt"`
}

type createPollRequest struct {
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options" validate:"required,min=2,dive,required"`
}

type updatePollRequest struct {
	Question *string  `json:"question"`
	Status   *string  `json:"status" validate:"omitempty,oneof=open closed"`
	Options  []string `json:"options" validate:"omitempty,min=2,dive,required"`

	// UpdatedAt is the client's last-seen version; omit to force.
	UpdatedAt *int64 `json:"updatedAt"`
}

type voteRequest struct {
	OptionID string `json:"optionId" validate:"required"`
}
