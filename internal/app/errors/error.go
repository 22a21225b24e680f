package errors

import (
	"net/http"
	"reflect"

	"github.com/sirupsen/logrus"
)

// Rejection codes for the ledger operation surface. Every failed operation
// maps to exactly one of these; handlers surface them verbatim so callers
// can branch on the kind rather than the message.
const (
	CodeNotValidCompany         = "NOT_VALID_COMPANY"
	CodeInvalidCustomer         = "INVALID_CUSTOMER"
	CodeInvalidVoucherIndex     = "INVALID_VOUCHER_INDEX"
	CodeInvalidWithdrawalAmount = "INVALID_WITHDRAWAL_AMOUNT"
	CodeInvalidTransferAmount   = "INVALID_TRANSFER_AMOUNT"
	CodeInvalidVoucherText      = "INVALID_VOUCHER_TEXT"
	CodeDeclinedVoucher         = "DECLINED_VOUCHER"
	CodeVoucherAlreadyActivated = "VOUCHER_ALREADY_ACTIVATED"
	CodeCustomerAlreadyExists   = "CUSTOMER_ALREADY_EXISTS"
)

type AppError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(statusCode int, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func NewUnauthorizedError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(http.StatusUnauthorized, message[0])
	}
	return NewAppError(http.StatusUnauthorized, "Unauthorized")
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, message)
}

func NewInternalServerError(originalError error, message string) *AppError {
	logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	return NewAppError(http.StatusInternalServerError, message)
}

func newRejection(statusCode int, code, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

func NewNotValidCompanyError() *AppError {
	return newRejection(http.StatusForbidden, CodeNotValidCompany, "Caller is not the company owner")
}

func NewInvalidCustomerError() *AppError {
	return newRejection(http.StatusForbidden, CodeInvalidCustomer, "Caller is not the customer owner")
}

func NewInvalidVoucherIndexError() *AppError {
	return newRejection(http.StatusBadRequest, CodeInvalidVoucherIndex, "Voucher index is out of range")
}

func NewInvalidWithdrawalAmountError() *AppError {
	return newRejection(http.StatusBadRequest, CodeInvalidWithdrawalAmount, "Withdrawal amount exceeds company balance")
}

func NewInvalidTransferAmountError() *AppError {
	return newRejection(http.StatusBadRequest, CodeInvalidTransferAmount, "Voucher value exceeds company balance")
}

func NewInvalidVoucherTextError() *AppError {
	return newRejection(http.StatusBadRequest, CodeInvalidVoucherText, "Presented text does not match the voucher")
}

func NewDeclinedVoucherError() *AppError {
	return newRejection(http.StatusBadRequest, CodeDeclinedVoucher, "Voucher is not activated")
}

func NewVoucherAlreadyActivatedError() *AppError {
	return newRejection(http.StatusConflict, CodeVoucherAlreadyActivated, "Voucher is already activated")
}

func NewCustomerAlreadyExistsError() *AppError {
	return newRejection(http.StatusConflict, CodeCustomerAlreadyExists, "Customer address is already registered")
}
