package leaveerrors

import (
	"net/http"

	"github.com/skylift/workforce/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotActivated = apperror.New(
		apperror.CodeForbidden,
		"employee account is not active",
		http.StatusForbidden,
	)
	ErrVacationAdvanceNotice = apperror.New(
		apperror.CodeWindowViolation,
		"vacation requests must be submitted at least 14 days in advance",
		http.StatusBadRequest,
	)
	ErrSickLeaveTooFarPast = apperror.New(
		apperror.CodeWindowViolation,
		"sick leave cannot be reported more than 3 days in the past",
		http.StatusBadRequest,
	)
	ErrSickLeaveTooFarAhead = apperror.New(
		apperror.CodeWindowViolation,
		"sick leave cannot be scheduled more than 3 days in advance",
		http.StatusBadRequest,
	)
	ErrEmergencySickFuture = apperror.New(
		apperror.CodeWindowViolation,
		"emergency sick leave can only be used for today or previous days",
		http.StatusBadRequest,
	)
	ErrPersonalAdvanceNotice = apperror.New(
		apperror.CodeWindowViolation,
		"personal days require at least 24 hours advance notice unless marked as emergency",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"an overlapping leave request already exists for these dates",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient vacation days for this request",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"not authorized to modify this leave request",
		http.StatusForbidden,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave requests can be updated",
		http.StatusBadRequest,
	)
	ErrInvalidStateTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave request status does not allow this operation",
		http.StatusBadRequest,
	)
	ErrApproverNotFound = apperror.New(
		apperror.CodeNotFound,
		"approver not found",
		http.StatusNotFound,
	)
	ErrApproverRole = apperror.New(
		apperror.CodeForbidden,
		"only managers and site leads can decide leave requests",
		http.StatusForbidden,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"action must be approve or reject",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required when rejecting",
		http.StatusBadRequest,
	)
	ErrNoWorkdays = apperror.New(
		apperror.CodeInvalidInput,
		"selected dates contain no workdays",
		http.StatusBadRequest,
	)
	ErrVacationTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"vacation requests cannot exceed 20 workdays, split into multiple requests",
		http.StatusBadRequest,
	)
	ErrHalfDayNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"half-day is not available for this leave type",
		http.StatusBadRequest,
	)
)
