package service

import (
	"net/http"

	commonerrors "github.com/Totenem/Time-Tracker-App/internal/common/errors"
)

var ErrProjectNotFound = commonerrors.NewDomainError(
	"PROJECT_NOT_FOUND",
	commonerrors.CategoryNotFound,
	http.StatusBadRequest,
	"project not found",
)
