package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/dutyreport/config"
	errs "github.com/techagentng/dutyreport/errors"
)

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Validation(fmt.Sprintf("%s must be a valid id", field))
	}
	return id, nil
}

// parseOptionalID returns nil for an empty string.
func parseOptionalID(raw, field string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// storeError logs unexpected repository failures and maps err onto the
// error taxonomy.
func storeError(logger *logrus.Logger, funcName string, err error, entity string) error {
	apiErr := errs.FromStore(err, entity)
	if apiErr.Kind == errs.KindInternal {
		config.LogError(logger, "services", funcName, entity, nil, err)
	}
	return apiErr
}

func duplicate(entity, field, value string) error {
	return errs.DuplicateKey(fmt.Sprintf("%s with %s %q already exists", entity, field, value))
}

// referenceError turns a failed lookup of a referenced entity into a
// validation error.
func referenceError(logger *logrus.Logger, err error, entity string) error {
	apiErr := errs.FromStore(err, entity)
	if apiErr.Kind == errs.KindNotFound {
		return errs.Validation(fmt.Sprintf("%s does not exist", entity))
	}
	return storeError(logger, "referenceError", err, entity)
}
