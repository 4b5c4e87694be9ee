package services

import (
	"context"
	"errors"

	"github.com/localnerve/storedb/internal/database"
	"github.com/localnerve/storedb/internal/types"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// store carries the connection and logger every resource manager is built with
type store struct {
	db  *gorm.DB
	log *logrus.Logger
}

func (s store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// resolve turns whatever a store call returned into a ServiceError.
// Domain outcomes pass through; unexpected store failures are logged and reported as internal.
func (s store) resolve(op string, err error) error {
	if err == nil {
		return nil
	}

	var se *types.ServiceError
	if errors.As(err, &se) {
		return se
	}

	s.log.WithError(err).WithField("op", op).Error("store operation failed")
	return types.NewInternalError("Internal server error", err)
}

// exists reports whether a row with the given primary key is present
func exists(tx *gorm.DB, model any, id uint64) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// mustExist returns a not-found ServiceError naming resource when id does not resolve
func mustExist(tx *gorm.DB, model any, resource string, id uint64) error {
	found, err := exists(tx, model, id)
	if err != nil {
		return err
	}
	if !found {
		return types.NewNotFoundError(resource, id)
	}
	return nil
}

// conflictOr maps a uniqueness violation to a conflict, leaving other errors alone
func conflictOr(err error, message string) error {
	if database.IsDuplicateKey(err) {
		return types.NewConflictError(message, err)
	}
	return err
}
