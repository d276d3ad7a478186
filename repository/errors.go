// Package repository implements the persistence ports on top of gorm.
package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"servic-backend/services/interfaces"
)

// translate maps gorm errors onto the repository port errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return interfaces.ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", interfaces.ErrDuplicateKey, err)
	default:
		return err
	}
}

// deleteByID soft or hard deletes one row and reports a miss as not found.
func deleteByID(db *gorm.DB, model interface{}, id interface{}) error {
	result := db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return interfaces.ErrRecordNotFound
	}
	return nil
}
