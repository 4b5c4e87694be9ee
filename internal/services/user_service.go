// user_service.go
//
// A small relational record service for users, products and the orders that join them
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of storedb.
// storedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// storedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with storedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"

	"github.com/localnerve/storedb/internal/models"
	"github.com/localnerve/storedb/internal/types"
	"github.com/localnerve/storedb/internal/validation"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const emailConflictMessage = "Email already in use"

// CreateUserInput is the body accepted by user creation
type CreateUserInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

// UpdateUserInput is a partial update; nil fields are left as they are
type UpdateUserInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Address *string `json:"address" validate:"omitempty,min=1"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// UserService manages user records
type UserService struct {
	store
}

// NewUserService creates a UserService over db
func NewUserService(db *gorm.DB, log *logrus.Logger) *UserService {
	return &UserService{store{db: db, log: log}}
}

// List returns every user ordered by id
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.conn(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, s.resolve("list users", err)
	}
	return users, nil
}

// Get returns the user with the given id
func (s *UserService) Get(ctx context.Context, id uint64) (*models.User, error) {
	user, err := findUser(s.conn(ctx), id)
	if err != nil {
		return nil, s.resolve("get user", err)
	}
	return user, nil
}

// Create validates and stores a new user. A taken email is a conflict and nothing is written.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user := models.User{
		Name:    input.Name,
		Address: input.Address,
		Email:   input.Email,
	}

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, input.Email, 0); err != nil {
			return err
		}
		return conflictOr(tx.Create(&user).Error, emailConflictMessage)
	})
	if err != nil {
		return nil, s.resolve("create user", err)
	}

	s.log.WithField("user_id", user.ID).Info("user created")
	return &user, nil
}

// Update applies the fields present in input to the user with the given id
func (s *UserService) Update(ctx context.Context, id uint64, input UpdateUserInput) (*models.User, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = findUser(tx, id); err != nil {
			return err
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Address != nil {
			user.Address = *input.Address
		}
		if input.Email != nil && *input.Email != user.Email {
			if err := ensureEmailFree(tx, *input.Email, id); err != nil {
				return err
			}
			user.Email = *input.Email
		}

		return conflictOr(tx.Save(user).Error, emailConflictMessage)
	})
	if err != nil {
		return nil, s.resolve("update user", err)
	}

	s.log.WithField("user_id", id).Info("user updated")
	return user, nil
}

// Delete removes the user, their orders and those orders' product associations.
// Products are never touched.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	var orderIDs []uint64
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Order{}).Where("user_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderProduct{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).Delete(&models.Order{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(user).Error
	})
	if err != nil {
		return s.resolve("delete user", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        id,
		"orders_removed": len(orderIDs),
	}).Info("user deleted")
	return nil
}

func findUser(tx *gorm.DB, id uint64) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return &user, nil
}

// ensureEmailFree fails with a conflict when another user already has email
func ensureEmailFree(tx *gorm.DB, email string, exceptID uint64) error {
	var count int64
	if err := tx.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return types.NewConflictError(emailConflictMessage, nil)
	}
	return nil
}
