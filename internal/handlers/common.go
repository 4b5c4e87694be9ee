// common.go
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

package handlers

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/storedb/internal/types"
	"github.com/localnerve/storedb/internal/utils"
)

// parseID reads a non-negative integer path parameter.
// Ids are capped at the signed 64-bit range the SQL drivers can bind.
func parseID(c *fiber.Ctx, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 63)
	if err != nil {
		return 0, false
	}
	return id, true
}

// invalidID answers a path parameter that is not an id
func invalidID(c *fiber.Ctx, name string) error {
	return utils.ValidationErrorResponse(c, "Invalid input", map[string]string{
		name: "Not a valid integer.",
	})
}

// invalidBody answers a request body that could not be decoded.
// A value of the wrong JSON type is reported against its field.
func invalidBody(c *fiber.Ctx, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return utils.ValidationErrorResponse(c, "Invalid input", map[string]string{
			typeErr.Field: "Not a valid " + typeName(typeErr.Type) + ".",
		})
	}
	return utils.ValidationErrorResponse(c, "Invalid input", nil)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	}
	return "value"
}

// respondError maps a service error onto its HTTP outcome.
// Store failures were already logged with their operation by the service.
func respondError(c *fiber.Ctx, err error) error {
	var se *types.ServiceError
	if !errors.As(err, &se) {
		return internalError(c)
	}

	switch se.Kind {
	case types.KindValidation:
		return utils.ValidationErrorResponse(c, se.Message, se.Fields)
	case types.KindNotFound:
		return utils.NotFoundResponse(c, se.Message)
	case types.KindConflict:
		return utils.ConflictResponse(c, se.Message)
	}
	return internalError(c)
}

func internalError(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, string(types.KindInternal))
}
