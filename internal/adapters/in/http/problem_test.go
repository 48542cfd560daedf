package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"unauthenticated", errUnauthenticated, http.StatusUnauthorized, TypeUnauthorized},
		{"permission denied", errs.NewPermissionDeniedError("u1", "cancel", "manager"), http.StatusForbidden, TypeForbidden},
		{"not found", errs.NewObjectNotFoundError("order", "42"), http.StatusNotFound, TypeNotFound},
		{"concurrent modification", errs.NewConcurrentModificationError("sub-order", "s1", 3), http.StatusConflict, TypeConflict},
		{"serialization failure", errs.NewSerializationFailureError(nil), http.StatusConflict, TypeConflict},
		{"already exists", errs.NewAlreadyExistsError("fund", "c1"), http.StatusConflict, TypeConflict},
		{"invalid transition", errs.NewInvalidTransitionError("sub-order", "Ready", "Pending"), http.StatusUnprocessableEntity, TypeUnprocessable},
		{"insufficient balance", errs.NewInsufficientBalanceError("f1", 10, 20), http.StatusUnprocessableEntity, TypeUnprocessable},
		{"fund closed", errs.NewFundClosedError("f1"), http.StatusUnprocessableEntity, TypeUnprocessable},
		{"deferred denied", errs.NewDeferredPaymentNotAllowedError("t1", 100, 50), http.StatusUnprocessableEntity, TypeUnprocessable},
		{"no capable kitchen", errs.NewNoCapableResourceError("Bar", "t1"), http.StatusServiceUnavailable, TypeUnavailable},
		{"required", errs.NewValueIsRequiredError("client id"), http.StatusBadRequest, TypeValidation},
		{"invalid", errs.NewValueIsInvalidError("quantity"), http.StatusBadRequest, TypeValidation},
		{"out of range", errs.NewValueIsOutOfRangeError("limit", -1, 0, 500), http.StatusBadRequest, TypeValidation},
		{"wrapped", fmt.Errorf("handle: %w", errs.NewFundClosedError("f1")), http.StatusUnprocessableEntity, TypeUnprocessable},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, TypeHTTP},
	}

	for _, tt := range tests {
		t.Run("should map "+tt.name, func(t *testing.T) {
			p := problemFor(tt.err)

			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.kind, p.Type)
			assert.NotEmpty(t, p.Title)
		})
	}

	t.Run("should hide the cause of unexpected errors", func(t *testing.T) {
		p := problemFor(errors.New("dial tcp 10.0.0.3:5432: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, p.Status)
		assert.Equal(t, TypeInternal, p.Type)
		assert.Empty(t, p.Detail)
	})
}

func TestActorFrom(t *testing.T) {
	newContext := func(id, roles string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if id != "" {
			req.Header.Set(HeaderActorID, id)
		}
		if roles != "" {
			req.Header.Set(HeaderActorRoles, roles)
		}
		return echo.New().NewContext(req, httptest.NewRecorder())
	}

	t.Run("should reject a request without actor id", func(t *testing.T) {
		_, err := actorFrom(newContext("", "cook"))

		require.ErrorIs(t, err, errUnauthenticated)
	})

	t.Run("should reject a malformed actor id", func(t *testing.T) {
		_, err := actorFrom(newContext("not-a-uuid", "cook"))

		require.ErrorIs(t, err, errUnauthenticated)
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		_, err := actorFrom(newContext(kernel.NewUUID().String(), "cook,sommelier"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should parse roles in any case and spacing", func(t *testing.T) {
		userID := kernel.NewUUID()

		actor, err := actorFrom(newContext(userID.String(), " Cook , MANAGER"))

		require.NoError(t, err)
		assert.True(t, actor.UserID().IsEqual(userID))
		assert.ElementsMatch(t, []kernel.Role{kernel.RoleCook, kernel.RoleManager}, actor.Roles())
	})

	t.Run("should accept an actor without roles", func(t *testing.T) {
		actor, err := actorFrom(newContext(kernel.NewUUID().String(), ""))

		require.NoError(t, err)
		assert.Empty(t, actor.Roles())
	})
}
