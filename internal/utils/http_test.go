package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/nebengtrip/internal/pkg/errs"
)

func TestDomainErrorResponse(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "Validation Maps To 400",
			err:        errs.ValidationError{Field: "nb_seats", Msg: "must be positive"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Not Found Maps To 404",
			err:        errs.NotFoundError{Resource: "trip"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "State Maps To 409",
			err:        errs.StateError{Resource: "booking", Msg: "already cancelled"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Capacity Maps To 409",
			err:        errs.CapacityError{Requested: 2, Remaining: 1},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Transaction Maps To 500",
			err:        errs.TxError{Op: "cascade delete", Err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "Unknown Maps To 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, DomainErrorResponse(c, tc.err))
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
