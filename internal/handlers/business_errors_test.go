package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/GeninoServices01/family-api/internal/httperr"
)

func recordBusiness(t *testing.T, err error) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, respondBusiness(c, err)
}

func TestRespondBusinessStatusMapping(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{"validation_error", http.StatusBadRequest},
		{"missing_destination", http.StatusBadRequest},
		{"not_authorized", http.StatusForbidden},
		{"invitation_not_found", http.StatusNotFound},
		{"slot_occupied", http.StatusConflict},
		{"already_accepted", http.StatusConflict},
		{"invariant_violation", http.StatusConflict},
		{"invitation_expired", http.StatusGone},
	}

	for _, tc := range cases {
		w, handled := recordBusiness(t, httperr.ErrBusiness(tc.code))
		if !handled {
			t.Errorf("%s: should be handled", tc.code)
			continue
		}
		if w.Code != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.code, w.Code, tc.status)
		}

		var body struct {
			OK   bool   `json:"ok"`
			Code string `json:"error_code"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: decode body: %v", tc.code, err)
			continue
		}
		if body.OK {
			t.Errorf("%s: ok must be false", tc.code)
		}
		if body.Code != tc.code {
			t.Errorf("%s: error_code = %q", tc.code, body.Code)
		}
	}
}

func TestRespondBusinessIgnoresOtherErrors(t *testing.T) {
	if _, handled := recordBusiness(t, errors.New("boom")); handled {
		t.Fatal("plain errors must fall through to the 500 path")
	}

	if _, handled := recordBusiness(t, httperr.ErrBusiness("no_such_code")); handled {
		t.Fatal("unmapped business codes must fall through")
	}
}
