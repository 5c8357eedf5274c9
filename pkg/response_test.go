package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, map[string]int{"trainings": 3}, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, ContentType.JSON, rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"trainings":3}`, rr.Body.String())
}

func TestWriteJSON_Unmarshalable(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, make(chan int), http.StatusOK)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal error", rr.Body.String())
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, "training not found", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"training not found"}`, rr.Body.String())
}

func TestWriteResponse_DefaultStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteResponse(rr, ContentType.Text, "alive", 0)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alive", rr.Body.String())
}
