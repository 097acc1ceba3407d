package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
	"github.com/adfharrison1/go-bloodbank/pkg/logging"
	"github.com/adfharrison1/go-bloodbank/pkg/records"
)

func newTestRouter(mockStorage *MockStorageEngine) *mux.Router {
	log := logging.Discard()
	handler := NewHandler(records.NewStore(mockStorage, log), log)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_HandleCreate(t *testing.T) {
	tests := []struct {
		name            string
		path            string
		body            string
		expectedStatus  int
		expectedMessage string
		expectedError   string
		expectedInserts int
	}{
		{
			name:            "blood type",
			path:            "/api/blood-types",
			body:            `{"Blood_Type_ID":"BT1","Name":"O+"}`,
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Blood Type saved",
			expectedInserts: 1,
		},
		{
			name:            "donor",
			path:            "/api/donors",
			body:            `{"Donor_ID":"D1","Name":"Asha","Age":"31"}`,
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Donor added successfully",
			expectedInserts: 1,
		},
		{
			name:            "recipient transaction",
			path:            "/api/recipient-transactions",
			body:            `{"Transaction_ID":"T9","Recipient_ID":"R404"}`,
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Recipient transaction saved",
			expectedInserts: 1,
		},
		{
			name:            "empty name accepted",
			path:            "/api/hospitals",
			body:            `{"Hospital_ID":"H1","Name":""}`,
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Hospital added successfully",
			expectedInserts: 1,
		},
		{
			name:            "empty object accepted",
			path:            "/api/recipients",
			body:            `{}`,
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Recipient added successfully",
			expectedInserts: 1,
		},
		{
			name:            "uncastable age",
			path:            "/api/donors",
			body:            `{"Donor_ID":"D2","Age":"twenty"}`,
			expectedStatus:  http.StatusInternalServerError,
			expectedError:   "Failed to add donor",
			expectedInserts: 0,
		},
		{
			name:           "malformed json",
			path:           "/api/donor-transactions",
			body:           `{"Transaction_ID":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "array body",
			path:           "/api/donor-transactions",
			body:           `[{"Transaction_ID":"T1"}]`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "null body",
			path:           "/api/blood-types",
			body:           `null`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStorage := NewMockStorageEngine()
			router := newTestRouter(mockStorage)

			w := doRequest(router, "POST", tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedInserts, mockStorage.GetInsertCalls())

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedMessage != "" {
				assert.Equal(t, map[string]string{"message": tt.expectedMessage}, body)
			}
			if tt.expectedError != "" {
				assert.Equal(t, map[string]string{"error": tt.expectedError}, body)
			}
		})
	}
}

func TestHandler_HandleCreate_CastsBeforeStoring(t *testing.T) {
	mockStorage := NewMockStorageEngine()
	router := newTestRouter(mockStorage)

	w := doRequest(router, "POST", "/api/donors", `{"Donor_ID":"D1","Age":"45","Nickname":"dropped"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, "GET", "/api/donors", "")
	require.Equal(t, http.StatusOK, w.Code)

	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, float64(45), docs[0]["Age"])
	assert.NotContains(t, docs[0], "Nickname")
	assert.Equal(t, "1", docs[0]["_id"])
}

func TestHandler_HandleCreate_StoreFault(t *testing.T) {
	mockStorage := NewMockStorageEngine()
	mockStorage.InsertErr = errors.New("connection refused")
	router := newTestRouter(mockStorage)

	for _, kind := range domain.Kinds() {
		t.Run(kind.Name, func(t *testing.T) {
			w := doRequest(router, "POST", "/api/"+kind.Path, `{}`)
			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, kind.FailedMessage, body.Error)
			assert.NotContains(t, w.Body.String(), "connection refused", "internal detail must not leak")
		})
	}
}

func TestHandler_HandleList(t *testing.T) {
	mockStorage := NewMockStorageEngine()
	router := newTestRouter(mockStorage)

	// Empty collection is an empty array
	w := doRequest(router, "GET", "/api/hospitals", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for _, body := range []string{
		`{"Hospital_ID":"H1","Name":"General","Address":"1 Main St","Contact":"555"}`,
		`{"Hospital_ID":"H1","Name":"Duplicate key"}`,
	} {
		require.Equal(t, http.StatusCreated, doRequest(router, "POST", "/api/hospitals", body).Code)
	}

	w = doRequest(router, "GET", "/api/hospitals", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"_id":"1","Hospital_ID":"H1","Name":"General","Address":"1 Main St","Contact":"555"},
		{"_id":"2","Hospital_ID":"H1","Name":"Duplicate key"}
	]`, w.Body.String())
	assert.Equal(t, 2, mockStorage.GetCollectionCount("hospitals"))
	assert.Equal(t, 2, mockStorage.GetFindCalls())
}

func TestHandler_HandleList_StoreFault(t *testing.T) {
	mockStorage := NewMockStorageEngine()
	mockStorage.FindErr = errors.New("timeout")
	router := newTestRouter(mockStorage)

	w := doRequest(router, "GET", "/api/donor-transactions", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch donor transactions"}`, w.Body.String())
}

func TestHandler_UnimplementedMethods(t *testing.T) {
	router := newTestRouter(NewMockStorageEngine())

	for _, method := range []string{"PUT", "PATCH", "DELETE"} {
		t.Run(method, func(t *testing.T) {
			w := doRequest(router, method, "/api/donors", `{}`)
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		})
	}

	// Edit/delete by id were never served
	w := doRequest(router, "DELETE", "/api/donors/123", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_UnknownKind(t *testing.T) {
	router := newTestRouter(NewMockStorageEngine())

	w := doRequest(router, "GET", "/api/patients", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestHandler_RootAndHealth(t *testing.T) {
	router := newTestRouter(NewMockStorageEngine())

	w := doRequest(router, "GET", "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Blood Bank API is running", w.Body.String())

	w = doRequest(router, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Nil(t, health.Store, "mock store keeps no counters")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New("info", "json", &buf)
	require.NoError(t, err)

	handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/donors", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/donors", entry["path"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
}
