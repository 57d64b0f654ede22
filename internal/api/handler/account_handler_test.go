package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/manager"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	return r
}

func decodeData(t *testing.T, body []byte, target interface{}) {
	t.Helper()
	var topLevel Response
	require.NoError(t, json.Unmarshal(body, &topLevel))
	require.NotNil(t, topLevel.Data, "'data' field should not be nil")
	dataBytes, err := json.Marshal(topLevel.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(dataBytes, target))
}

func TestAccountHandler_OpenAccount(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		expected, err := client.NewClient("Maria Silva", "12345-6", "0001")
		require.NoError(t, err)
		mockService.On("OpenAccount", mock.Anything, "Maria Silva", "12345-6", "0001").Return(expected, nil)

		router := setupTestRouter()
		router.POST("/clients", handler.OpenAccount)

		reqBody := OpenAccountRequest{Name: "Maria Silva", Account: "12345-6", Agency: "0001"}
		jsonBody, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/clients", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var responseBody ClientResponse
		decodeData(t, rr.Body.Bytes(), &responseBody)

		assert.Equal(t, expected.ID.String(), responseBody.ID)
		assert.Equal(t, "Maria Silva", responseBody.Name)
		assert.Equal(t, "12345-6", responseBody.Account)
		assert.Equal(t, "0.00", responseBody.Balance)
		assert.Equal(t, "2000.00", responseBody.CreditLimit)
		assert.Empty(t, responseBody.ManagerID)

		mockService.AssertExpectations(t)
	})

	t.Run("InvalidRequestBody", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/clients", handler.OpenAccount)

		req, _ := http.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(`{"invalid`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("DuplicateAccount", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		mockService.On("OpenAccount", mock.Anything, "Maria Silva", "12345-6", "0001").
			Return(nil, client.ErrDuplicateAccount{Account: "12345-6"})

		router := setupTestRouter()
		router.POST("/clients", handler.OpenAccount)

		reqBody := OpenAccountRequest{Name: "Maria Silva", Account: "12345-6", Agency: "0001"}
		jsonBody, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/clients", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)

		var response Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.NotNil(t, response.Error)
		assert.Equal(t, "CONFLICT", response.Error.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		mockService.On("OpenAccount", mock.Anything, "Maria Silva", "12345-6", "0001").
			Return(nil, errors.New("service unavailable"))

		router := setupTestRouter()
		router.POST("/clients", handler.OpenAccount)

		reqBody := OpenAccountRequest{Name: "Maria Silva", Account: "12345-6", Agency: "0001"}
		jsonBody, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/clients", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestAccountHandler_GetClient(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		expected, err := client.NewClient("Joao Souza", "99999-9", "0001")
		require.NoError(t, err)
		mockService.On("GetClient", mock.Anything, expected.ID).Return(expected, nil)

		router := setupTestRouter()
		router.GET("/clients/:id", handler.GetClient)

		req, _ := http.NewRequest(http.MethodGet, "/clients/"+expected.ID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseBody ClientResponse
		decodeData(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, expected.ID.String(), responseBody.ID)
		assert.Equal(t, "Joao Souza", responseBody.Name)

		mockService.AssertExpectations(t)
	})

	t.Run("InvalidUUID", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		router := setupTestRouter()
		router.GET("/clients/:id", handler.GetClient)

		req, _ := http.NewRequest(http.MethodGet, "/clients/not-a-uuid", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ClientNotFound", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		clientID := uuid.New()
		mockService.On("GetClient", mock.Anything, clientID).Return(nil, client.ErrClientNotFound{ClientID: clientID})

		router := setupTestRouter()
		router.GET("/clients/:id", handler.GetClient)

		req, _ := http.NewRequest(http.MethodGet, "/clients/"+clientID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestAccountHandler_AssignManager(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		clientID := uuid.New()
		managerID := uuid.New()
		mockService.On("AssignManager", mock.Anything, clientID, managerID).Return(nil)

		router := setupTestRouter()
		router.PUT("/clients/:id/manager", handler.AssignManager)

		jsonBody, _ := json.Marshal(AssignManagerRequest{ManagerID: managerID.String()})
		req, _ := http.NewRequest(http.MethodPut, "/clients/"+clientID.String()+"/manager", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ManagerNotFound", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		clientID := uuid.New()
		managerID := uuid.New()
		mockService.On("AssignManager", mock.Anything, clientID, managerID).
			Return(manager.ErrManagerNotFound{ManagerID: managerID})

		router := setupTestRouter()
		router.PUT("/clients/:id/manager", handler.AssignManager)

		jsonBody, _ := json.Marshal(AssignManagerRequest{ManagerID: managerID.String()})
		req, _ := http.NewRequest(http.MethodPut, "/clients/"+clientID.String()+"/manager", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestAccountHandler_CreateManager(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		expected, err := manager.NewManager("Carlos Pereira", "MGR-01")
		require.NoError(t, err)
		mockService.On("CreateManager", mock.Anything, "Carlos Pereira", "MGR-01").Return(expected, nil)

		router := setupTestRouter()
		router.POST("/managers", handler.CreateManager)

		jsonBody, _ := json.Marshal(CreateManagerRequest{Name: "Carlos Pereira", Code: "MGR-01"})
		req, _ := http.NewRequest(http.MethodPost, "/managers", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var responseBody ManagerResponse
		decodeData(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, "MGR-01", responseBody.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		mockService := new(MockAccountService)
		handler := NewAccountHandler(logger, mockService)

		mockService.On("CreateManager", mock.Anything, "Carlos Pereira", "MGR-01").
			Return(nil, manager.ErrDuplicateCode{Code: "MGR-01"})

		router := setupTestRouter()
		router.POST("/managers", handler.CreateManager)

		jsonBody, _ := json.Marshal(CreateManagerRequest{Name: "Carlos Pereira", Code: "MGR-01"})
		req, _ := http.NewRequest(http.MethodPost, "/managers", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockService.AssertExpectations(t)
	})
}
