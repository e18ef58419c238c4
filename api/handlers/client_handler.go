package handlers

import (
	"net/http"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ClientHandler handles client and contract requests
type ClientHandler struct {
	service service.ClientService
	log     *logrus.Logger
}

// NewClientHandler creates a new ClientHandler instance
func NewClientHandler(svc service.ClientService, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{
		service: svc,
		log:     log,
	}
}

// CreateClient handles client creation
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request format",
			Code:    "INVALID_INPUT",
		})
		return
	}

	client, err := h.service.CreateClient(c, &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClient handles client retrieval
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.service.GetClient(c, c.Param("id"))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// ListClients handles listing all clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.service.ListClients(c)
	if err != nil {
		h.log.WithError(err).Error("Failed to list clients")
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, clients)
}

// CreateContract handles contract creation
func (h *ClientHandler) CreateContract(c *gin.Context) {
	var req service.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request format",
			Code:    "INVALID_INPUT",
		})
		return
	}

	contract, err := h.service.CreateContract(c, &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// ListContracts handles listing contracts, optionally by client
func (h *ClientHandler) ListContracts(c *gin.Context) {
	contracts, err := h.service.ListContracts(c, c.Query("client_id"))
	if err != nil {
		h.log.WithError(err).Error("Failed to list contracts")
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, contracts)
}
