package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/store"
	"github.com/feral-file/vault-indexer/internal/subscription"
)

const serviceName = "vault-indexer"

// Handler defines the interface for the ops HTTP handlers
type Handler interface {
	// HealthCheck reports that the process is alive
	// GET /healthz
	HealthCheck(c *gin.Context)

	// Readiness reports whether the store is reachable
	// GET /readyz
	Readiness(c *gin.Context)

	// Status reports the indexing progress of the chain
	// GET /status
	Status(c *gin.Context)

	// ListSubscriptions lists the addresses registered with a pipeline
	// GET /api/v1/subscriptions/:kind
	ListSubscriptions(c *gin.Context)

	// GetSubscription reports whether an address is registered with a pipeline
	// GET /api/v1/subscriptions/:kind/:address
	GetSubscription(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	chain     domain.Chain
	store     store.Store
	registrar subscription.Registrar
}

// NewHandler creates a new ops handler
func NewHandler(chain domain.Chain, st store.Store, registrar subscription.Registrar) Handler {
	return &handler{
		chain:     chain,
		store:     st,
		registrar: registrar,
	}
}

// statusResponse is the body of GET /status
type statusResponse struct {
	Chain                 domain.Chain `json:"chain"`
	Cursor                *string      `json:"cursor"`
	Vaults                int64        `json:"vaults"`
	VaultInstanceSubCount int          `json:"vault_instance_subscriptions"`
}

// subscriptionsResponse is the body of GET /api/v1/subscriptions/:kind
type subscriptionsResponse struct {
	Kind      domain.PipelineKind `json:"kind"`
	Addresses []string            `json:"addresses"`
	Total     int                 `json:"total"`
}

// subscriptionResponse is the body of GET /api/v1/subscriptions/:kind/:address
type subscriptionResponse struct {
	Kind       domain.PipelineKind `json:"kind"`
	Address    string              `json:"address"`
	Registered bool                `json:"registered"`
}

// HealthCheck reports that the process is alive
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
	})
}

// Readiness reports whether the store is reachable
func (h *handler) Readiness(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		respondServiceUnavailable(c, err, "Store is not reachable")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Status reports the indexing progress of the chain
func (h *handler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	cursor, err := h.store.GetEventCursor(ctx, h.chain)
	if err != nil {
		respondInternalError(c, err, "Failed to get event cursor", zap.String("chain", string(h.chain)))
		return
	}

	vaults, err := h.store.CountVaults(ctx)
	if err != nil {
		respondInternalError(c, err, "Failed to count vaults")
		return
	}

	addresses, err := h.registrar.Addresses(ctx, domain.PipelineKindVaultInstance)
	if err != nil {
		respondInternalError(c, err, "Failed to list subscriptions")
		return
	}

	resp := statusResponse{
		Chain:                 h.chain,
		Vaults:                vaults,
		VaultInstanceSubCount: len(addresses),
	}
	if cursor != nil {
		s := cursor.String()
		resp.Cursor = &s
	}

	c.JSON(http.StatusOK, resp)
}

// ListSubscriptions lists the addresses registered with a pipeline
func (h *handler) ListSubscriptions(c *gin.Context) {
	kind := domain.PipelineKind(c.Param("kind"))

	addresses, err := h.registrar.Addresses(c.Request.Context(), kind)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownPipelineKind) {
			respondNotFound(c, "Unknown pipeline kind", string(kind))
			return
		}
		respondInternalError(c, err, "Failed to list subscriptions", zap.String("kind", string(kind)))
		return
	}

	c.JSON(http.StatusOK, subscriptionsResponse{
		Kind:      kind,
		Addresses: addresses,
		Total:     len(addresses),
	})
}

// GetSubscription reports whether an address is registered with a pipeline
func (h *handler) GetSubscription(c *gin.Context) {
	kind := domain.PipelineKind(c.Param("kind"))

	address, err := domain.NormalizeAddress(c.Param("address"))
	if err != nil {
		respondBadRequest(c, "Invalid address", err.Error())
		return
	}

	registered, err := h.registrar.IsRegistered(c.Request.Context(), kind, address)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownPipelineKind) {
			respondNotFound(c, "Unknown pipeline kind", string(kind))
			return
		}
		respondInternalError(c, err, "Failed to get subscription", zap.String("kind", string(kind)))
		return
	}

	c.JSON(http.StatusOK, subscriptionResponse{
		Kind:       kind,
		Address:    address,
		Registered: registered,
	})
}
