package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"logomarket/internal/domain"
	"logomarket/internal/entitlement"
	"logomarket/internal/repo"
)

type CatalogHandler struct {
	catalog      repo.CatalogRepo
	purchases    repo.PurchaseRepo
	entitlements *entitlement.Store
	log          *zap.Logger
}

func NewCatalogHandler(catalog repo.CatalogRepo, purchases repo.PurchaseRepo, entitlements *entitlement.Store, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:      catalog,
		purchases:    purchases,
		entitlements: entitlements,
		log:          log,
	}
}

func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.catalog.FetchAll(c.Request.Context())
	if err != nil {
		h.log.Error("catalog fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load catalog"})
		return
	}

	payload := make([]catalogItemPayload, 0, len(items))
	for _, item := range items {
		id := item.ID.String()
		p := catalogItemPayload{
			ID:               id,
			Name:             item.Name,
			Description:      item.Description,
			Price:            item.Price,
			Currency:         item.Currency,
			AvailableFormats: item.AvailableFormats,
			DisplayFormats:   item.DisplayFormats,
			TotalBuyClicks:   item.TotalBuyClicks,
			CreatedAt:        item.CreatedAt,
			Unlocked:         h.entitlements.IsUnlocked(id),
		}
		if p.Unlocked {
			p.DownloadLinks = h.entitlements.LinksFor(id)
		}
		payload = append(payload, p)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "logos": payload})
}

// Click bumps the buy-click counter. Fire and forget: failures are logged,
// the response is always 204.
func (h *CatalogHandler) Click(c *gin.Context) {
	if err := h.catalog.IncrementClicks(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Warn("click increment failed", zap.String("logo_id", c.Param("id")), zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

// RecordDownload stores a download event. Fire and forget.
func (h *CatalogHandler) RecordDownload(c *gin.Context) {
	var req recordDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	purchaseID, err := uuid.Parse(req.PurchaseID)
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	ev := domain.DownloadEvent{
		PurchaseID: purchaseID,
		LogoID:     req.LogoID,
		Format:     req.Format,
	}
	if err := h.purchases.CreateDownload(c.Request.Context(), ev); err != nil {
		h.log.Warn("download event write failed", zap.String("purchase_id", req.PurchaseID), zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}
