// ABOUTME: HTTP routing layer exposing the orchestration operations over gin
// ABOUTME: Thin plumbing around the application context; no business logic here
package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/app"
)

type handlers struct {
	app *app.App
}

// NewRouter builds the gin engine with every endpoint registered against
// the application context.
func NewRouter(a *app.App) *gin.Engine {
	h := &handlers{app: a}

	router := gin.Default()
	router.GET("/health", h.health)
	router.GET("/stats", h.stats)
	router.POST("/query", h.query)
	router.POST("/analyze/customer", h.analyzeCustomer)
	router.POST("/analyze/territory", h.analyzeTerritory)
	router.POST("/recommend/products", h.recommendProducts)
	router.POST("/generate/pitch", h.generatePitch)
	router.POST("/insights", h.insights)
	router.GET("/customers/top/:limit", h.topCustomers)
	router.GET("/products/top/:limit", h.topProducts)
	router.GET("/territories/insights", h.territoryInsights)
	return router
}

func (h *handlers) health(c *gin.Context) {
	qdrant := h.app.Store.HealthCheck(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"qdrant_status": qdrant,
	})
}

func (h *handlers) stats(c *gin.Context) {
	qdrant := h.app.Store.GetStats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"total_customers":   len(h.app.Processor.Customers()),
		"total_products":    len(h.app.Processor.Products()),
		"total_territories": len(h.app.Processor.Territories()),
		"qdrant_stats":      qdrant,
	})
}

func (h *handlers) query(c *gin.Context) {
	var req QueryRequest
	if !bind(c, &req) {
		return
	}
	result := h.app.Agent.Query(c.Request.Context(), req.Query, req.ContextType)
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Query processed successfully",
		Data:    result,
	})
}

func (h *handlers) analyzeCustomer(c *gin.Context) {
	var req CustomerAnalysisRequest
	if !bind(c, &req) {
		return
	}
	result := h.app.Agent.AnalyzeCustomer(c.Request.Context(), req.CustomerName)
	if result.NotFound {
		c.JSON(http.StatusOK, Envelope{
			Success: false,
			Message: result.Message,
			Data:    result,
		})
		return
	}
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Customer analysis completed",
		Data:    result,
	})
}

func (h *handlers) analyzeTerritory(c *gin.Context) {
	var req TerritoryAnalysisRequest
	if !bind(c, &req) {
		return
	}
	result := h.app.Agent.AnalyzeTerritory(c.Request.Context(), req.TerritoryName)
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Territory analysis completed",
		Data:    result,
	})
}

func (h *handlers) recommendProducts(c *gin.Context) {
	var req ProductRecommendationRequest
	if !bind(c, &req) {
		return
	}
	result := h.app.Agent.RecommendProducts(c.Request.Context(), req.CustomerCriteria)
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Product recommendations generated",
		Data:    result,
	})
}

func (h *handlers) generatePitch(c *gin.Context) {
	var req SalesPitchRequest
	if !bind(c, &req) {
		return
	}
	result := h.app.Agent.GenerateSalesPitch(c.Request.Context(), req.CustomerName, req.ProductFocus)
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Sales pitch generated",
		Data:    result,
	})
}

func (h *handlers) insights(c *gin.Context) {
	var req QueryRequest
	if !bind(c, &req) {
		return
	}
	result := h.app.Agent.GetInsights(c.Request.Context(), req.Query)
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Sales insights generated",
		Data:    result,
	})
}

func (h *handlers) topCustomers(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	customers := h.app.Processor.TopCustomers(limit)
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Top customers retrieved",
		Data:    gin.H{"customers": customers},
	})
}

func (h *handlers) topProducts(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	products := h.app.Processor.TopProducts(limit)
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Top products retrieved",
		Data:    gin.H{"products": products},
	})
}

func (h *handlers) territoryInsights(c *gin.Context) {
	insights := h.app.Processor.TerritoryInsights()
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Territory insights retrieved",
		Data:    insights,
	})
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Printf("Bad request: %v", err)
		c.JSON(http.StatusBadRequest, Envelope{
			Success: false,
			Message: err.Error(),
		})
		return false
	}
	return true
}

func parseLimit(c *gin.Context) (int, bool) {
	limit, err := strconv.Atoi(c.Param("limit"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, Envelope{
			Success: false,
			Message: "limit must be a positive integer",
		})
		return 0, false
	}
	return limit, true
}
