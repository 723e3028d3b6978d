package controllers

import (
	"net/http"

	"festa-pos/dtos"
	"festa-pos/models"
	"festa-pos/services"
	"festa-pos/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	service services.ProductService
}

func NewProductController(service services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// GET /products?all=true lists inactive products too (admin only).
func (ctl *ProductController) GetProducts(c *gin.Context) {
	includeInactive := c.Query("all") == "true" && utils.GetUserRole(c) == models.RoleAdmin

	products, err := ctl.service.List(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (ctl *ProductController) CreateProduct(c *gin.Context) {
	var input dtos.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctl.service.Create(c.Request.Context(), input, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (ctl *ProductController) UpdateProduct(c *gin.Context) {
	var input dtos.ProductInput
	input.ID = c.Param("id")
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctl.service.Update(c.Request.Context(), c.Param("id"), input, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
