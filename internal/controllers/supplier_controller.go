package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/services"
)

type supplierInput struct {
	Name   string `json:"supplier_name"`
	Mail   string `json:"mail"`
	Notify bool   `json:"check"`
}

func (in supplierInput) toService() services.SupplierInput {
	return services.SupplierInput{Name: in.Name, Mail: in.Mail, Notify: in.Notify}
}

func (ac *AdminController) ListSuppliers(c *gin.Context) {
	suppliers, err := ac.svc.Suppliers.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetching suppliers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

func (ac *AdminController) GetSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	supplier, err := ac.svc.Suppliers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetching the supplier")
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplier": supplier})
}

func (ac *AdminController) CreateSupplier(c *gin.Context) {
	var input supplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}
	supplier, err := ac.svc.Suppliers.Create(c.Request.Context(), input.toService())
	if err != nil {
		respondError(c, err, "creating the supplier")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Supplier created successfully.", "supplier": supplier})
}

func (ac *AdminController) UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input supplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}
	supplier, err := ac.svc.Suppliers.Update(c.Request.Context(), id, input.toService())
	if err != nil {
		respondError(c, err, "updating the supplier")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier updated successfully.", "supplier": supplier})
}

func (ac *AdminController) DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ac.svc.Suppliers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "deleting the supplier")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully."})
}
