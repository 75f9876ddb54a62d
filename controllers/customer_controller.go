package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	CustomerSvc *services.CustomerService
}

func NewCustomerController(svc *services.CustomerService) *CustomerController {
	return &CustomerController{CustomerSvc: svc}
}

func customerIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "customer id must be numeric")
		return 0, false
	}
	return uint(id), true
}

func (ctrl *CustomerController) GetCustomers(c *gin.Context) {
	customers, err := ctrl.CustomerSvc.GetAll()
	if err != nil {
		log.Printf("GetCustomers error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "could not fetch customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (ctrl *CustomerController) GetCustomerByID(c *gin.Context) {
	id, ok := customerIDParam(c)
	if !ok {
		return
	}

	customer, err := ctrl.CustomerSvc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (ctrl *CustomerController) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid customer payload: "+err.Error())
		return
	}

	if err := ctrl.CustomerSvc.Create(&customer); err != nil {
		log.Printf("CreateCustomer error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (ctrl *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := customerIDParam(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid customer payload: "+err.Error())
		return
	}
	customer.ID = id

	if err := ctrl.CustomerSvc.Update(&customer); err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated"})
}

func (ctrl *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := customerIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.CustomerSvc.Delete(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}
