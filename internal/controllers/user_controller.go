package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/services"
)

// userInput carries the access code in Password. PasswordIsHash marks a value
// copied from an existing record that must be stored untouched.
type userInput struct {
	Name           string `json:"name"`
	Role           int    `json:"role"`
	Password       string `json:"password"`
	PasswordIsHash bool   `json:"password_is_hash"`
}

func (in userInput) toService() services.UserInput {
	return services.UserInput{
		Name:     in.Name,
		Role:     in.Role,
		Password: services.PasswordInput{Value: in.Password, Hashed: in.PasswordIsHash},
	}
}

func (ac *AdminController) ListUsers(c *gin.Context) {
	users, err := ac.svc.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetching users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (ac *AdminController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := ac.svc.Users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetching the user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ac *AdminController) CreateUser(c *gin.Context) {
	var input userInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}
	user, err := ac.svc.Users.Create(c.Request.Context(), input.toService())
	if err != nil {
		respondError(c, err, "creating the user")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully.", "user": user})
}

func (ac *AdminController) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input userInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}
	user, err := ac.svc.Users.Update(c.Request.Context(), id, input.toService())
	if err != nil {
		respondError(c, err, "updating the user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully.", "user": user})
}

func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ac.svc.Users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "deleting the user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}
