package handlers

import (
	"net/http"

	"Storefront/identity"
	"Storefront/middleware"
	"Storefront/notify"

	"github.com/gin-gonic/gin"
)

func SignUpHandler(c *gin.Context, ids *identity.Store, toasts *notify.Channel) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	message, err := ids.SignUp(req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, toasts, "signup failed", err)
		return
	}

	toasts.Success(message)
	c.JSON(http.StatusCreated, gin.H{
		"message": message,
	})
}

func LoginHandler(c *gin.Context, ids *identity.Store, toasts *notify.Channel) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	role, err := ids.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, toasts, "login failed", err)
		return
	}

	toasts.Success("Logged in successfully")
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"role":    role,
	})
}

// LogOutHandler ends the session; the guest cart becomes active again.
func LogOutHandler(c *gin.Context, ids *identity.Store) {
	if err := ids.Logout(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "logged out, session snapshot not cleared",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}

func SessionHandler(c *gin.Context, ids *identity.Store) {
	resp := gin.H{
		"authenticated": ids.IsAuthenticated(),
		"admin":         ids.IsAdmin(),
	}
	if account, ok := ids.CurrentAccount(); ok {
		resp["account"] = accountView(account)
	}
	c.JSON(http.StatusOK, resp)
}

func GetUserProfileHandler(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)
	c.JSON(http.StatusOK, gin.H{
		"account": accountView(account),
	})
}

func UpdateUserProfileHandler(c *gin.Context, ids *identity.Store, toasts *notify.Channel) {
	var req struct {
		Name     *string `json:"name"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	message, err := ids.UpdateProfile(identity.ProfileUpdate{Name: req.Name, Password: req.Password})
	if err != nil {
		respondError(c, toasts, "profile update failed", err)
		return
	}

	account, _ := ids.CurrentAccount()
	toasts.Success(message)
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"account": accountView(account),
	})
}

func DeleteUserHandler(c *gin.Context, ids *identity.Store, toasts *notify.Channel) {
	message, err := ids.DeleteAccount()
	if err != nil {
		respondError(c, toasts, "account deletion failed", err)
		return
	}

	toasts.Success(message)
	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
