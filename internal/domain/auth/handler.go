package auth

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse mirrors the placeholder wire shape. Token is always null.
type LoginResponse struct {
	Message string  `json:"message"`
	Token   *string `json:"token"`
}

type Handler struct {
	verifier CredentialVerifier
	log      *log.Logger
}

func NewHandler(verifier CredentialVerifier, logger *log.Logger) *Handler {
	return &Handler{verifier: verifier, log: logger}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}
}

// Login checks the credentials. No session or token is issued.
// @Summary		Log in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"username and password"
// @Success		200	{object}	LoginResponse
// @Failure		400,401	{object}	map[string]interface{}
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if !h.verifier.Verify(req.Username, req.Password) {
		h.log.Warn("failed login attempt", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	h.log.Info("successful login", "username", req.Username)
	c.JSON(http.StatusOK, LoginResponse{Message: "Login successful"})
}
