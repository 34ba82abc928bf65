package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-social/internal/application"
	"github.com/oksasatya/campus-social/pkg/response"
)

// AuthHandler serves registration, email verification and password reset.
type AuthHandler struct {
	Accounts AccountService
}

func NewAuthHandler(accounts AccountService) *AuthHandler {
	return &AuthHandler{Accounts: accounts}
}

type registerRequest struct {
	Email      string `json:"email" binding:"required,email"`
	UserName   string `json:"user_name" binding:"nonblank,max=150"`
	Password   string `json:"password" binding:"required,pwd"`
	FirstName  string `json:"first_name" binding:"max=150"`
	LastName   string `json:"last_name" binding:"max=150"`
	Department string `json:"department" binding:"max=100"`
	About      string `json:"about" binding:"max=1000"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,otp"`
}

type resetConfirmRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,otp"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Accounts.Register(c.Request.Context(), application.RegisterInput{
		Email:      req.Email,
		UserName:   req.UserName,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Department: req.Department,
		About:      req.About,
		ClientIP:   clientIP(c),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toProfile(u, true), "registered, check your email for the verification code", nil)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Accounts.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(u, true), "email verified", nil)
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Accounts.ResendOTP(c.Request.Context(), req.Email, clientIP(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true}, "verification code sent", nil)
}

func (h *AuthHandler) ResetRequest(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Accounts.RequestPasswordReset(c.Request.Context(), req.Email, clientIP(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true}, "reset code sent", nil)
}

func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Accounts.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}
