package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/config"
	"github.com/GeninoServices01/family-api/internal/jalali"
	"github.com/GeninoServices01/family-api/internal/models"
	"github.com/GeninoServices01/family-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`

	Gender       string `json:"gender"`
	BirthDate    string `json:"birth_date"`
	Province     string `json:"province"`
	City         string `json:"city"`
	Phone        string `json:"phone"`
	Username     string `json:"username"`
	NationalCode string `json:"national_code"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"error":   "invalid_email_domain",
			"message": "The email domain does not appear to be valid.",
		})
		return
	}

	if taken, field := h.identityTaken(email, req.Phone, req.Username, req.NationalCode); taken {
		c.JSON(http.StatusConflict, gin.H{
			"ok":    false,
			"error": field + "_already_registered",
		})
		return
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := jalali.Parse(req.BirthDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":    false,
				"error": "invalid_birth_date",
			})
			return
		}
		birthDate = &parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		FullName:     req.FirstName + " " + req.LastName,
		Email:        email,
		Phone:        optional(req.Phone),
		Username:     optional(req.Username),
		NationalCode: optional(req.NationalCode),
		PasswordHash: string(hashed),
		Gender:       normalizeGender(req.Gender),
		BirthDate:    birthDate,
		Province:     req.Province,
		City:         req.City,
		LifeStage:    "user",
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed_to_create_user"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":    true,
		"token": token,
		"user":  publicUser(&user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"user":  publicUser(&user),
	})
}

// --------- Helpers ---------

func (h *AuthHandler) identityTaken(email, phone, username, nationalCode string) (bool, string) {
	var count int64

	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return true, "email"
	}

	if phone != "" {
		h.db.Model(&models.User{}).Where("phone = ?", phone).Count(&count)
		if count > 0 {
			return true, "phone"
		}
	}

	if username != "" {
		h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
		if count > 0 {
			return true, "username"
		}
	}

	if nationalCode != "" {
		h.db.Model(&models.User{}).Where("national_code = ?", nationalCode).Count(&count)
		if count > 0 {
			return true, "national_code"
		}
	}

	return false, ""
}

func optional(s string) *string {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return &v
}

func normalizeGender(g string) string {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case "male":
		return "male"
	case "female":
		return "female"
	default:
		return "unspecified"
	}
}

func publicUser(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"full_name":  user.FullName,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"username":   user.Username,
		"phone":      user.Phone,
		"gender":     user.Gender,
		"province":   user.Province,
		"city":       user.City,
		"life_stage": user.LifeStage,
		"created_at": user.CreatedAt,
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
