package http

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"vidtube/internal/usecase"
	"vidtube/pkg/config"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	authUseCase usecase.AuthUseCase
	cfg         *config.Config
	logger      *logger.Logger
}

func NewUserHandler(authUseCase usecase.AuthUseCase, cfg *config.Config, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		authUseCase: authUseCase,
		cfg:         cfg,
		logger:      logger,
	}
}

// saveTemp stages an uploaded part in the temp dir. The media gateway
// removes the staged file once it has consumed it; callers also defer
// a remove of their own so a use case rejecting the request before the
// gateway runs leaves nothing behind. After a successful upload that
// remove is a no-op.
func (h *UserHandler) saveTemp(c *gin.Context, file *multipart.FileHeader) (string, error) {
	dst := filepath.Join(h.cfg.UploadTempDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}
	return dst, nil
}

func (h *UserHandler) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	accessMaxAge := int(h.cfg.AccessTokenTTL.Seconds())
	refreshMaxAge := int(h.cfg.RefreshTokenTTL.Seconds())
	c.SetCookie("accessToken", accessToken, accessMaxAge, "/", "", true, true)
	c.SetCookie("refreshToken", refreshToken, refreshMaxAge, "/", "", true, true)
}

func (h *UserHandler) clearSessionCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}

type RegisterRequest struct {
	FullName string `form:"fullName" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required,min=6"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		badRequest(c, "avatar file is required")
		return
	}
	avatarPath, err := h.saveTemp(c, avatarFile)
	if err != nil {
		h.logger.Error("Failed to stage avatar: %v", err)
		respondError(c, err)
		return
	}
	defer os.Remove(avatarPath)

	coverPath := ""
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		coverPath, err = h.saveTemp(c, coverFile)
		if err != nil {
			h.logger.Error("Failed to stage cover image: %v", err)
			respondError(c, err)
			return
		}
		defer os.Remove(coverPath)
	}

	user, err := h.authUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		AvatarPath: avatarPath,
		CoverPath:  coverPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, user, "User registered successfully")
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, accessToken, refreshToken, err := h.authUseCase.Login(req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookies(c, accessToken, refreshToken)
	respond(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "User logged in successfully")
}

func (h *UserHandler) Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	if err := h.authUseCase.Logout(userID); err != nil {
		respondError(c, err)
		return
	}

	h.clearSessionCookies(c)
	respond(c, http.StatusOK, nil, "User logged out successfully")
}

func (h *UserHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie("refreshToken")
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			token = body.RefreshToken
		}
	}

	accessToken, refreshToken, err := h.authUseCase.Refresh(token)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookies(c, accessToken, refreshToken)
	respond(c, http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Access token refreshed")
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	userID := c.GetString("user_id")
	if err := h.authUseCase.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Password changed successfully")
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	user, err := h.authUseCase.GetUser(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Current user fetched successfully")
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.authUseCase.UpdateAccount(c.GetString("user_id"), req.FullName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		badRequest(c, "avatar file is missing")
		return
	}
	localPath, err := h.saveTemp(c, file)
	if err != nil {
		h.logger.Error("Failed to stage avatar: %v", err)
		respondError(c, err)
		return
	}
	defer os.Remove(localPath)

	user, err := h.authUseCase.UpdateAvatar(c.Request.Context(), c.GetString("user_id"), localPath)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Avatar updated successfully")
}

func (h *UserHandler) UpdateCover(c *gin.Context) {
	file, err := c.FormFile("coverImage")
	if err != nil {
		badRequest(c, "cover image file is missing")
		return
	}
	localPath, err := h.saveTemp(c, file)
	if err != nil {
		h.logger.Error("Failed to stage cover image: %v", err)
		respondError(c, err)
		return
	}
	defer os.Remove(localPath)

	user, err := h.authUseCase.UpdateCover(c.Request.Context(), c.GetString("user_id"), localPath)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Cover image updated successfully")
}

func (h *UserHandler) ChannelProfile(c *gin.Context) {
	username := c.Param("username")
	viewerID := c.GetString("user_id")

	profile, err := h.authUseCase.ChannelProfile(username, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, profile, "Channel profile fetched successfully")
}

func (h *UserHandler) WatchHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, total, err := h.authUseCase.WatchHistory(c.GetString("user_id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"history": entries,
		"total":   total,
	}, "Watch history fetched successfully")
}
