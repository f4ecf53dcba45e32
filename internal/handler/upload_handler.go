package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"athar/internal/middleware"
	"athar/internal/response"
	"athar/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxImageBytes = 10 << 20
	maxVideoBytes = 100 << 20
)

var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".heic": true}
	videoExts = map[string]bool{".mp4": true, ".mov": true, ".webm": true, ".m4v": true, ".3gp": true}
)

type UploadHandler struct {
	cloud  cloudinary.Client
	folder string
}

func NewUploadHandler(cloud cloudinary.Client, folder string) *UploadHandler {
	return &UploadHandler{cloud: cloud, folder: folder}
}

// UploadImage stores a post image and returns its URL.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	h.upload(c, cloudinary.KindImage, "posts")
}

// UploadVideo stores a post video and returns its URL and poster frame.
func (h *UploadHandler) UploadVideo(c *gin.Context) {
	h.upload(c, cloudinary.KindVideo, "posts")
}

// UploadAvatar stores a profile picture; the client then saves the URL via PUT /users/profile.
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	h.upload(c, cloudinary.KindImage, "avatars")
}

func (h *UploadHandler) upload(c *gin.Context, kind cloudinary.Kind, sub string) {
	if h.cloud == nil {
		response.Fail(c, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("file")
	if err != nil {
		response.Invalid(c, []response.FieldError{{Field: "file", Message: "is required"}})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed, limit := imageExts, int64(maxImageBytes)
	if kind == cloudinary.KindVideo {
		allowed, limit = videoExts, maxVideoBytes
	}
	if !allowed[ext] {
		response.Invalid(c, []response.FieldError{{Field: "file", Message: "unsupported file type"}})
		return
	}
	if file.Size > limit {
		response.Invalid(c, []response.FieldError{{Field: "file", Message: "file too large"}})
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "could not read file")
		return
	}
	defer f.Close()

	folder := h.folder + "/" + sub + "/" + strconv.FormatUint(uint64(userID), 10)
	publicID := string(kind) + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	res, err := h.cloud.Upload(c.Request.Context(), f, kind, folder, publicID)
	if err != nil {
		fail(c, "upload", err)
		return
	}
	response.Created(c, "file uploaded", res)
}
