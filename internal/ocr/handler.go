package ocr

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wtmaxim/ocr-vision/internal/config"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/ocr
// --------------------------------------------------
// Validation order matters: content type, file presence, MIME type,
// total size. The first failure wins and the provider is never called.
func (h *Handler) Extract(c *gin.Context) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Content-Type multipart/form-data requis",
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formulaire multipart invalide"})
		return
	}

	// Singular "file" first, then "files[]" in page order: both shapes
	// collapse into one ordered sequence.
	headers := append([]*multipart.FileHeader{}, form.File["file"]...)
	headers = append(headers, form.File["files[]"]...)

	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun fichier fourni"})
		return
	}

	for _, fh := range headers {
		mime := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(mime, "image/") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{
				"error": fmt.Sprintf("type de fichier non supporté: %s", mime),
			})
			return
		}
	}

	var totalSize int64
	for _, fh := range headers {
		totalSize += fh.Size
	}
	if totalSize > config.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf(
				"fichiers trop volumineux (%.2f MB), la limite est de 4MB",
				float64(totalSize)/(1024*1024),
			),
		})
		return
	}

	pages := make([]PageImage, 0, len(headers))
	for _, fh := range headers {
		data, err := readFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fichier illisible"})
			return
		}
		pages = append(pages, PageImage{
			Data: data,
			MIME: fh.Header.Get("Content-Type"),
		})
	}

	targetLang := c.DefaultPostForm("targetLang", "auto")
	format := c.DefaultPostForm("format", "markdown")

	result, err := h.service.Extract(c.Request.Context(), pages, targetLang, format)
	if err != nil {
		c.String(http.StatusInternalServerError, "Erreur: %s", err.Error())
		return
	}

	if result.Format == "json" {
		c.JSON(http.StatusOK, result.JSON)
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(result.Markdown))
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
