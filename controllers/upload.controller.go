package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

const maxUploadSize = 5 * 1024 * 1024

const maxImageDimension = 1000

// UploadImage accepts a product image, downscales it to fit 1000×1000 and
// forwards it to the configured media CDN upload endpoint. The CDN handles
// storage and format negotiation; only the resulting URL is kept here.
func UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "No file provided",
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": fmt.Sprintf("File type %s is not allowed, use JPEG, PNG, WebP or GIF", contentType),
		})
	}

	if fileHeader.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "File too large, maximum size is 5MB",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to read file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to read file",
		})
	}

	// Animated GIFs and WebP pass through untouched; re-encoding them here
	// would drop frames. The CDN caps their dimensions on its side.
	if contentType == "image/jpeg" || contentType == "image/jpg" || contentType == "image/png" {
		resized, err := downscaleImage(data, contentType)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "File is not a valid image",
			})
		}
		data = resized
	}

	url, err := forwardToCDN(data, fileHeader.Filename, contentType)
	if err != nil {
		log.Println("Could not upload image to CDN:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to upload image",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"url":    url,
	})
}

func downscaleImage(data []byte, contentType string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	format := imaging.PNG
	if contentType != "image/png" {
		format = imaging.JPEG
	}
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// forwardToCDN posts the image to a Cloudinary-style unsigned upload
// endpoint and returns the hosted URL.
func forwardToCDN(data []byte, filename string, contentType string) (string, error) {
	config := initializers.AppConfig
	if config.CDNUploadUrl == "" {
		return "", fmt.Errorf("CDN upload URL is not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.WriteField("upload_preset", config.CDNUploadPreset); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, config.CDNUploadUrl, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("CDN upload failed with status %d: %s", resp.StatusCode, respBody)
	}

	var uploadResp struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", err
	}

	if uploadResp.SecureURL != "" {
		return uploadResp.SecureURL, nil
	}
	return uploadResp.URL, nil
}
