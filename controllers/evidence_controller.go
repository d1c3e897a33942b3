package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wallet-guard/api-go/config"
)

// Evidence files for reports and disputes live in an R2 bucket; clients
// upload directly via presigned PUT URLs and pass the resulting file URL as
// evidence_url.
type EvidenceController struct {
	R2Client *s3.Client
	R2Config *config.R2Config
}

const maxEvidenceSize = 10 * 1024 * 1024 // 10 MB

var allowedEvidenceTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
}

func NewEvidenceController() *EvidenceController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &EvidenceController{
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

type EvidencePresignRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type EvidencePresignResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

func (ec *EvidenceController) GetEvidenceUploadURL(c *gin.Context) {
	var req EvidencePresignRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !allowedEvidenceTypes[req.ContentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported evidence file type"})
		return
	}

	if req.FileSize <= 0 || req.FileSize > maxEvidenceSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	key := ec.generateEvidenceKey(req.FileName)

	presignedURL, err := ec.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	response := EvidencePresignResponse{
		UploadURL: presignedURL,
		FileURL:   fmt.Sprintf("%s/%s", ec.R2Config.PublicURL, key),
		Key:       key,
		ExpiresIn: 3600, // 1 hour
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    response,
		Message: "Presigned URL generated successfully",
	})
}

func (ec *EvidenceController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(ec.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(ec.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour // 1 hour expiry
	})

	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (ec *EvidenceController) generateEvidenceKey(fileName string) string {
	ext := filepath.Ext(fileName)
	id := uuid.New().String()
	timestamp := time.Now().Unix()

	return fmt.Sprintf("evidence/%d_%s%s", timestamp, id, ext)
}
