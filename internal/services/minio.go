package services

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	"pataspace_back_end/internal/database"
)

// GenerateSignedURL transforme le chemin d'une image produit en URL signée
// MinIO avec expiration. Accepte aussi bien l'URL complète stockée en base
// que le chemin relatif au bucket.
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	if database.MinIO == nil || objectPath == "" {
		return objectPath, nil
	}

	bucket := os.Getenv("MINIO_BUCKET")
	prefix := "http://" + os.Getenv("MINIO_ENDPOINT") + "/" + bucket + "/"
	key := strings.TrimPrefix(objectPath, prefix)

	reqParams := make(url.Values)
	presignedURL, err := database.MinIO.PresignedGetObject(ctx, bucket, key, duration, reqParams)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
