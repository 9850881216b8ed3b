package product

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"pataspace_back_end/internal/cache"
	"pataspace_back_end/internal/catalog"
	"pataspace_back_end/internal/database"
	"pataspace_back_end/internal/models"
	"pataspace_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// fetchAllProducts lit le catalogue complet, via le cache Redis quand il est chaud.
func fetchAllProducts(ctx context.Context) ([]models.Product, error) {
	// ✅ Vérifie le cache Redis
	if val, err := database.RedisClient.Get(ctx, cache.ProductListKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached, nil
		}
	}

	// ✅ Récupère depuis ScyllaDB
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT product_id, name, description, price, image_url, category, stock, created_at FROM products`).Iter()

	var products []models.Product
	var p models.Product

	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.Stock, &p.CreatedAt) {
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	// Les plus récents d'abord, comme l'affichage du catalogue
	sort.Slice(products, func(i, j int) bool {
		var ti, tj time.Time
		if products[i].CreatedAt != nil {
			ti = *products[i].CreatedAt
		}
		if products[j].CreatedAt != nil {
			tj = *products[j].CreatedAt
		}
		return ti.After(tj)
	})

	// ✅ Met en cache
	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, cache.ProductListKey, data, cache.ProductCacheTTL)
	}

	return products, nil
}

// signImageURLs remplace les chemins d'images par des URLs signées MinIO.
func signImageURLs(ctx context.Context, products []models.Product) {
	for i := range products {
		if products[i].ImageURL == "" {
			continue
		}
		if signed, err := services.GenerateSignedURL(ctx, products[i].ImageURL, 24*time.Hour); err == nil {
			products[i].ImageURL = signed
		}
	}
}

// GetAllProducts liste le catalogue, filtré côté serveur par ?q= et ?category=.
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()

	products, err := fetchAllProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	query := c.Query("q")
	category := c.DefaultQuery("category", catalog.AllCategories)
	filtered := catalog.Filter(products, query, category)

	signImageURLs(ctx, filtered)

	c.JSON(http.StatusOK, gin.H{
		"products":   filtered,
		"categories": catalog.Categories(products),
	})
}

// GetFeaturedProducts retourne les 3 produits mis en avant sur la page d'accueil.
func GetFeaturedProducts(c *gin.Context) {
	ctx := context.Background()

	products, err := fetchAllProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	if len(products) > 3 {
		products = products[:3]
	}
	signImageURLs(ctx, products)

	c.JSON(http.StatusOK, products)
}

// GetProductByID retourne un produit
func GetProductByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	p, err := FetchProduct(gocql.UUID(productID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	ctx := context.Background()
	if p.ImageURL != "" {
		if signed, signErr := services.GenerateSignedURL(ctx, p.ImageURL, 24*time.Hour); signErr == nil {
			p.ImageURL = signed
		}
	}

	c.JSON(http.StatusOK, p)
}

// FetchProduct lit un produit par ID (prepared statement si disponible).
func FetchProduct(productID gocql.UUID) (models.Product, error) {
	var p models.Product

	if stmt := database.GetPreparedGetProductByID(); stmt != nil {
		err := stmt.Bind(productID).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.Stock, &p.CreatedAt)
		return p, err
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return p, err
	}

	err = session.Query(`SELECT product_id, name, description, price, image_url, category, stock, created_at
		FROM products WHERE product_id = ?`, productID).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.Stock, &p.CreatedAt)
	return p, err
}

// SearchProducts interroge Elasticsearch, avec repli sur le filtre en
// mémoire quand l'index est indisponible.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	ctx := context.Background()

	// 🔎 1️⃣ Recherche dans Elasticsearch (prioritaire)
	results, err := services.SearchProducts(query)
	if err == nil {
		signImageURLs(ctx, results)
		c.JSON(http.StatusOK, gin.H{"products": results, "source": "elastic"})
		return
	}

	// 2️⃣ Repli : filtre en mémoire sur le catalogue complet
	products, fetchErr := fetchAllProducts(ctx)
	if fetchErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche produits"})
		return
	}

	filtered := catalog.Filter(products, query, catalog.AllCategories)
	signImageURLs(ctx, filtered)

	c.JSON(http.StatusOK, gin.H{"products": filtered, "source": "fallback"})
}

// ReindexProducts pousse le catalogue complet dans Elasticsearch (admin).
func ReindexProducts(c *gin.Context) {
	products, err := fetchAllProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	for _, p := range products {
		services.IndexProduct(p)
	}

	c.JSON(http.StatusOK, gin.H{"indexed": len(products)})
}
