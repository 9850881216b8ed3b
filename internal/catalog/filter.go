package catalog

import (
	"strings"

	"pataspace_back_end/internal/models"
)

// AllCategories est la valeur du sélecteur qui désactive le filtre catégorie.
const AllCategories = "all"

// Filter applique la recherche plein texte et le filtre catégorie du
// catalogue. Recherche : sous-chaîne insensible à la casse sur le nom OU
// la description. Catégorie : égalité stricte, "all" (ou vide) laisse tout passer.
// Fonction pure, recalculée à chaque changement d'entrée.
func Filter(products []models.Product, query, category string) []models.Product {
	filtered := make([]models.Product, 0, len(products))

	q := strings.ToLower(strings.TrimSpace(query))

	for _, p := range products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

// Categories retourne les catégories distinctes dans l'ordre de première
// apparition, pour alimenter le sélecteur du catalogue.
func Categories(products []models.Product) []string {
	seen := make(map[string]bool)
	categories := []string{}

	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}

	return categories
}
