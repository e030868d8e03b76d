package handlers

import "github.com/celestiaorg/taskboard/internal/db/models"

// getPaginationOptions returns a ListOptions struct with validated pagination parameters
func getPaginationOptions(page int) *models.ListOptions {
	// Validate and set defaults for page
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * models.DefaultLimit
	return &models.ListOptions{
		Limit:  models.DefaultLimit,
		Offset: offset,
	}
}
