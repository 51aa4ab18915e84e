package vectordb

import "fmt"

// ValidateSearchRequest checks the parameters common to every backend.
func ValidateSearchRequest(collection string, req SearchRequest) error {
	if collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if len(req.Vector) == 0 {
		return fmt.Errorf("query vector cannot be empty")
	}
	if req.Limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}
	return nil
}

// ValidateDocument checks a document before it is handed to a backend.
func ValidateDocument(collection string, doc Document) error {
	if collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if doc.ID == "" {
		return fmt.Errorf("document id cannot be empty")
	}
	if doc.Text == "" {
		return fmt.Errorf("document text cannot be empty")
	}
	return nil
}
