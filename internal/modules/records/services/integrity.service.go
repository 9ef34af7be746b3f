package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IntegrityService vérifie qu'un identifiant de rattachement résout vers un
// document parent existant avant d'autoriser une insertion dépendante.
// Contrôle ponctuel uniquement : aucune transaction ne protège contre une
// suppression concurrente du parent (la suppression n'existe nulle part
// dans ce système, mais ne pas supposer ce contrôle sûr si elle apparaît).
type IntegrityService struct {
	store DocumentStore
}

func NewIntegrityService(store DocumentStore) *IntegrityService {
	return &IntegrityService{store: store}
}

// EnsureParentExists contrôle la référence portée par field :
//   - identifiant mal formé → invalid_reference (erreur client)
//   - identifiant bien formé sans document → not_found avec notFoundMessage
//   - exactement un document correspondant → admission autorisée
func (s *IntegrityService) EnsureParentExists(ctx context.Context, collection, field, rawID, notFoundMessage string) error {
	oid, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return NewInvalidReferenceError(field)
	}

	if _, err := s.store.FindByID(ctx, collection, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return NewNotFoundError(notFoundMessage)
		}
		return fmt.Errorf("échec vérification référence %s: %w", field, err)
	}

	return nil
}
