package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DocumentStore est la vue que le pipeline d'admission et le rapporteur ont
// du store documentaire : insertion d'un document opaque et lectures par
// filtre d'égalité + limite, rien de plus. Implémenté par
// mongodb.DocumentGateway ; les tests utilisent un store en mémoire.
type DocumentStore interface {
	Available() bool
	InsertDocument(ctx context.Context, collection string, doc bson.M) (string, error)
	FindDocuments(ctx context.Context, collection string, filter bson.M, limit int64, projection bson.M) ([]bson.M, error)
	FindByID(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error)
	CountDocuments(ctx context.Context, collection string, filter bson.M) (int64, error)
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error)
	ListCollectionNames(ctx context.Context) ([]string, error)
}
