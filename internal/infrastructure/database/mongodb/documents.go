package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentGateway expose les opérations génériques du store documentaire :
// insertion d'un document opaque et lectures par filtre d'égalité + limite.
// Le gateway ne connaît pas la forme des documents, la validation est faite
// en amont par le registre de schémas.
type DocumentGateway struct {
	client *Client
}

func NewDocumentGateway(client *Client) *DocumentGateway {
	return &DocumentGateway{client: client}
}

// Available indique si le store sous-jacent est joignable.
func (g *DocumentGateway) Available() bool {
	return g.client.Available()
}

// InsertDocument insère un document validé et retourne l'identifiant de
// stockage en hexadécimal.
func (g *DocumentGateway) InsertDocument(ctx context.Context, collection string, doc bson.M) (string, error) {
	if !g.Available() {
		return "", fmt.Errorf("store documentaire indisponible")
	}

	result, err := g.client.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", result.InsertedID), nil
	}
	return oid.Hex(), nil
}

// FindDocuments retourne au plus limit documents correspondant au filtre.
// projection peut être nil pour récupérer les documents complets.
func (g *DocumentGateway) FindDocuments(ctx context.Context, collection string, filter bson.M, limit int64, projection bson.M) ([]bson.M, error) {
	if !g.Available() {
		return nil, fmt.Errorf("store documentaire indisponible")
	}
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find().SetLimit(limit)
	if projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := g.client.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents from %s: %w", collection, err)
	}
	return docs, nil
}

// FindByID retourne le document dont le _id correspond, ou mongo.ErrNoDocuments.
func (g *DocumentGateway) FindByID(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error) {
	if !g.Available() {
		return nil, fmt.Errorf("store documentaire indisponible")
	}

	var doc bson.M
	err := g.client.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// CountDocuments compte les documents correspondant au filtre.
func (g *DocumentGateway) CountDocuments(ctx context.Context, collection string, filter bson.M) (int64, error) {
	if !g.Available() {
		return 0, fmt.Errorf("store documentaire indisponible")
	}
	if filter == nil {
		filter = bson.M{}
	}
	return g.client.Collection(collection).CountDocuments(ctx, filter)
}

// Aggregate exécute un pipeline d'agrégation sur une collection.
func (g *DocumentGateway) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	if !g.Available() {
		return nil, fmt.Errorf("store documentaire indisponible")
	}

	cursor, err := g.client.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation from %s: %w", collection, err)
	}
	return docs, nil
}

// ListCollectionNames liste les collections existantes du store.
func (g *DocumentGateway) ListCollectionNames(ctx context.Context) ([]string, error) {
	return g.client.ListCollectionNames(ctx)
}
