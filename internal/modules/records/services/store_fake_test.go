package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeStore est un DocumentStore en mémoire pour les tests du pipeline.
// Il reproduit le contrat du gateway : insertion opaque, lecture par _id,
// comptage, et l'agrégation $group sur region utilisée par le rapporteur.
type fakeStore struct {
	unavailable bool
	insertErr   error
	collections map[string][]bson.M
}

func newFakeStore() *fakeStore {
	return &fakeStore{collections: make(map[string][]bson.M)}
}

func (f *fakeStore) Available() bool {
	return !f.unavailable
}

func (f *fakeStore) InsertDocument(_ context.Context, collection string, doc bson.M) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}

	oid := primitive.NewObjectID()
	stored := bson.M{"_id": oid}
	for key, value := range doc {
		stored[key] = value
	}
	f.collections[collection] = append(f.collections[collection], stored)
	return oid.Hex(), nil
}

func (f *fakeStore) FindDocuments(_ context.Context, collection string, filter bson.M, limit int64, _ bson.M) ([]bson.M, error) {
	var docs []bson.M
	for _, doc := range f.collections[collection] {
		if int64(len(docs)) >= limit {
			break
		}
		if matches(doc, filter) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (f *fakeStore) FindByID(_ context.Context, collection string, id primitive.ObjectID) (bson.M, error) {
	for _, doc := range f.collections[collection] {
		if doc["_id"] == id {
			return doc, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStore) CountDocuments(_ context.Context, collection string, filter bson.M) (int64, error) {
	var count int64
	for _, doc := range f.collections[collection] {
		if matches(doc, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) Aggregate(_ context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	if len(pipeline) != 1 {
		return nil, errors.New("fakeStore: pipeline non supporté")
	}

	// Seul le $group {_id: $region, count: {$sum: 1}} du rapporteur est émulé
	counts := make(map[string]int64)
	var order []string
	for _, doc := range f.collections[collection] {
		region, _ := doc["region"].(string)
		if _, seen := counts[region]; !seen {
			order = append(order, region)
		}
		counts[region]++
	}

	var rows []bson.M
	for _, region := range order {
		rows = append(rows, bson.M{"_id": region, "count": counts[region]})
	}
	return rows, nil
}

func (f *fakeStore) ListCollectionNames(_ context.Context) ([]string, error) {
	var names []string
	for name := range f.collections {
		names = append(names, name)
	}
	return names, nil
}

func matches(doc, filter bson.M) bool {
	for key, expected := range filter {
		if doc[key] != expected {
			return false
		}
	}
	return true
}
