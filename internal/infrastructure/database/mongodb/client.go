package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client enveloppe la connexion au store documentaire.
// La connexion est initialisée une seule fois au démarrage : si DATABASE_URL
// ou DATABASE_NAME manque (ou si la connexion échoue), le client reste dans
// un état indisponible pour toute la durée de vie du processus.
type Client struct {
	client   *mongo.Client
	database *mongo.Database
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// NewClient construit le client. L'absence de configuration n'est pas une
// erreur : les endpoints métier répondent 500 tant que Available() est faux.
func NewClient(config *MongoConfig) (*Client, error) {
	if config.URI == "" || config.Database == "" {
		fmt.Printf("[MONGODB] ⚠️  DATABASE_URL/DATABASE_NAME non définis - store documentaire indisponible\n")
		return &Client{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.URI)

	// Configuration du pool de connexions
	clientOptions.SetMaxPoolSize(100)
	clientOptions.SetMinPoolSize(5)
	clientOptions.SetMaxConnIdleTime(30 * time.Minute)
	clientOptions.SetConnectTimeout(10 * time.Second)
	clientOptions.SetServerSelectionTimeout(5 * time.Second)

	clientOptions.SetRetryWrites(true)
	clientOptions.SetRetryReads(true)

	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		fmt.Printf("[MONGODB] ⚠️  Connexion impossible - store documentaire indisponible: %v\n", err)
		return &Client{}, nil
	}

	return &Client{
		client:   mongoClient,
		database: mongoClient.Database(config.Database),
	}, nil
}

// Available indique si la connexion au store a été établie au démarrage.
func (c *Client) Available() bool {
	return c.database != nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("MongoDB client is nil")
	}

	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

func (c *Client) Close(ctx context.Context) error {
	if c.client != nil {
		return c.client.Disconnect(ctx)
	}
	return nil
}

func (c *Client) Client() *mongo.Client {
	return c.client
}

func (c *Client) Database() *mongo.Database {
	return c.database
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

func (c *Client) ListCollectionNames(ctx context.Context) ([]string, error) {
	if !c.Available() {
		return nil, fmt.Errorf("store documentaire indisponible")
	}
	return c.database.ListCollectionNames(ctx, map[string]interface{}{})
}
