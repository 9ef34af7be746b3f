package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client enveloppe la connexion Redis utilisée comme cache optionnel.
// Redis n'est jamais bloquant : si la connexion échoue au démarrage, le
// client reste indisponible et les consommateurs recalculent sans cache.
type Client struct {
	rdb          *redis.Client
	keyGenerator *RedisKeyGenerator
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
	Enabled  bool   `yaml:"enabled"`
}

func NewClient(config *RedisConfig, keyGenerator *RedisKeyGenerator) (*Client, error) {
	if !config.Enabled {
		fmt.Printf("[REDIS] ⚠️  Redis désactivé - cache statistiques inactif\n")
		return &Client{keyGenerator: keyGenerator}, nil
	}

	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.Database,
		MaxRetries:   3,
		PoolSize:     10,
		PoolTimeout:  30 * time.Second,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MinIdleConns: 2,
	}

	rdb := redis.NewClient(opts)

	client := &Client{
		rdb:          rdb,
		keyGenerator: keyGenerator,
	}

	// Test connexion - échec non bloquant
	if err := client.Ping(context.Background()); err != nil {
		fmt.Printf("[REDIS] ⚠️  Redis non disponible - cache statistiques inactif: %v\n", err)
		rdb.Close()
		return &Client{keyGenerator: keyGenerator}, nil
	}

	return client, nil
}

// Available indique si Redis est joignable. Sûr sur récepteur nil : les
// consommateurs traitent simplement un client absent comme indisponible.
func (c *Client) Available() bool {
	return c != nil && c.rdb != nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return fmt.Errorf("Redis client is nil")
	}

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

func (c *Client) Close() {
	if c.rdb != nil {
		c.rdb.Close()
	}
}

func (c *Client) Client() *redis.Client {
	return c.rdb
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c.rdb == nil {
		return fmt.Errorf("Redis indisponible")
	}
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c.rdb == nil {
		return "", fmt.Errorf("Redis indisponible")
	}
	result := c.rdb.Get(ctx, key)
	if result.Err() == redis.Nil {
		return "", redis.Nil // Conserver l'erreur redis.Nil native
	}
	return result.Val(), result.Err()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.rdb == nil {
		return fmt.Errorf("Redis indisponible")
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// SetWithPattern sauvegarde une valeur avec une clé et un TTL standardisés
func (c *Client) SetWithPattern(ctx context.Context, patternName string, value interface{}, identifier ...string) error {
	key, err := c.keyGenerator.GenerateKey(patternName, identifier...)
	if err != nil {
		return fmt.Errorf("erreur génération clé: %w", err)
	}

	ttl, err := c.keyGenerator.GetTTL(patternName)
	if err != nil {
		return fmt.Errorf("erreur récupération TTL: %w", err)
	}

	var duration time.Duration
	if ttl > 0 {
		duration = time.Duration(ttl) * time.Second
	}

	return c.Set(ctx, key, value, duration)
}

// GetWithPattern récupère une valeur avec une clé standardisée
func (c *Client) GetWithPattern(ctx context.Context, patternName string, identifier ...string) (string, error) {
	key, err := c.keyGenerator.GenerateKey(patternName, identifier...)
	if err != nil {
		return "", fmt.Errorf("erreur génération clé: %w", err)
	}

	return c.Get(ctx, key)
}

// DelWithPattern supprime une valeur avec une clé standardisée
func (c *Client) DelWithPattern(ctx context.Context, patternName string, identifier ...string) error {
	key, err := c.keyGenerator.GenerateKey(patternName, identifier...)
	if err != nil {
		return fmt.Errorf("erreur génération clé: %w", err)
	}

	return c.Del(ctx, key)
}
