package redis

import (
	"fmt"
	"regexp"
	"strings"
)

// RedisKeyGenerator génère et valide les clés Redis selon les conventions MaterGui
type RedisKeyGenerator struct {
	environment string
}

// NewRedisKeyGenerator crée une nouvelle instance du générateur
func NewRedisKeyGenerator(environment string) *RedisKeyGenerator {
	return &RedisKeyGenerator{environment: environment}
}

// RedisKeyPattern définit les patterns standards des clés
// Pattern: matergui_{environment}_{domain}_{context}:{identifier}
type RedisKeyPattern struct {
	Domain  string // cache, etc.
	Context string // stats, etc.
	TTL     int    // TTL en secondes, 0 = pas d'expiration
}

// Patterns prédéfinis - seuls les patterns réellement implémentés sont listés
var RedisKeyPatterns = map[string]RedisKeyPattern{
	// Cache du rapport agrégé /stats
	"cache_stats": {Domain: "cache", Context: "stats", TTL: 60},
}

// GenerateKey génère une clé Redis selon la convention :
// matergui_{environment}_{domain}_{context}:{identifier}
func (rkg *RedisKeyGenerator) GenerateKey(patternName string, identifier ...string) (string, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}

	prefix := fmt.Sprintf("matergui_%s_%s_%s", rkg.environment, pattern.Domain, pattern.Context)

	if len(identifier) > 0 {
		identifierStr := strings.Join(identifier, "_")
		return fmt.Sprintf("%s:%s", prefix, identifierStr), nil
	}

	// Pas d'identifier : clé singleton
	return prefix, nil
}

// GetTTL récupère le TTL d'un pattern
func (rkg *RedisKeyGenerator) GetTTL(patternName string) (int, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return 0, fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	return pattern.TTL, nil
}

// ValidateKey valide qu'une clé respecte les conventions
func (rkg *RedisKeyGenerator) ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("clé vide")
	}

	if len(key) > 250 {
		return fmt.Errorf("clé trop longue (max 250 caractères): %d", len(key))
	}

	validKeyRegex := regexp.MustCompile(`^[a-zA-Z0-9_:\-]+$`)
	if !validKeyRegex.MatchString(key) {
		return fmt.Errorf("clé contient des caractères invalides: %s", key)
	}

	if !strings.HasPrefix(key, "matergui_") {
		return fmt.Errorf("clé doit commencer par 'matergui_': %s", key)
	}

	return nil
}
