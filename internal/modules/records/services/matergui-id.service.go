package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// MaterguiIDService génère l'identifiant public des patientes.
// Format: MGU-{YYYYMMDD UTC}-{NNNNNN}
// Exemple: MGU-20240315-042917
//
// Le suffixe est tiré uniformément sur [0, 1 000 000) depuis crypto/rand :
// l'identifiant est visible des usagers, un générateur prédictible est
// exclu. Aucun contrôle d'unicité contre les identifiants existants
// (probabilité de collision jugée négligeable à l'échelle d'une journée).
type MaterguiIDService struct{}

func NewMaterguiIDService() *MaterguiIDService {
	return &MaterguiIDService{}
}

var suffixSpace = big.NewInt(1_000_000)

// GeneratePatientID produit un nouvel identifiant public
func (s *MaterguiIDService) GeneratePatientID() (string, error) {
	n, err := rand.Int(rand.Reader, suffixSpace)
	if err != nil {
		return "", fmt.Errorf("impossible de générer le suffixe aléatoire: %w", err)
	}

	today := time.Now().UTC().Format("20060102")
	return fmt.Sprintf("MGU-%s-%06d", today, n.Int64()), nil
}
