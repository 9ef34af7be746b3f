package dto

// AdmissionResult est la réponse d'une admission réussie : l'identifiant de
// stockage attribué par le store et, pour une patiente, l'identifiant public
type AdmissionResult struct {
	ID         string `json:"id"`
	MaterguiID string `json:"matergui_id,omitempty"`
}

// RegionCount représente le nombre de structures sanitaires d'une région
type RegionCount struct {
	Region string `json:"region"`
	Count  int64  `json:"count"`
}

// StatsResponse est le rapport agrégé du tableau de bord.
// Chaque compteur est calculé indépendamment : l'échec d'un comptage donne
// zéro pour cette collection, jamais un échec global.
type StatsResponse struct {
	Patients           int64         `json:"patients"`
	Pregnancies        int64         `json:"pregnancies"`
	Visits             int64         `json:"visits"`
	Appointments       int64         `json:"appointments"`
	Alerts             int64         `json:"alerts"`
	DueThisMonth       int64         `json:"due_this_month"`
	FacilitiesByRegion []RegionCount `json:"facilities_by_region"`
}
