package schema

import "time"

// Noms des types d'enregistrements (le nom est aussi celui de la collection)
const (
	KindUser        = "user"
	KindFacility    = "facility"
	KindPatient     = "patient"
	KindPregnancy   = "pregnancy"
	KindVisit       = "visit"
	KindAppointment = "appointment"
	KindAlert       = "alert"
)

// Énumérations fermées du domaine
var (
	UserRoles         = []string{"agent", "medecin", "sage_femme", "patiente", "admin", "ministere"}
	FacilityTypes     = []string{"centre_sante", "hopital", "clinique_privee", "clinique_publique", "autre"}
	RiskLevels        = []string{"faible", "modere", "eleve"}
	PregnancyStatuses = []string{"en_cours", "accouchement", "terminee"}
	AppointmentStatus = []string{"planifie", "honore", "annule", "manque"}
	AlertTypes        = []string{"urgence", "rappel", "risque"}
)

func limit(v float64) *float64 { return &v }

// todayUTC retourne la date calendaire courante en UTC (minuit)
func todayUTC() interface{} {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// allDefinitions déclare les sept types d'enregistrements du domaine.
// Contraintes et défauts portés par le dossier médical maternel :
// identifiants de rattachement souples (pas de clé étrangère au niveau du
// store), intégrité vérifiée uniquement à l'admission pour pregnancy/visit.
func allDefinitions() []*Definition {
	return []*Definition{
		{
			Kind: KindUser,
			Fields: []FieldSpec{
				{Name: "full_name", Type: TypeString, Required: true, NonEmpty: true},
				{Name: "email", Type: TypeString},
				{Name: "phone", Type: TypeString},
				{Name: "role", Type: TypeString, Enum: UserRoles, Default: "agent"},
				{Name: "facility_id", Type: TypeString},
				{Name: "is_active", Type: TypeBool, Default: true},
			},
		},
		{
			Kind: KindFacility,
			Fields: []FieldSpec{
				{Name: "name", Type: TypeString, Required: true, NonEmpty: true},
				{Name: "type", Type: TypeString, Enum: FacilityTypes, Default: "centre_sante"},
				{Name: "region", Type: TypeString},
				{Name: "district", Type: TypeString},
				{Name: "address", Type: TypeString},
				{Name: "code", Type: TypeString},
			},
		},
		{
			Kind: KindPatient,
			Fields: []FieldSpec{
				{Name: "matergui_id", Type: TypeString},
				{Name: "first_name", Type: TypeString, Required: true, NonEmpty: true},
				{Name: "last_name", Type: TypeString, Required: true, NonEmpty: true},
				{Name: "date_of_birth", Type: TypeDate},
				{Name: "phone", Type: TypeString},
				{Name: "address", Type: TypeString},
				{Name: "national_id", Type: TypeString},
				{Name: "facility_id", Type: TypeString},
				// Biométrie : champs réservés, intégration ultérieure
				{Name: "face_template_id", Type: TypeString},
				{Name: "fingerprint_template_id", Type: TypeString},
			},
		},
		{
			Kind: KindPregnancy,
			Fields: []FieldSpec{
				{Name: "patient_id", Type: TypeString, Required: true, NonEmpty: true},
				{Name: "lmp", Type: TypeDate},
				{Name: "expected_due_date", Type: TypeDate},
				{Name: "parity", Type: TypeInt, Default: int64(0), Min: limit(0)},
				{Name: "gravida", Type: TypeInt, Default: int64(1), Min: limit(1)},
				{Name: "risk_level", Type: TypeString, Enum: RiskLevels, Default: "faible"},
				{Name: "status", Type: TypeString, Enum: PregnancyStatuses, Default: "en_cours"},
			},
		},
		{
			Kind: KindVisit,
			Fields: []FieldSpec{
				{Name: "pregnancy_id", Type: TypeString, Required: true, NonEmpty: true},
				{Name: "visit_date", Type: TypeDate, DefaultFn: todayUTC},
				{Name: "blood_pressure_systolic", Type: TypeInt, Min: limit(50), Max: limit(250)},
				{Name: "blood_pressure_diastolic", Type: TypeInt, Min: limit(30), Max: limit(150)},
				{Name: "weight_kg", Type: TypeFloat, Min: limit(20), Max: limit(250)},
				{Name: "fundal_height_cm", Type: TypeFloat, Min: limit(0), Max: limit(60)},
				{Name: "foetal_heart_rate", Type: TypeInt, Min: limit(60), Max: limit(200)},
				{Name: "symptoms", Type: TypeString},
				{Name: "notes", Type: TypeString},
				{Name: "prescriptions", Type: TypeStringList},
			},
		},
		{
			Kind: KindAppointment,
			Fields: []FieldSpec{
				{Name: "patient_id", Type: TypeString, Required: true, NonEmpty: true},
				{Name: "appointment_date", Type: TypeDateTime, Required: true},
				{Name: "reason", Type: TypeString},
				{Name: "status", Type: TypeString, Enum: AppointmentStatus, Default: "planifie"},
			},
		},
		{
			Kind: KindAlert,
			Fields: []FieldSpec{
				{Name: "patient_id", Type: TypeString, Required: true, NonEmpty: true},
				{Name: "type", Type: TypeString, Enum: AlertTypes, Default: "rappel"},
				{Name: "message", Type: TypeString, Required: true, NonEmpty: true},
				{Name: "created_by", Type: TypeString},
			},
		},
	}
}
