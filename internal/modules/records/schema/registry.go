package schema

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Le registre de schémas définit la forme des sept types d'enregistrements
// et expose une validation pure : un payload non typé devient soit un
// document normalisé prêt à être inséré, soit une liste d'erreurs couvrant
// TOUS les champs en violation (jamais uniquement la première).

// FieldType énumère les types de champs supportés par le registre
type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeDate       // date calendaire, format YYYY-MM-DD
	TypeDateTime   // date + heure, format RFC3339
	TypeStringList // séquence de chaînes
)

// Codes d'erreur de validation
const (
	ErrCodeRequiredField = "REQUIRED_FIELD"
	ErrCodeInvalidType   = "INVALID_TYPE"
	ErrCodeInvalidEnum   = "INVALID_ENUM"
	ErrCodeOutOfRange    = "OUT_OF_RANGE"
	ErrCodeInvalidDate   = "INVALID_DATE"
	ErrCodeEmptyField    = "EMPTY_FIELD"
)

// FieldError représente une erreur de validation sur un champ
type FieldError struct {
	Field   string      `json:"field"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// NewFieldError crée une nouvelle erreur de validation
func NewFieldError(field, code, message string, value interface{}) FieldError {
	return FieldError{
		Field:   field,
		Code:    code,
		Message: message,
		Value:   value,
	}
}

// FieldSpec décrit un champ : type, optionalité, défaut et contraintes.
// Les énumérations sont fermées : une valeur hors ensemble est rejetée,
// jamais coercée.
type FieldSpec struct {
	Name      string
	Type      FieldType
	Required  bool
	NonEmpty  bool               // chaîne requise non vide (après trim)
	Default   interface{}        // défaut statique, nil = pas de défaut
	DefaultFn func() interface{} // défaut calculé à la validation (ex: date du jour)
	Enum      []string
	Min       *float64
	Max       *float64
}

// Definition décrit un type d'enregistrement et sa collection de stockage
type Definition struct {
	Kind   string
	Fields []FieldSpec
}

// Collection retourne le nom de la collection de stockage (kind = collection)
func (d *Definition) Collection() string {
	return d.Kind
}

// Registry regroupe les définitions des sept types d'enregistrements
type Registry struct {
	defs  map[string]*Definition
	order []string
}

// NewRegistry construit le registre complet
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]*Definition)}
	for _, def := range allDefinitions() {
		r.defs[def.Kind] = def
		r.order = append(r.order, def.Kind)
	}
	return r
}

// Kinds retourne les noms des types d'enregistrements, dans l'ordre de déclaration
func (r *Registry) Kinds() []string {
	kinds := make([]string, len(r.order))
	copy(kinds, r.order)
	return kinds
}

// Definition retourne la définition d'un type d'enregistrement
func (r *Registry) Definition(kind string) (*Definition, bool) {
	def, ok := r.defs[kind]
	return def, ok
}

// Validate normalise un payload non typé selon la définition du type.
// Le document retourné ne contient que les champs déclarés (les champs
// inconnus sont ignorés), avec défauts appliqués et dates parsées.
// Aucun effet de bord : le payload d'entrée n'est jamais modifié.
func (r *Registry) Validate(kind string, payload map[string]interface{}) (bson.M, []FieldError) {
	def, ok := r.defs[kind]
	if !ok {
		return nil, []FieldError{NewFieldError("", ErrCodeInvalidType,
			fmt.Sprintf("Type d'enregistrement inconnu: %s", kind), kind)}
	}

	doc := bson.M{}
	var errors []FieldError

	for _, field := range def.Fields {
		raw, present := payload[field.Name]
		if raw == nil {
			present = false
		}

		if !present {
			switch {
			case field.DefaultFn != nil:
				doc[field.Name] = field.DefaultFn()
			case field.Default != nil:
				doc[field.Name] = field.Default
			case field.Required:
				errors = append(errors, NewFieldError(field.Name, ErrCodeRequiredField,
					"Le champ est requis", nil))
			default:
				// Champ optionnel absent : conservé à null pour que tous les
				// documents d'une collection partagent la même forme
				doc[field.Name] = nil
			}
			continue
		}

		value, fieldErrors := coerceField(field, raw)
		if len(fieldErrors) > 0 {
			errors = append(errors, fieldErrors...)
			continue
		}
		doc[field.Name] = value
	}

	if len(errors) > 0 {
		return nil, errors
	}
	return doc, nil
}

// coerceField convertit et contrôle une valeur selon la spécification du champ
func coerceField(field FieldSpec, raw interface{}) (interface{}, []FieldError) {
	switch field.Type {
	case TypeString:
		return coerceString(field, raw)
	case TypeInt:
		return coerceInt(field, raw)
	case TypeFloat:
		return coerceFloat(field, raw)
	case TypeBool:
		value, ok := raw.(bool)
		if !ok {
			return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidType,
				"Booléen attendu", raw)}
		}
		return value, nil
	case TypeDate:
		return coerceDate(field, raw, false)
	case TypeDateTime:
		return coerceDate(field, raw, true)
	case TypeStringList:
		return coerceStringList(field, raw)
	}
	return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidType,
		"Type de champ non supporté", raw)}
}

func coerceString(field FieldSpec, raw interface{}) (interface{}, []FieldError) {
	value, ok := raw.(string)
	if !ok {
		return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidType,
			"Chaîne de caractères attendue", raw)}
	}

	if len(field.Enum) > 0 {
		for _, allowed := range field.Enum {
			if value == allowed {
				return value, nil
			}
		}
		return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidEnum,
			fmt.Sprintf("Valeur hors énumération (valeurs permises: %s)", strings.Join(field.Enum, ", ")), value)}
	}

	if field.NonEmpty && strings.TrimSpace(value) == "" {
		return nil, []FieldError{NewFieldError(field.Name, ErrCodeEmptyField,
			"Le champ ne peut être vide", value)}
	}

	return value, nil
}

func coerceInt(field FieldSpec, raw interface{}) (interface{}, []FieldError) {
	var value int64
	switch v := raw.(type) {
	case float64:
		// encoding/json décode tout nombre JSON en float64
		if v != math.Trunc(v) {
			return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidType,
				"Entier attendu", raw)}
		}
		value = int64(v)
	case int:
		value = int64(v)
	case int32:
		value = int64(v)
	case int64:
		value = v
	default:
		return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidType,
			"Entier attendu", raw)}
	}

	if err := checkRange(field, float64(value)); err != nil {
		return nil, []FieldError{*err}
	}
	return value, nil
}

func coerceFloat(field FieldSpec, raw interface{}) (interface{}, []FieldError) {
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	default:
		return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidType,
			"Nombre attendu", raw)}
	}

	if err := checkRange(field, value); err != nil {
		return nil, []FieldError{*err}
	}
	return value, nil
}

func checkRange(field FieldSpec, value float64) *FieldError {
	if field.Min != nil && value < *field.Min {
		err := NewFieldError(field.Name, ErrCodeOutOfRange,
			fmt.Sprintf("Valeur inférieure au minimum autorisé (%v)", *field.Min), value)
		return &err
	}
	if field.Max != nil && value > *field.Max {
		err := NewFieldError(field.Name, ErrCodeOutOfRange,
			fmt.Sprintf("Valeur supérieure au maximum autorisé (%v)", *field.Max), value)
		return &err
	}
	return nil
}

func coerceDate(field FieldSpec, raw interface{}, withTime bool) (interface{}, []FieldError) {
	// Les dates déjà typées (appels internes, tests) passent telles quelles
	if t, ok := raw.(time.Time); ok {
		return t.UTC(), nil
	}

	value, ok := raw.(string)
	if !ok {
		return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidType,
			"Date au format texte attendue", raw)}
	}

	layouts := []string{"2006-01-02"}
	if withTime {
		layouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	expected := "YYYY-MM-DD"
	if withTime {
		expected = "RFC3339"
	}
	return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidDate,
		fmt.Sprintf("Format de date invalide (attendu: %s)", expected), value)}
}

func coerceStringList(field FieldSpec, raw interface{}) (interface{}, []FieldError) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []interface{}:
		values := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidType,
					"Liste de chaînes attendue", raw)}
			}
			values = append(values, s)
		}
		return values, nil
	}
	return nil, []FieldError{NewFieldError(field.Name, ErrCodeInvalidType,
		"Liste de chaînes attendue", raw)}
}
