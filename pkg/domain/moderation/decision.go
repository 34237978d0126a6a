package moderation

// Category identifies one entry of the closed policy taxonomy. The set is
// versioned with the rule table; adding a value is a policy change.
type Category string

const (
	CategoryMinorSexualContent Category = "CSAM"
	CategoryUnderageRoleplay   Category = "Underage Roleplay"
	CategoryPromptInjection    Category = "Prompt Injection"
	CategoryHumanTrafficking   Category = "Human Trafficking"
	CategoryTerrorism          Category = "Terrorism/Violence"
	CategoryIllegalDrugs       Category = "Illegal Drugs"
	CategorySelfHarm           Category = "Self-harm"
	CategoryIncest             Category = "Incest"
)

// Categories lists the taxonomy in enforcement priority order, most severe
// first. The pattern engine evaluates rules in exactly this order.
var Categories = []Category{
	CategoryMinorSexualContent,
	CategoryUnderageRoleplay,
	CategoryPromptInjection,
	CategoryHumanTrafficking,
	CategoryTerrorism,
	CategoryIllegalDrugs,
	CategorySelfHarm,
	CategoryIncest,
}

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Decision is the outcome of inspecting a single message. It is ephemeral;
// only its effects on the account record are persisted.
type Decision struct {
	Blocked          bool     `json:"blocked"`
	Category         Category `json:"category,omitempty"`
	Severity         Severity `json:"severity,omitempty"`
	AutoBan          bool     `json:"auto_ban,omitempty"`
	Message          string   `json:"message,omitempty"`
	ProvideResources bool     `json:"provide_resources,omitempty"`
	Confidence       int      `json:"confidence,omitempty"`
	Source           string   `json:"source,omitempty"`
}

// Safe is the decision for content that passed every check.
func Safe() Decision {
	return Decision{Blocked: false}
}

// ValidCategory reports whether c belongs to the closed taxonomy.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
