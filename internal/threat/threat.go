package threat

// Kind is the in-universe shape a financial threat takes.
type Kind string

const (
	KindAsteroid     Kind = "asteroid"
	KindIonStorm     Kind = "ion_storm"
	KindSolarFlare   Kind = "solar_flare"
	KindBlackHole    Kind = "black_hole"
	KindWormhole     Kind = "wormhole"
	KindEnemyCruiser Kind = "enemy_cruiser"
)

// Severity ranks how urgent a threat is.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Threat is one alert on the viewport.
type Threat struct {
	ID        string
	Kind      Kind
	Label     string
	Detail    string
	Amount    float64
	Severity  Severity
	Deflected bool
}

// DemoThreats returns the threats shown before any account data is loaded.
func DemoThreats() []Threat {
	return []Threat{
		{ID: "gym-membership", Kind: KindAsteroid, Label: "GYM $49.99/mo", Detail: "Zero usage for 47 days, renews in 5d", Amount: 49.99, Severity: SeverityDanger},
		{ID: "dining-overspend", Kind: KindIonStorm, Label: "DINING +142%", Detail: "Recreation Deck at 142% capacity", Amount: 284, Severity: SeverityWarning},
		{ID: "streaming", Kind: KindSolarFlare, Label: "STREAMING $31.98", Detail: "Netflix + Hulu auto-renew in 48h", Amount: 31.98, Severity: SeverityDanger},
		{ID: "missed-rewards", Kind: KindAsteroid, Label: "MISSED REWARDS", Detail: "Card routing error, $12/mo lost", Amount: 12, Severity: SeverityInfo},
		{ID: "credit-card-debt", Kind: KindBlackHole, Label: "DEBT SPIRAL", Detail: "Compounding interest pulling $2,400 deeper", Amount: 2400, Severity: SeverityDanger},
		{ID: "savings-opportunity", Kind: KindWormhole, Label: "SAVINGS PORTAL", Detail: "High-yield account opportunity, $180/yr missed", Amount: 180, Severity: SeverityInfo},
		{ID: "fraud-alert", Kind: KindEnemyCruiser, Label: "FRAUD ALERT", Detail: "Suspicious $892 charge from unknown merchant", Amount: 892, Severity: SeverityDanger},
	}
}
