package query

// Static allow-lists for the two supported entities. These are the only
// fields a caller may filter, sort or project on; anything else is rejected
// with ErrFieldNotAllowed. Canonical order here defines the default
// projection order.

// Policies is the allow-list for the policy snapshot entity.
var Policies = mustSchema(
	"policies",
	"POLICY_MONTHLY_SNAPSHOT_FACT",
	"POLICY_ID",
	"CARRIER_NAME",
	[]Field{
		{Name: "POLICY_ID", Type: TypeInteger},
		{Name: "POLICY_DIM_ID", Type: TypeString},
		{Name: "INSURED_LIFE_ID", Type: TypeInteger},
		{Name: "INSURED_CITY", Type: TypeString},
		{Name: "INSURED_STATE", Type: TypeString},
		{Name: "INSURED_ZIP", Type: TypeString},
		{Name: "POLICY_RESIDENCE_STATE", Type: TypeString},
		{Name: "ANNUALIZED_PREMIUM", Type: TypeDecimal},
		{Name: "LIFETIME_COLLECTED_PREMIUM", Type: TypeDecimal},
		{Name: "CARRIER_NAME", Type: TypeString},
		{Name: "ENVIRONMENT", Type: TypeString},
		{Name: "ORIGINAL_EFFECTIVE_DT", Type: TypeDate},
		{Name: "POLICY_SNAPSHOT_DATE", Type: TypeDate},
		{Name: "CLAIM_STATUS_CD", Type: TypeString},
	},
)

// Claims is the allow-list for the claims worksheet entity. CLAIMANTNAME is
// searchable: an equality filter on it matches as a substring.
var Claims = mustSchema(
	"claims",
	"CLAIMS_TPA_FEE_WORKSHEET_SNAPSHOT_FACT",
	"RFB_ID",
	"CARRIER_NAME",
	[]Field{
		{Name: "RFB_ID", Type: TypeInteger},
		{Name: "POLICY_DIM_ID", Type: TypeString},
		{Name: "POLICY_NUMBER", Type: TypeString},
		{Name: "EPISODE_OF_BENEFIT_ID", Type: TypeInteger},
		{Name: "CLAIMANTNAME", Type: TypeString, Searchable: true},
		{Name: "DECISION", Type: TypeString},
		{Name: "CARRIER_NAME", Type: TypeString},
		{Name: "SNAPSHOT_DATE", Type: TypeDate},
		{Name: "CERTIFICATIONDATE", Type: TypeDate},
		{Name: "LIFE_STATE", Type: TypeString},
		{Name: "ISSUE_STATE", Type: TypeString},
		{Name: "POLICY_RESIDENCE_STATE", Type: TypeString},
		{Name: "CLAIM_TYPE_CD", Type: TypeInteger},
		{Name: "RFB_PROCESS_TO_DECISION_TAT", Type: TypeDecimal},
	},
)
